package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (cli *CLI) addFolders(topLevel *cobra.Command) {
	folders := &cobra.Command{
		Use:   "folders",
		Short: "Organize notes into folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cli.c.Folders.List(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			if len(items) == 0 {
				fmt.Println("No folders.")
				return nil
			}
			table := uitable.New()
			table.AddRow("ID", "NAME", "PARENT")
			for _, f := range items {
				table.AddRow(f.Id, f.Name, f.ParentId)
			}
			fmt.Println(table)
			return nil
		},
	}

	var parentId string
	create := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.c.Folders.Create(cmd.Context(), args[0], parentId)
			if err != nil {
				return HandleError(err)
			}
			color.Green("created %s (%s)", f.Name, f.Id)
			return nil
		},
	}
	create.Flags().StringVar(&parentId, "parent", "", "create inside this folder")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.c.Folders.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return HandleError(err)
			}
			color.Green("renamed to %s", f.Name)
			return nil
		},
	}

	move := &cobra.Command{
		Use:   "move <id> [parent-id]",
		Short: "Move a folder (omit parent to move to root)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parent *string
			if len(args) == 2 {
				parent = &args[1]
			}
			if _, err := cli.c.Folders.Move(cmd.Context(), args[0], parent); err != nil {
				return HandleError(err)
			}
			fmt.Println("Moved.")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a folder (notes inside move to root)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.c.Folders.Delete(cmd.Context(), args[0]); err != nil {
				return HandleError(err)
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	folders.AddCommand(list, create, rename, move, remove)
	topLevel.AddCommand(folders)
}
