package cli

import (
	"fmt"
	"strings"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/model"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (cli *CLI) addEntities(topLevel *cobra.Command) {
	entities := &cobra.Command{
		Use:     "entities",
		Aliases: []string{"entity"},
		Short:   "Manage people, habits, projects and other tracked things",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var entityType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cli.c.Entities.List(cmd.Context(), model.EntityType(strings.ToUpper(entityType)))
			if err != nil {
				return HandleError(err)
			}
			printEntityTable(items)
			return nil
		},
	}
	list.Flags().StringVar(&entityType, "type", "", "filter by type (person, habit, project, goal, dream, event, custom)")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entities by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cli.c.Entities.Search(cmd.Context(), args[0], model.EntityType(strings.ToUpper(entityType)))
			if err != nil {
				return HandleError(err)
			}
			printEntityTable(items)
			return nil
		},
	}
	search.Flags().StringVar(&entityType, "type", "", "restrict the search to one type")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cli.c.Entities.Get(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			color.Cyan("%s %s", e.Icon, e.Name)
			fmt.Printf("id: %s\ntype: %s\n", e.Id, e.Type)
			if e.Description != "" {
				fmt.Println(e.Description)
			}
			if e.Tracking != nil && e.Tracking.Enabled {
				fmt.Printf("tracking: %s", e.Tracking.Frequency)
				if e.Tracking.Goal > 0 {
					fmt.Printf(", goal %g %s", e.Tracking.Goal, e.Tracking.Unit)
				}
				fmt.Println()
			}
			if e.Archived() {
				color.Yellow("archived at %s", e.ArchivedAt)
			}
			return nil
		},
	}

	var icon, description string
	create := &cobra.Command{
		Use:   "new <type> <name>",
		Short: "Create an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cli.c.Entities.Create(cmd.Context(), dto.CreateEntityRequest{
				Type:        model.EntityType(strings.ToUpper(args[0])),
				Name:        args[1],
				Icon:        icon,
				Description: description,
			})
			if err != nil {
				return HandleError(err)
			}
			color.Green("created %s (%s)", e.Name, e.Id)
			return nil
		},
	}
	create.Flags().StringVar(&icon, "icon", "", "emoji shown next to the name")
	create.Flags().StringVar(&description, "description", "", "free-form description")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cli.c.Entities.Update(cmd.Context(), args[0], dto.UpdateEntityRequest{Name: args[1]})
			if err != nil {
				return HandleError(err)
			}
			color.Green("renamed to %s", e.Name)
			return nil
		},
	}

	archive := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an entity (it stops appearing in mention suggestions)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.c.Entities.Archive(cmd.Context(), args[0]); err != nil {
				return HandleError(err)
			}
			fmt.Println("Archived.")
			return nil
		},
	}

	restore := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cli.c.Entities.Restore(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			color.Green("restored %s", e.Name)
			return nil
		},
	}

	archived := &cobra.Command{
		Use:   "archived",
		Short: "List archived entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cli.c.Entities.ListArchived(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			printEntityTable(items)
			return nil
		},
	}

	entities.AddCommand(list, search, show, create, rename, archive, restore, archived)
	topLevel.AddCommand(entities)
}

func printEntityTable(items []model.Entity) {
	if len(items) == 0 {
		fmt.Println("No entities.")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("ID", "TYPE", "NAME", "TRACKED")
	for _, e := range items {
		tracked := ""
		if e.Tracking != nil && e.Tracking.Enabled {
			tracked = string(e.Tracking.Frequency)
		}
		name := e.Name
		if e.Icon != "" {
			name = e.Icon + " " + name
		}
		table.AddRow(e.Id, string(e.Type), name, tracked)
	}
	fmt.Println(table)
}
