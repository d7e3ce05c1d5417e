package cli

import (
	"fmt"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/model"
	"entity-journal-cli/pkg/mention"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (cli *CLI) addNotes(topLevel *cobra.Command) {
	notes := &cobra.Command{
		Use:   "notes",
		Short: "Manage journal notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var folderId string
	var rootOnly bool
	var days int
	list := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cli.c.Notes.List(cmd.Context(), dto.ListNotesQuery{
				FolderId: folderId,
				RootOnly: rootOnly,
				Days:     days,
			})
			if err != nil {
				return HandleError(err)
			}
			printNoteTable(items)
			return nil
		},
	}
	list.Flags().StringVar(&folderId, "folder", "", "only notes in this folder")
	list.Flags().BoolVar(&rootOnly, "root", false, "only notes outside any folder")
	list.Flags().IntVar(&days, "days", 0, "only notes from the last N days")

	recent := &cobra.Command{
		Use:   "recent",
		Short: "List recently updated notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cli.c.Notes.Recent(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			printNoteTable(items)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note with mentions resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := cli.c.Notes.Get(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			candidates, err := cli.c.Entities.Candidates(cmd.Context())
			if err != nil {
				// Still show the note, tokens just stay raw.
				candidates = nil
			}
			byId := make(map[string]mention.Candidate, len(candidates))
			for _, c := range candidates {
				byId[c.Id] = c
			}
			color.Cyan(note.Title)
			fmt.Println(mention.ToDisplay(note.Content, func(id string) (mention.Candidate, bool) {
				c, ok := byId[id]
				return c, ok
			}))
			return nil
		},
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Write a new note interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := cli.c.NewEditorSession()
			s.NewNote(cmd.Context(), folderId)
			return cli.runEditor(cmd, s)
		},
	}
	newCmd.Flags().StringVar(&folderId, "folder", "", "create the note inside this folder")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing note interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := cli.c.NewEditorSession()
			if err := s.Open(cmd.Context(), args[0]); err != nil {
				return HandleError(err)
			}
			if draft, ok := s.RecoverDraft(); ok {
				color.Yellow("Recovered an unsaved draft from a previous session:")
				fmt.Println(draft)
			}
			return cli.runEditor(cmd, s)
		},
	}

	move := &cobra.Command{
		Use:   "move <id> [folder-id]",
		Short: "Move a note to a folder (omit folder to move to root)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target *string
			if len(args) == 2 {
				target = &args[1]
			}
			if err := cli.c.Notes.Move(cmd.Context(), args[0], target); err != nil {
				return HandleError(err)
			}
			fmt.Println("Moved.")
			return nil
		},
	}

	archive := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.c.Notes.Archive(cmd.Context(), args[0]); err != nil {
				return HandleError(err)
			}
			fmt.Println("Archived.")
			return nil
		},
	}

	notes.AddCommand(list, recent, show, newCmd, edit, move, archive)
	topLevel.AddCommand(notes)
}

func printNoteTable(items []model.NoteIndex) {
	if len(items) == 0 {
		fmt.Println("No notes.")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "TITLE", "UPDATED")
	for _, n := range items {
		table.AddRow(n.Id, n.Title, n.UpdatedAt)
	}
	fmt.Println(table)
}
