package cli

import (
	"fmt"

	"entity-journal-cli/internal/model"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (cli *CLI) addMetrics(topLevel *cobra.Command) {
	metrics := &cobra.Command{
		Use:   "metrics",
		Short: "Mention statistics across the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Overall mention counts and top entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.c.Metrics.Dashboard(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			fmt.Printf("people: %d  projects: %d  habits: %d  mentions: %d\n",
				m.UniquePeople, m.UniqueProjects, m.UniqueHabits, m.TotalMentions)
			printTopEntities("Top people", m.TopPeople)
			printTopEntities("Top projects", m.TopProjects)
			printTopEntities("Top habits", m.TopHabits)
			return nil
		},
	}

	timeline := &cobra.Command{
		Use:   "timeline <entity-id>",
		Short: "Mention history for one entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := cli.c.Metrics.Timeline(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			color.Cyan("%s (%s), %d mentions", tl.EntityName, tl.EntityType, tl.TotalMentions)
			table := uitable.New()
			table.MaxColWidth = 70
			table.AddRow("DATE", "NOTE", "CONTEXT")
			for _, m := range tl.Mentions {
				table.AddRow(m.Date, m.NoteTitle, m.Context)
			}
			fmt.Println(table)
			return nil
		},
	}

	metrics.AddCommand(dashboard, timeline)
	topLevel.AddCommand(metrics)
}

func printTopEntities(heading string, items []model.TopEntity) {
	if len(items) == 0 {
		return
	}
	color.Cyan(heading)
	for _, e := range items {
		fmt.Printf("  %-30s %d\n", e.Name, e.Mentions)
	}
}
