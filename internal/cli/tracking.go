package cli

import (
	"fmt"
	"sort"
	"time"

	"entity-journal-cli/internal/dto"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func (cli *CLI) addTracking(topLevel *cobra.Command) {
	track := &cobra.Command{
		Use:   "track",
		Short: "Record and inspect habit check-ins",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var date, note string
	var value int
	var decimal float64
	add := &cobra.Command{
		Use:   "add <entity-id>",
		Short: "Record a check-in (today unless --date is set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := cli.c.Tracking.Track(cmd.Context(), args[0], dto.TrackRequest{
				Date:         date,
				Value:        value,
				DecimalValue: decimal,
				Note:         note,
			})
			if err != nil {
				return HandleError(err)
			}
			color.Green("tracked %s on %s", ev.EntityId, ev.Date)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "check-in date (yyyy-MM-dd)")
	add.Flags().IntVar(&value, "value", 0, "integer value for counted habits")
	add.Flags().Float64Var(&decimal, "decimal", 0, "decimal value for measured habits")
	add.Flags().StringVar(&note, "note", "", "short note on the check-in")

	remove := &cobra.Command{
		Use:   "remove <entity-id> <date>",
		Short: "Delete a check-in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.c.Tracking.Untrack(cmd.Context(), args[0], args[1]); err != nil {
				return HandleError(err)
			}
			fmt.Println("Removed.")
			return nil
		},
	}

	today := &cobra.Command{
		Use:   "today",
		Short: "List today's check-ins",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := cli.c.Tracking.Today(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			if len(events) == 0 {
				fmt.Println("Nothing tracked today.")
				return nil
			}
			table := uitable.New()
			table.AddRow("ENTITY", "VALUE", "NOTE")
			for _, ev := range events {
				table.AddRow(ev.EntityId, trackValue(ev.Value, ev.DecimalValue), ev.Note)
			}
			fmt.Println(table)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats <entity-id>",
		Short: "Show streaks and totals for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cli.c.Tracking.Stats(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			fmt.Printf("total days:     %d\n", st.TotalDays)
			fmt.Printf("current streak: %d\n", st.CurrentStreak)
			fmt.Printf("longest streak: %d\n", st.LongestStreak)
			if st.AvgValue > 0 {
				fmt.Printf("average value:  %.2f\n", st.AvgValue)
			}
			if st.FirstTracked != "" {
				fmt.Printf("first tracked:  %s\n", st.FirstTracked)
			}
			if st.LastTracked != "" {
				fmt.Printf("last tracked:   %s\n", st.LastTracked)
			}
			return nil
		},
	}

	var from, to string
	heatmap := &cobra.Command{
		Use:   "heatmap <entity-id>",
		Short: "Show per-day check-in counts (last 30 days by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				to = time.Now().Format("2006-01-02")
			}
			if from == "" {
				from = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
			}
			counts, err := cli.c.Tracking.Heatmap(cmd.Context(), args[0], from, to)
			if err != nil {
				return HandleError(err)
			}
			dates := make([]string, 0, len(counts))
			for d := range counts {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			for _, d := range dates {
				fmt.Printf("%s %d\n", d, counts[d])
			}
			return nil
		},
	}
	heatmap.Flags().StringVar(&from, "from", "", "start date (yyyy-MM-dd)")
	heatmap.Flags().StringVar(&to, "to", "", "end date (yyyy-MM-dd)")

	track.AddCommand(add, remove, today, stats, heatmap)
	topLevel.AddCommand(track)
}

func trackValue(value int, decimal float64) string {
	switch {
	case decimal != 0:
		return fmt.Sprintf("%g", decimal)
	case value != 0:
		return fmt.Sprintf("%d", value)
	default:
		return "✓"
	}
}
