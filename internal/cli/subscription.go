package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (cli *CLI) addSubscription(topLevel *cobra.Command) {
	sub := &cobra.Command{
		Use:   "subscription",
		Short: "View and manage the billing plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current plan and limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.c.Subscriptions.Me(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			color.Cyan("%s (%s)", s.EffectivePlan, s.Status)
			fmt.Printf("entities: %d  notes: %d  habits: %d\n", s.MaxEntities, s.MaxNotes, s.MaxHabits)
			if s.CurrentPeriodEnd != "" {
				fmt.Printf("period ends: %s\n", s.CurrentPeriodEnd)
			}
			if s.CancelAtPeriodEnd {
				color.Yellow("cancels at period end")
			}
			if s.InGracePeriod {
				color.Yellow("payment overdue, in grace period")
			}
			return nil
		},
	}

	upgrade := &cobra.Command{
		Use:   "upgrade <price-id>",
		Short: "Start a checkout for a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.c.Subscriptions.Checkout(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			fmt.Println("Open this URL to complete checkout:")
			fmt.Println(out.Url)
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the subscription at period end",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.c.Subscriptions.Cancel(cmd.Context())
			if err != nil {
				return HandleError(err)
			}
			color.Yellow("subscription will end on %s", s.CurrentPeriodEnd)
			return nil
		},
	}

	sub.AddCommand(show, upgrade, cancel)
	topLevel.AddCommand(sub)
}
