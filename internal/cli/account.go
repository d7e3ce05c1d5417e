package cli

import (
	"fmt"

	"entity-journal-cli/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (cli *CLI) addAccount(topLevel *cobra.Command) {
	account := &cobra.Command{
		Use:   "account",
		Short: "Manage the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var username, email string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change username or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" && email == "" {
				return fmt.Errorf("nothing to update, pass --username or --email")
			}
			if err := cli.c.Account.Update(cmd.Context(), dto.UpdateAccountRequest{
				Username: username,
				Email:    email,
			}); err != nil {
				return HandleError(err)
			}
			if _, err := cli.c.Auth.RefreshUser(cmd.Context()); err != nil {
				return HandleError(err)
			}
			color.Green("account updated")
			return nil
		},
	}
	update.Flags().StringVar(&username, "username", "", "new username")
	update.Flags().StringVar(&email, "email", "", "new email address")

	password := &cobra.Command{
		Use:   "password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current password first, then the new one.")
			current, err := readPassword()
			if err != nil {
				return err
			}
			next, err := readPassword()
			if err != nil {
				return err
			}
			if err := cli.c.Account.ChangePassword(cmd.Context(), current, next); err != nil {
				return HandleError(err)
			}
			color.Green("password changed")
			return nil
		},
	}

	forgot := &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.c.Account.ForgotPassword(cmd.Context(), args[0]); err != nil {
				return HandleError(err)
			}
			fmt.Println("If the address is registered, a reset email is on its way.")
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := readPassword()
			if err != nil {
				return err
			}
			if err := cli.c.Account.ResetPassword(cmd.Context(), args[0], next); err != nil {
				return HandleError(err)
			}
			color.Green("password reset, log in with the new one")
			return nil
		},
	}

	account.AddCommand(update, password, forgot, reset)
	topLevel.AddCommand(account)
}
