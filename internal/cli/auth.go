package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (cli *CLI) addAuth(topLevel *cobra.Command) {
	login := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate and store the session credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword()
			if err != nil {
				return err
			}
			user, err := cli.c.Auth.Login(cmd.Context(), args[0], password)
			if err != nil {
				return HandleError(err)
			}
			color.Green("Logged in as %s (%s plan)", user.Username, user.Plan)
			return nil
		},
	}

	register := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword()
			if err != nil {
				return err
			}
			user, err := cli.c.Auth.Register(cmd.Context(), args[0], args[1], password)
			if err != nil {
				return HandleError(err)
			}
			color.Green("Welcome, %s", user.Username)
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.c.Auth.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := cli.c.Session.Snapshot()
			if !snap.Authenticated || snap.User == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			u := snap.User
			fmt.Printf("%s <%s>\n", u.Username, u.Email)
			fmt.Printf("plan: %s  entities: %d  notes: %d  habits: %d\n",
				u.Plan, u.EntityCount, u.NoteCount, u.HabitCount)
			return nil
		},
	}

	topLevel.AddCommand(login, register, logout, whoami)
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
