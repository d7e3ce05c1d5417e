package cli

import (
	"errors"
	"fmt"

	"entity-journal-cli/internal/bootstrap"
	"entity-journal-cli/internal/gateway"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CLI binds the cobra command tree to the client container.
type CLI struct {
	c *bootstrap.Container
}

func New(c *bootstrap.Container) *cobra.Command {
	cli := &CLI{c: c}

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Journal from the command line: notes, entities, habit check-ins.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cli.addAuth(cmd)
	cli.addNotes(cmd)
	cli.addEntities(cmd)
	cli.addTracking(cmd)
	cli.addMetrics(cmd)
	cli.addFolders(cmd)
	cli.addSubscription(cmd)
	cli.addAccount(cmd)

	return cmd
}

// HandleError renders an error for the terminal: API rejections show the
// backend's message, everything else is printed as-is.
func HandleError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Errorf("%s", color.RedString(apiErr.Message))
	}
	return err
}
