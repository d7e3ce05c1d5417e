package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"entity-journal-cli/internal/editor"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// runEditor drives an editor session from stdin, one line per edit.
// Lines starting with ':' are commands, everything else is appended to
// the draft and fed through the keystroke pipeline so mention detection
// and autosave behave exactly as they would under a real editor.
func (cli *CLI) runEditor(cmd *cobra.Command, s *editor.Session) error {
	defer s.Close()

	color.New(color.Faint).Fprintln(os.Stderr, "type text to append, :pick N to accept a suggestion, :save, :show, :quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "[%s] > ", stateLabel(s.State()))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		switch {
		case line == ":quit" || line == ":q":
			return nil

		case line == ":save" || line == ":w":
			note, err := s.Save(cmd.Context())
			if err != nil {
				color.Red("save failed: %v", err)
				continue
			}
			color.Green("saved %s", note.Id)

		case line == ":show":
			fmt.Println(s.Render())

		case strings.HasPrefix(line, ":pick "):
			popup := s.Popup()
			if !popup.Open {
				color.Yellow("no open suggestion popup")
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(line, ":pick "))
			if err != nil || n < 1 || n > len(popup.Suggestions) {
				color.Yellow("pick a number between 1 and %d", len(popup.Suggestions))
				continue
			}
			s.InsertSuggestion(popup.Suggestions[n-1])

		default:
			content := s.Content() + line
			s.Keystroke(content, len(content))
		}

		if popup := s.Popup(); popup.Open {
			for i, c := range popup.Suggestions {
				fmt.Fprintf(os.Stderr, "  %d. %s %s\n", i+1, c.Icon, c.Name)
			}
			if len(popup.Suggestions) == 0 {
				fmt.Fprintf(os.Stderr, "  no matches for %q\n", popup.Query)
			}
		}
	}
	return scanner.Err()
}

func stateLabel(st editor.State) string {
	switch st {
	case editor.StateDirty:
		return "dirty"
	case editor.StateSaving:
		return "saving"
	default:
		return "idle"
	}
}
