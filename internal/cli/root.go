package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tasklist-cli/internal/format"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "A small to-do list: interactive TUI + scriptable CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  tasklist

  # Scriptable commands
  tasklist add Buy milk
  tasklist complete 1
  tasklist list --format text

  # Show one task (shortcut for: tasklist show 2)
  tasklist 2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKLIST_DIR", ""), "Path to the task list dir (default: nearest .tasklist/ or ~/.tasklist/default)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("TASKLIST_BACKEND", ""), "Store backend (sqlite|file|mem); overrides config")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKLIST_FORMAT", "json"), "Output format (json|yaml|text)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newCompleteCmd(app))
	cmd.AddCommand(newSelectCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newRemoveSelectedCmd(app))
	cmd.AddCommand(newSortCmd(app))
	cmd.AddCommand(newResetOrderCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		// Commands with a text rendering handle it before reaching here.
		return format.WriteJSON(cmd.OutOrStdout(), v, true)
	}
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeErr prints err and marks it reported so main doesn't print it again.
func writeErr(cmd *cobra.Command, err error) error {
	if err == nil || IsReported(err) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err: err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
