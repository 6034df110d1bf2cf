package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tasklist-cli/internal/tasklist"

	"github.com/spf13/cobra"
)

// parsePosition converts a 1-based CLI position into a list index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, errInvalidPosition(arg)
	}
	return n - 1, nil
}

// finish turns a manager result into command output.
func finish(cmd *cobra.Command, app *App, s *session, err error) error {
	switch {
	case err == nil:
		return writeView(cmd, app, s.last)
	case errors.Is(err, tasklist.ErrCancelled):
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	case wasAlerted(err):
		return reportedError{err: err}
	default:
		return writeErr(cmd, err)
	}
}

// positional maps an out-of-range index back to the position the user typed.
func positional(err error, idx int) error {
	if errors.Is(err, tasklist.ErrIndexOutOfRange) {
		return noTaskError{pos: idx + 1}
	}
	return err
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, false, func(s *session) error {
				return finish(cmd, app, s, s.mgr.AddTask(cmdContext(cmd), strings.Join(args, " ")))
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <position> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, false, func(s *session) error {
				err := s.mgr.EditTask(cmdContext(cmd), idx, strings.Join(args[1:], " "))
				if errors.Is(err, tasklist.ErrEmptyInput) {
					// Blank edits are ignored.
					err = nil
				}
				return finish(cmd, app, s, positional(err, idx))
			})
		},
	}
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <position>",
		Aliases: []string{"done"},
		Short:   "Toggle a task's completed flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, false, func(s *session) error {
				return finish(cmd, app, s, positional(s.mgr.ToggleComplete(cmdContext(cmd), idx), idx))
			})
		},
	}
}

func newSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <position>",
		Short: "Toggle a task's selected flag (for rm-selected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, false, func(s *session) error {
				return finish(cmd, app, s, positional(s.mgr.ToggleSelect(cmdContext(cmd), idx), idx))
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <position>",
		Aliases: []string{"delete"},
		Short:   "Delete a task (asks for confirmation)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, yes, func(s *session) error {
				return finish(cmd, app, s, positional(s.mgr.DeleteTask(cmdContext(cmd), idx), idx))
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newRemoveSelectedCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm-selected",
		Short: "Delete every selected task (asks for confirmation)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, yes, func(s *session) error {
				return finish(cmd, app, s, s.mgr.DeleteSelected(cmdContext(cmd)))
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newSortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "sort <asc|desc>",
		Short:     "Sort tasks by text (reset-order undoes it)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"asc", "desc"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := strings.ToLower(strings.TrimSpace(args[0]))
			if dir != "asc" && dir != "desc" {
				return writeErr(cmd, fmt.Errorf("invalid sort direction: %q (want asc|desc)", args[0]))
			}
			return withSession(cmd, app, false, func(s *session) error {
				if dir == "desc" {
					return finish(cmd, app, s, s.mgr.SortDescending(cmdContext(cmd)))
				}
				return finish(cmd, app, s, s.mgr.SortAscending(cmdContext(cmd)))
			})
		},
	}
}

func newResetOrderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-order",
		Short: "Restore the order saved by the last add, delete or move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, false, func(s *session) error {
				return finish(cmd, app, s, s.mgr.ResetOrder(cmdContext(cmd)))
			})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a task to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, false, func(s *session) error {
				err := s.mgr.Reorder(cmdContext(cmd), from, to)
				if errors.Is(err, tasklist.ErrIndexOutOfRange) {
					if from >= s.mgr.Len() {
						err = noTaskError{pos: from + 1}
					} else {
						err = noTaskError{pos: to + 1}
					}
				}
				return finish(cmd, app, s, err)
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all tasks with counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, false, func(s *session) error {
				return writeView(cmd, app, s.mgr.View())
			})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <position>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, false, func(s *session) error {
				v := s.mgr.View()
				if idx >= len(v.Rows) {
					return writeErr(cmd, noTaskError{pos: idx + 1})
				}
				row := v.Rows[idx]
				if app.Format == "text" {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTextRow(row))
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": row})
			})
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total, completed, deleted and edited counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, false, func(s *session) error {
				v := s.mgr.View()
				if app.Format == "text" {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTextCounts(v))
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]int{
					"totalCount":     v.Total,
					"completedCount": v.Completed,
					"deletedCount":   v.Deleted,
					"editedCount":    v.Edited,
				}})
			})
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
