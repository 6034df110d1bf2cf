package cli

import (
	"fmt"

	"tasklist-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var to string
	var title string
	var openOnly bool
	var counts bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the list as a Markdown checklist (derived, not canonical)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, false, func(s *session) error {
				ropt := publish.RenderOptions{Title: title, OpenOnly: openOnly, IncludeCounts: counts}
				if to == "" || to == "-" {
					_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderMarkdown(s.mgr.View(), ropt))
					return err
				}
				res, err := publish.WriteList(s.mgr.View(), to, publish.WriteOptions{
					RenderOptions: ropt,
					Overwrite:     overwrite,
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				s.logger.Info("published", "written", res.Written)
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output file or directory (default: print to stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: To-Do List)")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only include tasks that are not completed")
	cmd.Flags().BoolVar(&counts, "counts", false, "Append the counters section")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")

	return cmd
}
