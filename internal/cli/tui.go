package cli

import (
	"tasklist-cli/internal/tui"

	"github.com/spf13/cobra"
)

// runTUI holds the store lock for the whole interactive session.
func runTUI(cmd *cobra.Command, app *App) error {
	bridge := tui.NewBridge()
	sess, err := openSession(cmdContext(cmd), app, bridge.Options()...)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()

	sess.logger.Info("tui started", "dir", sess.store.Dir)
	if err := tui.Run(cmdContext(cmd), sess.store, sess.mgr, bridge, sess.cfg, sess.logger); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
