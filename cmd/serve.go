package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/lwcswitch/internal/errors"
	"github.com/conneroisu/lwcswitch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Serve the live side panel over HTTP",
	Long: `Start the panel server. Routes:

  /                     panel page; ?path=<file>&dirty=<file>,<file>
  /api/related?path=    lookup result as JSON
  /ws?path=             WebSocket pushing a fresh result on every change
  /health               health check

Examples:
  lwcswitch serve
  lwcswitch serve --port 9000 --host 127.0.0.1`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveFlags *StandardFlags

func init() {
	rootCmd.AddCommand(serveCmd)
	serveFlags = AddStandardFlags(serveCmd, "server")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	if !a.config.Surfaces.EnablePanel {
		return errors.ErrSurfaceDisabled("panel", "surfaces.enable_panel")
	}

	serveFlags.ApplyServer(cmd, a.config)
	if err := serveFlags.ValidateFlags(); err != nil {
		return err
	}

	srv := server.New(a.config, a.scanner, a.logger)
	cmd.Printf("Serving panel on http://%s\n", srv.Addr())

	if err := srv.Start(ctx); err != nil {
		return errors.WrapNetwork(err, errors.ErrCodeServerFailed, "panel server stopped")
	}
	return nil
}
