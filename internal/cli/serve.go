package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padviz/internal/server"
)

// serveCommand creates the serve command for running the rendering service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering service",
		Long: `Run the HTTP rendering service.

The service accepts control-flow JSON over HTTP and responds with diagram
geometry or rendered artifacts:

  GET  /healthz     liveness probe
  POST /v1/layout   control-flow JSON -> geometry JSON
  POST /v1/render   control-flow JSON -> rendered artifact

The cache backend, default style, and listen address come from the config
file; --addr overrides the configured address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(false)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.WithAddr(addr))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")

	return cmd
}
