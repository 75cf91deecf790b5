package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/server"
	"github.com/matzehuels/structviz/pkg/session"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions over HTTP",
		Long: `Serve sessions over HTTP. Clients create a session with POST /sessions,
post actions to /sessions/{id}/actions and fetch frames from
/sessions/{id}/frames/{structure}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			m, err := c.newModule(ctx)
			if err != nil {
				return err
			}
			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			orch, exporter := c.newRenderers(store)

			srv := server.New(m, orch, exporter, c.Logger,
				server.WithStore(session.NewMemoryStore(time.Duration(c.Config.Session.IdleTTL))),
				server.WithSessionOptions(session.WithMessageLimit(c.Config.Session.MessageLimit)))

			printInfo("Serving on %s", addr)
			printNextStep("Create a session", "curl -X POST http://localhost"+addr+"/sessions")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	return cmd
}
