package cli

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/backend/native"
	"github.com/matzehuels/structviz/pkg/session"
)

// sessionCommand creates the interactive session command.
func (c *CLI) sessionCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive session",
		Long: `Start an interactive session in the terminal.

Type commands such as "heap insert 5" or "graph bfs 0" and press enter.
Type "help" for the full list and "save file.svg" to render the active
structure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			orch, _ := c.newRenderers(store)

			m := native.New(native.WithLoadDelay(time.Duration(c.Config.Backend.LoadDelay)))
			model := NewSessionModel(ctx, m, c.Config.Policy(), orch,
				session.WithLogger(c.Logger),
				session.WithMessageLimit(c.Config.Session.MessageLimit))

			// The logger shares the terminal with the TUI; keep it quiet.
			c.Logger.SetOutput(io.Discard)
			defer c.Logger.SetOutput(c.logOut)

			_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if s := model.Session(); s != nil {
				defer s.Close()
				printMessages(os.Stdout, s.Messages())
			}
			if err != nil {
				return err
			}
			return model.Err()
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frame cache")
	return cmd
}
