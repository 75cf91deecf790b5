package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/render/nodelink"
	"github.com/matzehuels/structviz/pkg/script"
)

// exportCommand creates the command that exports a script's final graph.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		format  string
		engine  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export <script.yaml>",
		Short: "Export the graph built by a script through Graphviz",
		Long: `Replay a YAML action script and export the resulting graph, including
the highlight of the last algorithm run, as DOT, SVG, PNG or PDF.

DOT output goes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc, err := loadScript(args[0])
			if err != nil {
				return err
			}
			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			orch, exporter := c.newRenderers(store)

			sess, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			res, err := script.Run(ctx, sess, sc, nil)
			if err != nil {
				return err
			}
			if res.Failed > 0 {
				printWarning("%d of %d steps failed", res.Failed, len(sc.Steps))
			}

			hl, _ := sess.Highlight()
			format = strings.ToLower(format)
			data, hit, err := exporter.Export(ctx, sess.Topology(), nodelink.Options{
				Highlight: hl,
				Theme:     orch.Theme,
				Engine:    engine,
			}, format)
			if err != nil {
				return err
			}

			if output == "" {
				if format != "dot" && format != "svg" {
					return fmt.Errorf("%s output needs --output", format)
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printFile(output, hit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot and svg)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "export format: dot, svg, png, pdf")
	cmd.Flags().StringVar(&engine, "engine", nodelink.DefaultEngine, "Graphviz layout engine: "+strings.Join(nodelink.Engines, ", "))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the export cache")

	return cmd
}
