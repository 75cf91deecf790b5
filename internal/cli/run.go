package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/render"
	"github.com/matzehuels/structviz/pkg/script"
	"github.com/matzehuels/structviz/pkg/session"
)

// runOpts holds the flags of the run command.
type runOpts struct {
	outDir   string
	formats  []string
	scale    float64
	final    bool
	messages bool
	noCache  bool
}

// runCommand creates the command that replays a script and writes frames.
func (c *CLI) runCommand() *cobra.Command {
	var formats string
	opts := runOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Replay an action script and write its frames",
		Long: `Replay a YAML action script against a fresh session.

Every step with a "frame" name writes the step's structure to
<output>/<frame>.<format>. With --final the last state of all four
structures is written as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formats)
			if err := validateFrameFormats(opts.formats); err != nil {
				return err
			}
			return c.runScript(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", ".", "output directory for frames")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "frame format(s): svg, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale for png frames")
	cmd.Flags().BoolVar(&opts.final, "final", false, "also write the final state of every structure")
	cmd.Flags().BoolVar(&opts.messages, "messages", false, "print the session message log")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")

	return cmd
}

// parseFormats splits a comma-separated format list.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{"svg"}
	}
	return out
}

func validateFrameFormats(formats []string) error {
	for _, f := range formats {
		if f == "dot" {
			return errors.New(errors.ErrCodeInvalidFormat, "dot is a graph export format, use the export command")
		}
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func loadScript(path string) (*script.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return script.Parse(f)
}

func (c *CLI) runScript(ctx context.Context, path string, opts runOpts) error {
	logger := loggerFromContext(ctx)
	sc, err := loadScript(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()
	orch, _ := c.newRenderers(store)

	sess, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	prog := newProgress(logger)
	frames := 0
	write := func(ctx context.Context, structure session.Structure, name string) error {
		frame, err := orch.RenderStructure(ctx, sess, structure)
		if err != nil {
			return err
		}
		if frame.Degraded != nil {
			printWarning("%s: %s", name, errors.UserMessage(frame.Degraded))
		}
		for _, format := range opts.formats {
			out := filepath.Join(opts.outDir, name+"."+format)
			if err := writeFrame(ctx, out, frame, format, opts.scale); err != nil {
				return err
			}
			printFile(out, frame.Cached)
		}
		frames++
		return nil
	}

	name := sc.Name
	if name == "" {
		name = filepath.Base(path)
	}
	printInfo("Running %s (%d steps)", name, len(sc.Steps))

	res, err := script.Run(ctx, sess, sc, func(ctx context.Context, _ int, st script.Step) error {
		return write(ctx, session.Structure(st.Structure), st.Frame)
	})
	if err != nil {
		return err
	}
	if opts.final {
		for _, s := range session.Structures {
			if err := write(ctx, s, "final-"+string(s)); err != nil {
				return err
			}
		}
	}

	if opts.messages {
		printMessages(os.Stdout, sess.Messages())
	}
	if res.Failed > 0 {
		printWarning("%d of %d steps failed", res.Failed, len(sc.Steps))
	} else {
		printSuccess("Applied %d steps", res.Applied)
	}
	prog.done(fmt.Sprintf("Rendered %d frames", frames))
	return nil
}

// writeFrame writes frame in format, converting from SVG when needed.
func writeFrame(ctx context.Context, path string, frame *render.Frame, format string, scale float64) error {
	data := frame.SVG
	if format != "svg" {
		var err error
		if data, err = render.Convert(ctx, frame.SVG, format, scale); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
