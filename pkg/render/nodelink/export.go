package nodelink

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/structviz/pkg/cache"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/observability"
)

// Engines lists the Graphviz layout engines an export may request.
var Engines = []string{"circo", "dot", "neato", "fdp", "sfdp", "twopi", "osage"}

// Exporter renders graph exports with caching. Exports are keyed by the
// DOT source, so any change to the topology, highlight or theme misses.
type Exporter struct {
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewExporter creates an exporter. Nil arguments disable caching and use
// the default keyer.
func NewExporter(c cache.Cache, keyer cache.Keyer) *Exporter {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Exporter{Cache: c, Keyer: keyer}
}

// Export renders g as "dot", "svg", "png" or "pdf". The bool reports a
// cache hit.
func (e *Exporter) Export(ctx context.Context, g Graph, opts Options, format string) ([]byte, bool, error) {
	format = strings.ToLower(format)
	if err := errors.ValidateFormat(format); err != nil {
		return nil, false, err
	}
	if opts.Engine != "" && !slices.Contains(Engines, opts.Engine) {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "unknown layout engine %q (want one of %s)",
			opts.Engine, strings.Join(Engines, ", "))
	}
	if g == nil || g.VertexCount() == 0 {
		return nil, false, errors.New(errors.ErrCodeBackendUnavailable, "graph is not initialized")
	}

	dot := ToDOT(g, opts)
	if format == "dot" {
		return []byte(dot), false, nil
	}

	key := e.Keyer.ExportKey(cache.Hash([]byte(dot)), format)
	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "export")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "export")

	var (
		data []byte
		err  error
	)
	switch format {
	case "svg":
		data, err = RenderSVG(ctx, dot)
	case "pdf":
		data, err = RenderPDF(ctx, dot)
	case "png":
		data, err = RenderPNG(ctx, dot, 2.0)
	}
	if err != nil {
		return nil, false, err
	}

	if err := e.Cache.Set(ctx, key, data, cache.TTLExport); err == nil {
		observability.Cache().OnCacheSet(ctx, "export", len(data))
	}
	return data, false, nil
}
