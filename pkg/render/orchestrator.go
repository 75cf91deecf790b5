package render

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/structviz/pkg/cache"
	"github.com/matzehuels/structviz/pkg/canvas"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/observability"
	"github.com/matzehuels/structviz/pkg/session"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

// Frame is one rendered view of a structure.
type Frame struct {
	Structure session.Structure
	SVG       []byte
	// Key is the cache key the frame is stored under.
	Key    string
	Cached bool
	// Degraded holds the snapshot error that made the frame fall back to
	// its error state. The frame is still complete and drawable.
	Degraded error
}

// Orchestrator renders session state with caching.
//
// The Orchestrator is stateless except for the cache, the theme and the
// logger; it doesn't store frames itself. Multiple goroutines can use the
// same Orchestrator with different sessions.
type Orchestrator struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Theme  canvas.Theme
	// FrameTTL is how long rendered frames stay cached.
	FrameTTL time.Duration

	themeHash string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTheme sets the colors used for every frame. Empty fields fall back to
// the default theme.
func WithTheme(t canvas.Theme) Option {
	return func(o *Orchestrator) { o.Theme = t.Merge(canvas.DefaultTheme()) }
}

// WithFrameTTL sets how long frames stay cached. Non-positive values keep
// the default.
func WithFrameTTL(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.FrameTTL = d
		}
	}
}

// New creates an orchestrator with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func New(c cache.Cache, keyer cache.Keyer, logger *log.Logger, opts ...Option) *Orchestrator {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	o := &Orchestrator{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Theme:    canvas.DefaultTheme(),
		FrameTTL: cache.TTLFrame,
	}
	for _, opt := range opts {
		opt(o)
	}
	data, _ := json.Marshal(o.Theme)
	o.themeHash = cache.Hash(data)
	return o
}

// Render draws the session's active structure.
func (o *Orchestrator) Render(ctx context.Context, s *session.Session) (*Frame, error) {
	return o.RenderStructure(ctx, s, s.Active())
}

// RenderStructure draws structure as an SVG frame, serving it from the
// cache when the same state was rendered before.
func (o *Orchestrator) RenderStructure(ctx context.Context, s *session.Session, structure session.Structure) (*Frame, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(structure))
	start := time.Now()

	frame, err := o.renderStructure(ctx, s, structure)
	cached := frame != nil && frame.Cached
	hooks.OnRenderComplete(ctx, string(structure), cached, time.Since(start), err)
	return frame, err
}

func (o *Orchestrator) renderStructure(ctx context.Context, s *session.Session, structure session.Structure) (*Frame, error) {
	st, err := capture(s, structure)
	if err != nil {
		return nil, err
	}
	stateHash, err := st.hash()
	if err != nil {
		return nil, fmt.Errorf("hash frame state: %w", err)
	}
	key := o.Keyer.FrameKey(string(structure), stateHash, cache.FrameKeyOpts{
		Format:    "svg",
		ThemeHash: o.themeHash,
	})
	frame := &Frame{Structure: structure, Key: key}

	data, hit, err := o.Cache.Get(ctx, key)
	switch {
	case err != nil:
		o.Logger.Debug("frame cache lookup failed", "structure", structure, "err", err)
	case hit:
		observability.Cache().OnCacheHit(ctx, "frame")
		frame.SVG, frame.Cached = data, true
		return frame, nil
	}
	observability.Cache().OnCacheMiss(ctx, "frame")

	svg := canvas.NewSVG(canvas.WithTheme(o.Theme), canvas.WithTitle(structure.Title()))
	frame.Degraded = o.paint(ctx, st, svg)
	frame.SVG = svg.Bytes()

	// Degraded frames are not cached so the snapshot error is reported
	// again on the next render.
	if frame.Degraded == nil {
		if err := o.Cache.Set(ctx, key, frame.SVG, o.FrameTTL); err != nil {
			o.Logger.Warn("failed to cache frame", "structure", structure, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "frame", len(frame.SVG))
		}
	}
	return frame, nil
}

// Draw paints structure onto surf without caching. Snapshot errors degrade
// the drawing and are logged; only an unknown structure is returned as an
// error.
func (o *Orchestrator) Draw(ctx context.Context, s *session.Session, structure session.Structure, surf canvas.Surface) error {
	st, err := capture(s, structure)
	if err != nil {
		return err
	}
	surf.Clear()
	o.paint(ctx, st, surf)
	return nil
}

// paint draws st and returns the snapshot error, if any, that forced the
// frame into its error state.
func (o *Orchestrator) paint(ctx context.Context, st *state, surf canvas.Surface) error {
	p := painter{s: surf, th: o.Theme}
	var err error
	switch st.Structure {
	case session.Heap:
		p.heap(st)
	case session.AVL:
		err = p.tree(st)
	case session.Graph:
		p.graph(st)
	case session.Hash:
		err = p.hash(st)
	}
	if err != nil {
		o.Logger.Warn("malformed snapshot", "structure", st.Structure, "err", err)
		observability.Render().OnSnapshotError(ctx, string(st.Structure), err)
	}
	return err
}

// state is everything a frame depends on besides the theme.
type state struct {
	Structure session.Structure `json:"structure"`
	Snapshot  string            `json:"snapshot"`

	MinHeap  bool                  `json:"minHeap,omitempty"`
	Rotation string                `json:"rotation,omitempty"`
	Search   *session.SearchResult `json:"search,omitempty"`

	Initialized bool            `json:"initialized,omitempty"`
	Directed    bool            `json:"directed,omitempty"`
	Weights     snapshot.Matrix `json:"-"`
	Highlight   highlight.Set   `json:"highlight"`
	Start       int             `json:"start,omitempty"`
}

func (st *state) hash() (string, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// capture reads the latest snapshot of structure from the session.
func capture(s *session.Session, structure session.Structure) (*state, error) {
	if _, err := session.ParseStructure(string(structure)); err != nil {
		return nil, err
	}
	st := &state{Structure: structure}
	switch structure {
	case session.Heap:
		h := s.HeapHandle()
		st.Snapshot = h.Array()
		st.MinHeap = h.IsMinHeap()
	case session.AVL:
		st.Snapshot = s.TreeHandle().Tree()
		st.Rotation = s.LastRotation()
	case session.Graph:
		topo := s.Topology()
		st.Initialized = topo.Initialized()
		if st.Initialized {
			st.Weights = topo.Weights()
			st.Snapshot = snapshot.FormatMatrix(st.Weights)
			st.Directed = topo.Directed()
			st.Highlight, st.Start = s.Highlight()
		}
	case session.Hash:
		st.Snapshot = s.HashHandle().Table()
		st.Search = s.LastSearch()
	}
	return st, nil
}
