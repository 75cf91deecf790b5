// Package native is an in-process structure backend.
//
// Its snapshots are byte-compatible with the encodings documented in package
// snapshot. An optional load delay makes Ready report false for a while after
// construction, which lets callers exercise their readiness handling.
package native

import (
	"sync/atomic"
	"time"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/errors"
)

// Module creates native backend handles.
type Module struct {
	loadedAt time.Time
	live     atomic.Int64
}

// Option configures a Module.
type Option func(*Module)

// WithLoadDelay makes the module report not ready until d has elapsed.
func WithLoadDelay(d time.Duration) Option {
	return func(m *Module) { m.loadedAt = time.Now().Add(d) }
}

// New creates a native module. Without options it is ready immediately.
func New(opts ...Option) *Module {
	m := &Module{loadedAt: time.Now()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ready reports whether the load delay has elapsed.
func (m *Module) Ready() bool {
	return !time.Now().Before(m.loadedAt)
}

// Live returns the number of handles created and not yet released.
func (m *Module) Live() int {
	return int(m.live.Load())
}

func (m *Module) check() error {
	if !m.Ready() {
		return errors.New(errors.ErrCodeBackendUnavailable, "structure backend is still loading")
	}
	return nil
}

// NewHeap creates an empty heap.
func (m *Module) NewHeap(min bool) (backend.Heap, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	h := newHeap(min)
	h.handle = m.track()
	return h, nil
}

// NewTree creates an empty AVL tree.
func (m *Module) NewTree() (backend.Tree, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	t := newAVL()
	t.handle = m.track()
	return t, nil
}

// NewGraph creates a graph with the given vertex count and no edges.
func (m *Module) NewGraph(vertices int, directed bool) (backend.Graph, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if vertices < 1 {
		return nil, errors.New(errors.ErrCodeInvalidVertexCount, "graph needs at least one vertex, got %d", vertices)
	}
	return m.newGraph(vertices, directed), nil
}

// NewHashTable creates an empty hash table.
func (m *Module) NewHashTable() (backend.HashTable, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	t := newHashTable()
	t.handle = m.track()
	return t, nil
}

func (m *Module) newGraph(vertices int, directed bool) *graph {
	g := newGraph(m, vertices, directed)
	g.handle = m.track()
	return g
}

func (m *Module) track() handle {
	m.live.Add(1)
	return handle{module: m}
}

// handle implements backend.Releaser with live-handle accounting.
type handle struct {
	module   *Module
	released bool
}

// Release frees the handle.
func (h *handle) Release() {
	if h.released || h.module == nil {
		return
	}
	h.released = true
	h.module.live.Add(-1)
}

var _ backend.Module = (*Module)(nil)
