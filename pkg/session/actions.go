package session

import (
	"context"
	"fmt"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/topology"
)

// =============================================================================
// Heap
// =============================================================================

// InsertHeap inserts value into the heap.
func (s *Session) InsertHeap(ctx context.Context, value int) error {
	return s.do(ctx, Heap, "insert", func() (Level, string, error) {
		s.heap.Insert(value)
		return okf("Inserted %d into Binary Heap", value)
	})
}

// ExtractHeap removes the heap's top element and returns it. The bool is
// false when the heap was empty.
func (s *Session) ExtractHeap(ctx context.Context) (int, bool, error) {
	var (
		top   int
		found bool
	)
	err := s.do(ctx, Heap, "extract", func() (Level, string, error) {
		top = s.heap.ExtractTop()
		if top == backend.EmptyHeap {
			return info("Heap is empty")
		}
		found = true
		return okf("Extracted value: %d", top)
	})
	return top, found, err
}

// ClearHeap removes every heap element.
func (s *Session) ClearHeap(ctx context.Context) error {
	return s.do(ctx, Heap, "clear", func() (Level, string, error) {
		s.heap.Clear()
		return ok("Heap cleared")
	})
}

// SetHeapKind switches between min and max ordering, reheapifying the
// current elements.
func (s *Session) SetHeapKind(ctx context.Context, minHeap bool) error {
	kind := heapKind(minHeap)
	return s.do(ctx, Heap, "set-kind", func() (Level, string, error) {
		if s.heap.IsMinHeap() == minHeap {
			return info("Heap is already " + kind)
		}
		if minHeap {
			s.heap.ConvertToMinHeap()
		} else {
			s.heap.ConvertToMaxHeap()
		}
		return ok("Converted to " + kind)
	})
}

func heapKind(minHeap bool) string {
	if minHeap {
		return "Min Heap"
	}
	return "Max Heap"
}

// =============================================================================
// AVL tree
// =============================================================================

// InsertTree inserts value into the AVL tree.
func (s *Session) InsertTree(ctx context.Context, value int) error {
	return s.do(ctx, AVL, "insert", func() (Level, string, error) {
		s.tree.Insert(value)
		s.lastRotation = s.tree.LastRotation()
		return okf("Inserted %d into AVL Tree - %s", value, s.lastRotation)
	})
}

// RemoveTree removes value from the AVL tree. Removing an absent value is
// not an error.
func (s *Session) RemoveTree(ctx context.Context, value int) error {
	return s.do(ctx, AVL, "remove", func() (Level, string, error) {
		s.tree.Remove(value)
		s.lastRotation = s.tree.LastRotation()
		return okf("Removed %d from AVL Tree - %s", value, s.lastRotation)
	})
}

// ClearTree removes every tree node.
func (s *Session) ClearTree(ctx context.Context) error {
	return s.do(ctx, AVL, "clear", func() (Level, string, error) {
		s.tree.Clear()
		s.lastRotation = backend.NoRotation
		return ok("AVL Tree cleared")
	})
}

// =============================================================================
// Graph
// =============================================================================

// InitGraph replaces the graph with n isolated vertices, using the
// directedness chosen with SetDirected. Counts above the display limit are
// accepted with a warning.
func (s *Session) InitGraph(ctx context.Context, n int) error {
	return s.do(ctx, Graph, "init", func() (Level, string, error) {
		if n < 1 {
			return failed(errors.New(errors.ErrCodeInvalidVertexCount, "Graph must have at least 1 node"))
		}
		if n > topology.MaxVertices {
			s.record(LevelWarning, fmt.Sprintf("Graph is limited to %d nodes maximum for visualization", topology.MaxVertices))
		}
		if err := s.topo.Initialize(n, s.graphDirected); err != nil {
			return failed(err)
		}
		return okf("Graph initialized with %d nodes (%s)", n, directedness(s.topo.Directed()))
	})
}

// AddEdge adds or overwrites the edge from → to.
func (s *Session) AddEdge(ctx context.Context, from, to, weight int) error {
	return s.do(ctx, Graph, "add-edge", func() (Level, string, error) {
		if err := s.graphReady(); err != nil {
			return failed(err)
		}
		if err := s.topo.AddEdge(from, to, weight); err != nil {
			return failed(s.vertexRange(err))
		}
		d := directedness(s.topo.Directed())
		if from == to {
			return okf("Added self-loop on vertex %d (weight: %d) in %s graph", from, weight, d)
		}
		return okf("Added edge %d %s %d (weight: %d) in %s graph", from, s.arrow(), to, weight, d)
	})
}

// RemoveEdge deletes the edge from → to.
func (s *Session) RemoveEdge(ctx context.Context, from, to int) error {
	return s.do(ctx, Graph, "remove-edge", func() (Level, string, error) {
		if err := s.graphReady(); err != nil {
			return failed(err)
		}
		if err := s.topo.RemoveEdge(from, to); err != nil {
			return failed(s.vertexRange(err))
		}
		d := directedness(s.topo.Directed())
		if from == to {
			return okf("Removed self-loop on vertex %d from %s graph", from, d)
		}
		return okf("Removed edge %d %s %d from %s graph", from, s.arrow(), to, d)
	})
}

// AddVertex appends one isolated vertex.
func (s *Session) AddVertex(ctx context.Context) error {
	return s.do(ctx, Graph, "add-vertex", func() (Level, string, error) {
		if err := s.graphReady(); err != nil {
			return failed(err)
		}
		if err := s.topo.AddVertex(); err != nil {
			if errors.Is(err, errors.ErrCodeVertexLimitExceeded) {
				err = errors.Wrap(errors.ErrCodeVertexLimitExceeded, err, "Cannot add more than %d vertices", topology.MaxVertices)
			}
			return failed(err)
		}
		n := s.topo.VertexCount()
		return okf("Added vertex %d. Graph now has %d vertices.", n-1, n)
	})
}

// RemoveVertex deletes vertex v; higher vertices are renumbered down by one.
func (s *Session) RemoveVertex(ctx context.Context, v int) error {
	return s.do(ctx, Graph, "remove-vertex", func() (Level, string, error) {
		if err := s.graphReady(); err != nil {
			return failed(err)
		}
		if err := s.topo.RemoveVertex(v); err != nil {
			switch {
			case errors.Is(err, errors.ErrCodeInvalidVertex):
				err = errors.Wrap(errors.ErrCodeInvalidVertex, err, "Vertex number must be between 0 and %d", s.topo.VertexCount()-1)
			case errors.Is(err, errors.ErrCodeCannotRemoveLastVertex):
				err = errors.Wrap(errors.ErrCodeCannotRemoveLastVertex, err, "Cannot remove vertex. Graph must have at least 1 vertex.")
			}
			return failed(err)
		}
		return okf("Removed vertex %d. Graph now has %d vertices.", v, s.topo.VertexCount())
	})
}

// SetDirected sets the directedness of the current graph and of graphs
// created later. Making a graph undirected mirrors its edges.
func (s *Session) SetDirected(ctx context.Context, directed bool) error {
	return s.do(ctx, Graph, "set-directed", func() (Level, string, error) {
		s.graphDirected = directed
		if !s.topo.Initialized() {
			return info(fmt.Sprintf("New graphs will be %s", directedness(directed)))
		}
		if err := s.topo.SetDirected(directed); err != nil {
			return failed(err)
		}
		return ok("Graph set to " + directedness(s.topo.Directed()))
	})
}

// ClearGraph removes the graph entirely.
func (s *Session) ClearGraph(ctx context.Context) error {
	return s.do(ctx, Graph, "clear", func() (Level, string, error) {
		if !s.topo.Initialized() {
			return failed(errors.New(errors.ErrCodeBackendUnavailable, "Graph not initialized"))
		}
		s.topo.Clear()
		s.clearHighlight()
		return info("Graph completely removed from display")
	})
}

// RunAlgorithm runs alg from start and replaces the highlight with its
// result. start is ignored by Prim's algorithm.
func (s *Session) RunAlgorithm(ctx context.Context, alg highlight.Algorithm, start int) error {
	return s.do(ctx, Graph, alg.String(), func() (Level, string, error) {
		if err := s.graphReady(); err != nil {
			return failed(err)
		}
		if err := highlight.CheckPrecondition(alg, s.topo); err != nil {
			return failed(err)
		}

		var (
			raw string
			err error
		)
		switch alg {
		case highlight.BFS:
			raw, err = s.topo.BFS(start)
		case highlight.DFS:
			raw, err = s.topo.DFS(start)
		case highlight.Dijkstra:
			raw, err = s.topo.Dijkstra(start)
		case highlight.Prim:
			raw, err = s.topo.PrimMST()
		default:
			err = errors.New(errors.ErrCodeInvalidAlgorithm, "no algorithm selected")
		}
		if err != nil {
			if errors.Is(err, errors.ErrCodeInvalidVertex) {
				err = errors.Wrap(errors.ErrCodeInvalidVertex, err, "Start node must be between 0 and %d", s.topo.VertexCount()-1)
			}
			return failed(err)
		}

		set, err := highlight.Interpret(alg, raw, s.topo)
		if err != nil {
			s.clearHighlight()
			return failed(err)
		}
		s.hl, s.hlStart = set, start

		switch alg {
		case highlight.BFS:
			return ok("BFS traversal: " + raw)
		case highlight.DFS:
			return ok("DFS traversal: " + raw)
		case highlight.Dijkstra:
			return ok("Dijkstra distances: " + raw)
		}
		return ok("Prim's MST edges: " + raw)
	})
}

func (s *Session) graphReady() error {
	if !s.topo.Initialized() {
		return errors.New(errors.ErrCodeBackendUnavailable, "Graph not initialized. Please initialize graph first.")
	}
	return nil
}

// vertexRange rewrites an out-of-range vertex error into the form shown to
// users.
func (s *Session) vertexRange(err error) error {
	if errors.Is(err, errors.ErrCodeInvalidVertex) {
		return errors.Wrap(errors.ErrCodeInvalidVertex, err, "Node numbers must be between 0 and %d", s.topo.VertexCount()-1)
	}
	return err
}

func (s *Session) arrow() string {
	if s.topo.Directed() {
		return "→"
	}
	return "↔"
}

func directedness(directed bool) string {
	if directed {
		return "directed"
	}
	return "undirected"
}

// =============================================================================
// Hash table
// =============================================================================

// InsertHash stores value under key.
func (s *Session) InsertHash(ctx context.Context, key, value int) error {
	return s.do(ctx, Hash, "insert", func() (Level, string, error) {
		s.table.Insert(key, value)
		return okf("Inserted key %d with value %d", key, value)
	})
}

// SearchHash looks up key. A missing key is reported in the message log and
// the returned result, not as an error.
func (s *Session) SearchHash(ctx context.Context, key int) (SearchResult, error) {
	var res SearchResult
	err := s.do(ctx, Hash, "search", func() (Level, string, error) {
		v := s.table.Search(key)
		res = SearchResult{Key: key, Value: v, Found: v != backend.NotFound}
		s.lastSearch = &res
		if !res.Found {
			return LevelError, fmt.Sprintf("Key %d not found", key), nil
		}
		return okf("Found key %d: value = %d", key, v)
	})
	return res, err
}

// ClearHash removes every entry.
func (s *Session) ClearHash(ctx context.Context) error {
	return s.do(ctx, Hash, "clear", func() (Level, string, error) {
		s.table.Clear()
		s.lastSearch = nil
		return ok("Hash Table cleared")
	})
}
