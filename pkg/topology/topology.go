// Package topology tracks the shape of a graph that lives in a structure
// backend.
//
// A [Topology] owns one backend graph handle and mirrors its vertex count,
// directedness and weighted adjacency matrix. The mirror is never derived
// from the request that caused a mutation: after every change the backend's
// matrix snapshot is re-read and adopted, so what is displayed is what the
// backend actually holds.
//
// Input is validated before the backend is called. A rejected call leaves
// both the backend and the mirror unchanged.
package topology

import (
	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

// MaxVertices is the largest vertex count the graph layout can show legibly.
const MaxVertices = 15

// Topology is the model-side view of a backend graph.
type Topology struct {
	module   backend.Module
	graph    backend.Graph
	weights  snapshot.Matrix
	directed bool
	onMutate func()
}

// New returns an uninitialized topology that creates graphs through m.
func New(m backend.Module) *Topology {
	return &Topology{module: m}
}

// OnMutate registers fn to run after every successful structural change.
func (t *Topology) OnMutate(fn func()) {
	t.onMutate = fn
}

// Initialized reports whether a backend graph is attached.
func (t *Topology) Initialized() bool { return t.graph != nil }

// VertexCount returns the number of vertices, or 0 when uninitialized.
func (t *Topology) VertexCount() int { return t.weights.Size() }

// Directed reports the directedness last read from the backend.
func (t *Topology) Directed() bool { return t.directed }

// ExceedsDisplayLimit reports whether the graph has more vertices than
// [MaxVertices]. Such graphs are kept but render crowded.
func (t *Topology) ExceedsDisplayLimit() bool { return t.VertexCount() > MaxVertices }

// Weights returns a copy of the adjacency matrix.
func (t *Topology) Weights() snapshot.Matrix { return t.weights.Clone() }

// Weight returns the weight of edge (from, to), or 0 when there is none.
func (t *Topology) Weight(from, to int) int {
	if !t.valid(from) || !t.valid(to) {
		return 0
	}
	return t.weights[from][to]
}

// Edges lists every nonzero cell in row-major order. Undirected graphs list
// each unordered pair once, as (i, j) with i <= j unless the backend only
// set the lower cell.
func (t *Topology) Edges() []snapshot.Edge {
	var out []snapshot.Edge
	for i, row := range t.weights {
		for j, w := range row {
			if w == 0 || (!t.directed && j < i && t.weights[j][i] != 0) {
				continue
			}
			out = append(out, snapshot.Edge{U: i, V: j, Weight: w})
		}
	}
	return out
}

// Initialize discards any current graph and attaches a fresh backend graph
// with n vertices and no edges.
func (t *Topology) Initialize(n int, directed bool) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidVertexCount, "vertex count must be at least 1, got %d", n)
	}
	if t.module == nil {
		return errors.New(errors.ErrCodeBackendUnavailable, "no structure backend configured")
	}
	g, err := t.module.NewGraph(n, directed)
	if err != nil {
		return err
	}
	t.release()
	t.graph = g
	t.weights = snapshot.Zero(n)
	t.directed = g.IsDirected()
	t.mutated()
	return nil
}

// AddEdge adds or overwrites edge (from, to). Self-loops are allowed. A
// weight of 0 would be indistinguishable from "no edge" and is rejected.
func (t *Topology) AddEdge(from, to, weight int) error {
	if err := t.checkEdge(from, to); err != nil {
		return err
	}
	if weight == 0 {
		return errors.New(errors.ErrCodeInvalidWeight, "edge weight must be nonzero (use remove edge to delete an edge)")
	}
	t.graph.AddEdge(from, to, weight)
	return t.refresh()
}

// RemoveEdge deletes edge (from, to). Removing a missing edge is not an error.
func (t *Topology) RemoveEdge(from, to int) error {
	if err := t.checkEdge(from, to); err != nil {
		return err
	}
	t.graph.RemoveEdge(from, to)
	return t.refresh()
}

// AddVertex grows the graph by one isolated vertex. The backend cannot
// resize in place, so a new graph is built and every edge is replayed onto
// it before the old one is released.
func (t *Topology) AddVertex() error {
	if err := t.checkReady(); err != nil {
		return err
	}
	n := t.VertexCount()
	if n+1 > MaxVertices {
		return errors.New(errors.ErrCodeVertexLimitExceeded, "cannot add vertex: limit is %d", MaxVertices)
	}

	current, err := snapshot.ParseMatrix(t.graph.Matrix())
	if err != nil {
		return err
	}
	g, err := t.module.NewGraph(n+1, t.directed)
	if err != nil {
		return err
	}
	for i, row := range current {
		for j, w := range row {
			if w != 0 {
				g.AddEdge(i, j, w)
			}
		}
	}
	return t.replace(g)
}

// RemoveVertex deletes vertex i and its edges. Vertices above i are
// renumbered down by one.
func (t *Topology) RemoveVertex(i int) error {
	if err := t.checkReady(); err != nil {
		return err
	}
	n := t.VertexCount()
	if !t.valid(i) {
		return errors.New(errors.ErrCodeInvalidVertex, "vertex %d out of range [0, %d)", i, n)
	}
	if n == 1 {
		return errors.New(errors.ErrCodeCannotRemoveLastVertex, "cannot remove the last vertex (clear the graph instead)")
	}

	g := t.graph.RemoveVertex(i)
	if g == nil || g == t.graph {
		return errors.New(errors.ErrCodeBackendContract, "backend did not return a new graph after removing vertex %d", i)
	}
	return t.replace(g)
}

// SetDirected changes directedness in place. The resulting flag is read back
// from the backend rather than taken from the request.
func (t *Topology) SetDirected(directed bool) error {
	if err := t.checkReady(); err != nil {
		return err
	}
	t.graph.SetDirected(directed)
	return t.refresh()
}

// Clear releases the backend graph. The topology becomes uninitialized.
func (t *Topology) Clear() {
	if t.graph == nil {
		return
	}
	t.release()
	t.mutated()
}

// Close releases the backend graph without notifying observers.
func (t *Topology) Close() {
	t.release()
}

// Algorithm entry points. They validate the start vertex and return the raw
// backend result for package highlight to interpret.

// BFS runs breadth-first search from start.
func (t *Topology) BFS(start int) (string, error) {
	if err := t.checkStart(start); err != nil {
		return "", err
	}
	return t.graph.BFS(start), nil
}

// DFS runs depth-first search from start.
func (t *Topology) DFS(start int) (string, error) {
	if err := t.checkStart(start); err != nil {
		return "", err
	}
	return t.graph.DFS(start), nil
}

// Dijkstra computes shortest distances from start.
func (t *Topology) Dijkstra(start int) (string, error) {
	if err := t.checkStart(start); err != nil {
		return "", err
	}
	return t.graph.Dijkstra(start), nil
}

// PrimMST computes a minimum spanning tree. It requires an undirected graph.
func (t *Topology) PrimMST() (string, error) {
	if err := t.checkReady(); err != nil {
		return "", err
	}
	if t.directed {
		return "", errors.New(errors.ErrCodeAlgorithmPrecondition, "Prim's algorithm requires an undirected graph")
	}
	return t.graph.PrimMST(), nil
}

// replace swaps in g once its matrix has been read. If g cannot be read it
// is released and the current graph stays attached.
func (t *Topology) replace(g backend.Graph) error {
	m, err := readMatrix(g)
	if err != nil {
		g.Release()
		return err
	}
	t.release()
	t.graph = g
	return t.adopt(m)
}

// refresh re-reads directedness and weights from the backend.
func (t *Topology) refresh() error {
	m, err := readMatrix(t.graph)
	if err != nil {
		return err
	}
	return t.adopt(m)
}

// adopt takes m as the new mirror. An asymmetric matrix in an undirected
// graph is still adopted so the display matches the backend, but the
// violation is reported.
func (t *Topology) adopt(m snapshot.Matrix) error {
	t.weights = m
	t.directed = t.graph.IsDirected()
	t.mutated()

	if !t.directed && !m.Symmetric() {
		return errors.New(errors.ErrCodeBackendContract, "undirected graph returned an asymmetric matrix")
	}
	return nil
}

func readMatrix(g backend.Graph) (snapshot.Matrix, error) {
	m, err := snapshot.ParseMatrix(g.Matrix())
	if err != nil {
		return nil, err
	}
	if want := g.VertexCount(); m.Size() != want {
		return nil, errors.New(errors.ErrCodeBackendContract, "matrix snapshot has %d rows, backend reports %d vertices", m.Size(), want)
	}
	return m, nil
}

func (t *Topology) release() {
	if t.graph != nil {
		t.graph.Release()
	}
	t.graph = nil
	t.weights = nil
}

func (t *Topology) mutated() {
	if t.onMutate != nil {
		t.onMutate()
	}
}

func (t *Topology) valid(v int) bool { return v >= 0 && v < t.VertexCount() }

func (t *Topology) checkReady() error {
	if t.graph == nil {
		return errors.New(errors.ErrCodeBackendUnavailable, "graph is not initialized")
	}
	return nil
}

func (t *Topology) checkEdge(from, to int) error {
	if err := t.checkReady(); err != nil {
		return err
	}
	n := t.VertexCount()
	for _, v := range [2]int{from, to} {
		if !t.valid(v) {
			return errors.New(errors.ErrCodeInvalidVertex, "vertex %d out of range [0, %d)", v, n)
		}
	}
	return nil
}

func (t *Topology) checkStart(start int) error {
	if err := t.checkReady(); err != nil {
		return err
	}
	if !t.valid(start) {
		return errors.New(errors.ErrCodeInvalidVertex, "start vertex %d out of range [0, %d)", start, t.VertexCount())
	}
	return nil
}
