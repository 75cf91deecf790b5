package topology

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/backend/native"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

func chain(t *testing.T, m backend.Module) *Topology {
	t.Helper()
	topo := New(m)
	require.NoError(t, topo.Initialize(4, false))
	require.NoError(t, topo.AddEdge(0, 1, 5))
	require.NoError(t, topo.AddEdge(1, 2, 3))
	require.NoError(t, topo.AddEdge(2, 3, 1))
	return topo
}

func TestInitialize(t *testing.T) {
	topo := New(native.New())
	assert.False(t, topo.Initialized())

	err := topo.Initialize(0, false)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidVertexCount))
	assert.False(t, topo.Initialized())

	require.NoError(t, topo.Initialize(3, true))
	assert.True(t, topo.Initialized())
	assert.Equal(t, 3, topo.VertexCount())
	assert.True(t, topo.Directed())
	assert.False(t, topo.Weights().HasEdges())
	assert.False(t, topo.ExceedsDisplayLimit())

	require.NoError(t, topo.Initialize(MaxVertices+2, false))
	assert.True(t, topo.ExceedsDisplayLimit())
}

func TestInitializeReleasesPreviousGraph(t *testing.T) {
	m := native.New()
	topo := New(m)
	require.NoError(t, topo.Initialize(3, false))
	require.NoError(t, topo.Initialize(5, false))
	assert.Equal(t, 1, m.Live())

	topo.Close()
	assert.Equal(t, 0, m.Live())
}

func TestUninitialized(t *testing.T) {
	topo := New(native.New())
	checks := map[string]error{
		"AddEdge":      topo.AddEdge(0, 0, 1),
		"RemoveEdge":   topo.RemoveEdge(0, 0),
		"AddVertex":    topo.AddVertex(),
		"RemoveVertex": topo.RemoveVertex(0),
		"SetDirected":  topo.SetDirected(true),
	}
	for name, err := range checks {
		assert.True(t, errors.Is(err, errors.ErrCodeBackendUnavailable), name)
	}
	_, err := topo.BFS(0)
	assert.True(t, errors.Is(err, errors.ErrCodeBackendUnavailable))
}

func TestAddEdgeValidation(t *testing.T) {
	topo := chain(t, native.New())
	before := topo.Weights()

	tests := []struct {
		name     string
		from, to int
		weight   int
		code     errors.Code
	}{
		{"negative from", -1, 0, 2, errors.ErrCodeInvalidVertex},
		{"to out of range", 0, 4, 2, errors.ErrCodeInvalidVertex},
		{"zero weight", 0, 3, 0, errors.ErrCodeInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := topo.AddEdge(tt.from, tt.to, tt.weight)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			assert.Equal(t, before, topo.Weights())
		})
	}
}

func TestSelfLoopAndNegativeWeight(t *testing.T) {
	topo := chain(t, native.New())
	require.NoError(t, topo.AddEdge(2, 2, 4))
	require.NoError(t, topo.AddEdge(0, 3, -2))
	assert.Equal(t, 4, topo.Weight(2, 2))
	assert.Equal(t, -2, topo.Weight(3, 0))
}

func TestUndirectedSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	topo := New(native.New())
	require.NoError(t, topo.Initialize(6, false))

	for step := 0; step < 200; step++ {
		u, v := rng.Intn(6), rng.Intn(6)
		if rng.Intn(3) == 0 {
			require.NoError(t, topo.RemoveEdge(u, v))
		} else {
			require.NoError(t, topo.AddEdge(u, v, 1+rng.Intn(20)))
		}
		require.True(t, topo.Weights().Symmetric(), "asymmetric after step %d", step)
	}
}

func TestEdges(t *testing.T) {
	topo := chain(t, native.New())
	want := []snapshot.Edge{{U: 0, V: 1, Weight: 5}, {U: 1, V: 2, Weight: 3}, {U: 2, V: 3, Weight: 1}}
	assert.Equal(t, want, topo.Edges())

	require.NoError(t, topo.SetDirected(true))
	assert.Len(t, topo.Edges(), 6)
}

func TestRemoveVertexRenumbers(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []snapshot.Edge
	}{
		{"first", 0, []snapshot.Edge{{U: 0, V: 1, Weight: 3}, {U: 1, V: 2, Weight: 1}}},
		{"middle", 1, []snapshot.Edge{{U: 1, V: 2, Weight: 1}}},
		{"last", 3, []snapshot.Edge{{U: 0, V: 1, Weight: 5}, {U: 1, V: 2, Weight: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := native.New()
			topo := chain(t, m)
			require.NoError(t, topo.RemoveVertex(tt.remove))
			assert.Equal(t, 3, topo.VertexCount())
			assert.Equal(t, tt.want, topo.Edges())
			assert.Equal(t, 1, m.Live(), "old graph released")
		})
	}
}

func TestRemoveVertexValidation(t *testing.T) {
	topo := New(native.New())
	require.NoError(t, topo.Initialize(1, false))

	err := topo.RemoveVertex(0)
	assert.True(t, errors.Is(err, errors.ErrCodeCannotRemoveLastVertex))
	err = topo.RemoveVertex(1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidVertex))
	assert.Equal(t, 1, topo.VertexCount())
}

func TestAddVertexThenRemoveRestores(t *testing.T) {
	for _, directed := range []bool{false, true} {
		m := native.New()
		topo := New(m)
		require.NoError(t, topo.Initialize(4, directed))
		require.NoError(t, topo.AddEdge(0, 1, 5))
		require.NoError(t, topo.AddEdge(3, 1, 2))
		require.NoError(t, topo.AddEdge(2, 2, 7))
		before := topo.Edges()

		require.NoError(t, topo.AddVertex())
		assert.Equal(t, 5, topo.VertexCount())
		assert.Equal(t, before, topo.Edges())

		require.NoError(t, topo.RemoveVertex(4))
		assert.Equal(t, 4, topo.VertexCount())
		assert.Equal(t, before, topo.Edges())
		assert.Equal(t, directed, topo.Directed())
		assert.Equal(t, 1, m.Live())
	}
}

func TestAddVertexLimit(t *testing.T) {
	topo := New(native.New())
	require.NoError(t, topo.Initialize(MaxVertices, false))
	err := topo.AddVertex()
	assert.True(t, errors.Is(err, errors.ErrCodeVertexLimitExceeded))
	assert.Equal(t, MaxVertices, topo.VertexCount())
}

func TestSetDirected(t *testing.T) {
	topo := New(native.New())
	require.NoError(t, topo.Initialize(3, true))
	require.NoError(t, topo.AddEdge(0, 1, 4))
	assert.Equal(t, 0, topo.Weight(1, 0))

	require.NoError(t, topo.SetDirected(false))
	assert.False(t, topo.Directed())
	assert.Equal(t, 4, topo.Weight(1, 0))
}

func TestPrimOnDirected(t *testing.T) {
	topo := chain(t, native.New())
	require.NoError(t, topo.SetDirected(true))
	before := topo.Weights()

	_, err := topo.PrimMST()
	assert.True(t, errors.Is(err, errors.ErrCodeAlgorithmPrecondition))
	assert.Equal(t, before, topo.Weights())
	assert.True(t, topo.Directed())
}

func TestAlgorithms(t *testing.T) {
	topo := chain(t, native.New())

	got, err := topo.BFS(0)
	require.NoError(t, err)
	assert.Equal(t, "[0,1,2,3]", got)

	got, err = topo.Dijkstra(0)
	require.NoError(t, err)
	assert.Equal(t, "[0,5,8,9]", got)

	got, err = topo.PrimMST()
	require.NoError(t, err)
	assert.Equal(t, "[0-1:5,1-2:3,2-3:1]", got)

	_, err = topo.DFS(9)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidVertex))
}

func TestOnMutate(t *testing.T) {
	topo := New(native.New())
	calls := 0
	topo.OnMutate(func() { calls++ })

	require.NoError(t, topo.Initialize(3, false))
	require.NoError(t, topo.AddEdge(0, 1, 1))
	_ = topo.AddEdge(0, 1, 0)
	assert.Equal(t, 2, calls, "rejected calls do not notify")

	topo.Clear()
	assert.Equal(t, 3, calls)
	assert.False(t, topo.Initialized())
	topo.Clear()
	assert.Equal(t, 3, calls)
}

// lopsidedGraph drops the mirror cell of every undirected edge.
type lopsidedGraph struct {
	backend.Graph
	m snapshot.Matrix
}

func (g *lopsidedGraph) AddEdge(u, v, w int) { g.m[u][v] = w }
func (g *lopsidedGraph) Matrix() string      { return snapshot.FormatMatrix(g.m) }

type lopsidedModule struct{ *native.Module }

func (m lopsidedModule) NewGraph(n int, directed bool) (backend.Graph, error) {
	g, err := m.Module.NewGraph(n, directed)
	if err != nil {
		return nil, err
	}
	return &lopsidedGraph{Graph: g, m: snapshot.Zero(n)}, nil
}

func TestAsymmetricBackendIsReported(t *testing.T) {
	topo := New(lopsidedModule{native.New()})
	require.NoError(t, topo.Initialize(3, false))

	err := topo.AddEdge(0, 1, 5)
	assert.True(t, errors.Is(err, errors.ErrCodeBackendContract))
	assert.Equal(t, 5, topo.Weight(0, 1), "backend state is adopted")
	assert.Equal(t, 0, topo.Weight(1, 0))

	err = topo.AddEdge(2, 1, 6)
	assert.True(t, errors.Is(err, errors.ErrCodeBackendContract))
	assert.Equal(t, []snapshot.Edge{{U: 0, V: 1, Weight: 5}, {U: 2, V: 1, Weight: 6}}, topo.Edges(),
		"lower-only cells are listed")
}

// garbledGraph reports a matrix with a short row.
type garbledGraph struct {
	backend.Graph
	released *bool
}

func (g *garbledGraph) Matrix() string { return "[[0,1],[0]]" }

func (g *garbledGraph) Release() {
	*g.released = true
	g.Graph.Release()
}

// rebuildGraph garbles every graph produced by RemoveVertex.
type rebuildGraph struct {
	backend.Graph
	released *bool
}

func (g *rebuildGraph) RemoveVertex(i int) backend.Graph {
	return &garbledGraph{Graph: g.Graph.RemoveVertex(i), released: g.released}
}

// rebuildModule garbles every graph after the first.
type rebuildModule struct {
	*native.Module
	calls    int
	released bool
}

func (m *rebuildModule) NewGraph(n int, directed bool) (backend.Graph, error) {
	g, err := m.Module.NewGraph(n, directed)
	if err != nil {
		return nil, err
	}
	m.calls++
	if m.calls > 1 {
		return &garbledGraph{Graph: g, released: &m.released}, nil
	}
	return &rebuildGraph{Graph: g, released: &m.released}, nil
}

func TestFailedRebuildKeepsGraph(t *testing.T) {
	tests := []struct {
		name    string
		rebuild func(*Topology) error
	}{
		{"add vertex", (*Topology).AddVertex},
		{"remove vertex", func(topo *Topology) error { return topo.RemoveVertex(2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &rebuildModule{Module: native.New()}
			topo := New(m)
			require.NoError(t, topo.Initialize(3, false))
			require.NoError(t, topo.AddEdge(0, 1, 3))

			err := tt.rebuild(topo)
			assert.True(t, errors.Is(err, errors.ErrCodeMalformedSnapshot), "got %v", err)
			assert.True(t, m.released, "unreadable graph is released")
			assert.True(t, topo.Initialized())
			assert.Equal(t, 3, topo.VertexCount())
			assert.Equal(t, 3, topo.Weight(0, 1))

			require.NoError(t, topo.AddEdge(1, 2, 4))
			assert.Equal(t, 4, topo.Weight(2, 1))
		})
	}
}
