package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/structviz/pkg/snapshot"
	"github.com/matzehuels/structviz/pkg/tree"
)

const eps = 1e-9

func assertPoint(t *testing.T, want, got Point, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, eps, msgAndArgs...)
}

func TestHeap(t *testing.T) {
	l := Heap([]int{10, 20, 30, 40})
	require.Len(t, l.Nodes, 4)

	want := []Point{{400, 150}, {350, 230}, {450, 230}, {250, 310}}
	for i, p := range want {
		assertPoint(t, p, l.Nodes[i].Point, "node %d", i)
	}
	assert.Equal(t, 2, l.Nodes[3].Level)

	require.Len(t, l.Edges, 3)
	assertPoint(t, Point{400, 175}, l.Edges[0].From)
	assertPoint(t, Point{350, 205}, l.Edges[0].To)
	assertPoint(t, Point{250, 285}, l.Edges[2].To)

	assert.Empty(t, Heap(nil).Nodes)
}

func TestHeapLevels(t *testing.T) {
	for i, want := range []int{0, 1, 1, 2, 2, 2, 2, 3, 3} {
		level, _ := heapPosition(i)
		assert.Equal(t, want, level, "index %d", i)
	}
}

func TestTree(t *testing.T) {
	list, err := snapshot.ParseNodeList("[1:1:0,3:2:0,5:1:0]")
	require.NoError(t, err)
	root := tree.Reconstruct(list)

	l := Tree(root)
	require.Len(t, l.Nodes, 3)
	assert.Equal(t, 3, l.Nodes[0].Value)
	assert.True(t, l.Nodes[0].Root())
	assertPoint(t, Point{400, 120}, l.Nodes[0].Point)
	assertPoint(t, Point{221.5, 190}, l.Nodes[1].Point)
	assertPoint(t, Point{431.5, 190}, l.Nodes[2].Point)
	assert.Len(t, l.Edges, 2)

	assert.InDelta(t, 221.5, root.Left.X, eps)
	assert.Equal(t, 1, root.Right.Level)
}

func TestTreeSingleNodeCentered(t *testing.T) {
	l := Tree(&tree.Node{Value: 7, Height: 1})
	require.Len(t, l.Nodes, 1)
	assertPoint(t, Point{TreeRootX, TreeRootY}, l.Nodes[0].Point)
	assert.Empty(t, l.Edges)
	assert.Empty(t, Tree(nil).Nodes)
}

func TestTreeLevelsDescend(t *testing.T) {
	var list snapshot.NodeList
	for v := 1; v <= 31; v++ {
		list = append(list, snapshot.NodeEntry{Value: v, Height: 1})
	}
	l := Tree(tree.Reconstruct(list))
	for _, n := range l.Nodes {
		assert.InDelta(t, TreeRootY+float64(n.Level)*TreeLevelHeight, n.Y, eps)
	}
	for _, e := range l.Edges {
		assert.Less(t, e.From.Y, e.To.Y)
	}
}

func TestTreeSimple(t *testing.T) {
	list := snapshot.NodeList{{Value: 1}, {Value: 3, Balance: 2}, {Value: 5}}
	l := TreeSimple(list)
	require.Len(t, l.Nodes, 3)

	assert.Equal(t, 3, l.Nodes[0].Value)
	assert.True(t, l.Nodes[0].Unbalanced())
	assertPoint(t, Point{400, 150}, l.Nodes[0].Point)
	assertPoint(t, Point{280, 220}, l.Nodes[1].Point)
	assertPoint(t, Point{520, 220}, l.Nodes[2].Point)
	assert.Len(t, l.Edges, 2)
	assert.Empty(t, TreeSimple(nil).Nodes)
}

func TestGraphScale(t *testing.T) {
	tests := []struct {
		n                 int
		radius, node, fnt float64
	}{
		{1, 150, 20, 16},
		{6, 150, 20, 16},
		{10, 110, 16, 14},
		{15, 80, 15, 12},
		{30, 80, 15, 12},
	}
	for _, tt := range tests {
		r, nr, fs := GraphScale(tt.n)
		assert.Equal(t, tt.radius, r, "radius n=%d", tt.n)
		assert.Equal(t, tt.node, nr, "node radius n=%d", tt.n)
		assert.Equal(t, tt.fnt, fs, "font n=%d", tt.n)
	}
}

func TestGraphUndirected(t *testing.T) {
	w := snapshot.Matrix{
		{0, 5, 0, 0},
		{5, 0, 3, 0},
		{0, 3, 2, 1},
		{0, 0, 1, 0},
	}
	l := Graph(4, false, w)
	require.Len(t, l.Vertices, 4)
	assertPoint(t, Point{550, 250}, l.Vertices[0].Point)
	assertPoint(t, Point{400, 400}, l.Vertices[1].Point)
	assertPoint(t, Point{250, 250}, l.Vertices[2].Point)

	require.Len(t, l.Edges, 4, "each pair once plus the loop")
	e := l.Edges[0]
	assert.Equal(t, Curve, e.Kind)
	assert.Equal(t, 5, e.Weight)
	off := 15 / math.Sqrt2
	assertPoint(t, Point{475 + off, 325 + off}, e.Control)
	assertPoint(t, e.Control, e.Label)
	assert.False(t, e.HasArrow)

	var loop GraphEdge
	for _, e := range l.Edges {
		if e.Kind == Loop {
			loop = e
		}
	}
	assert.Equal(t, 2, loop.From)
	assertPoint(t, Point{250, 225}, loop.Center)
	assertPoint(t, Point{250, 212.5}, loop.Label)
	assert.False(t, loop.HasArrow)
}

func TestGraphDirected(t *testing.T) {
	w := snapshot.Matrix{
		{0, 4, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 6},
	}
	l := Graph(4, true, w)
	require.Len(t, l.Edges, 3, "both directions and the loop")

	e := l.Edges[0]
	assert.Equal(t, Straight, e.Kind)
	off := EdgeTrim / math.Sqrt2
	assertPoint(t, Point{550 - off, 250 + off}, e.Start)
	assertPoint(t, Point{400 + off, 400 - off}, e.End)
	assert.True(t, e.HasArrow)
	assertPoint(t, e.Start.Mid(e.End), e.Label)
	for _, wing := range e.Arrow {
		assert.InDelta(t, ArrowLength/math.Cos(ArrowHalfAngle), e.Tip.Dist(wing), 1e-6)
	}

	loop := l.Edges[2]
	assert.Equal(t, Loop, loop.Kind)
	assert.True(t, loop.HasArrow)
	assertPoint(t, l.Vertices[3].Add(0, -50), loop.Tip)
}

func TestGraphUndirectedLowerOnlyCells(t *testing.T) {
	w := snapshot.Matrix{
		{0, 5, 0},
		{0, 0, 0},
		{7, 0, 0},
	}
	l := Graph(3, false, w)
	require.Len(t, l.Edges, 2, "cells set on one side only are still drawn")
	assert.Equal(t, [3]int{0, 1, 5}, [3]int{l.Edges[0].From, l.Edges[0].To, l.Edges[0].Weight})
	assert.Equal(t, [3]int{2, 0, 7}, [3]int{l.Edges[1].From, l.Edges[1].To, l.Edges[1].Weight})

	l = Graph(2, false, snapshot.Matrix{{0, 2}, {3, 0}})
	require.Len(t, l.Edges, 1, "a pair set on both sides is drawn once")
	assert.Equal(t, 2, l.Edges[0].Weight)
}

func TestArrowHead(t *testing.T) {
	wings := arrowHead(Point{}, 0)
	side := 15 * math.Tan(math.Pi/6)
	assertPoint(t, Point{-15, side}, wings[0])
	assertPoint(t, Point{-15, -side}, wings[1])
}

func TestGraphEmptyAndShortMatrix(t *testing.T) {
	assert.Empty(t, Graph(0, false, nil).Vertices)

	l := Graph(3, false, snapshot.Matrix{{0, 1}})
	assert.Len(t, l.Vertices, 3)
	assert.Len(t, l.Edges, 1)
}

func TestHash(t *testing.T) {
	buckets := make(snapshot.Buckets, 10)
	buckets[7] = snapshot.Bucket{"17:1", "7:2"}
	buckets[0] = snapshot.Bucket{"10:3"}

	l := Hash(buckets)
	require.Len(t, l.Buckets, 10)

	b0 := l.Buckets[0]
	assert.Equal(t, 100.0, b0.X)
	assert.Equal(t, 120.0, b0.Y)
	require.Len(t, b0.Items, 1)
	assertPoint(t, Point{160, 140}, b0.Items[0].Point)
	assertPoint(t, Point{160, 110}, b0.Title)

	b7 := l.Buckets[7]
	assert.Equal(t, 380.0, b7.X)
	assert.Equal(t, 220.0, b7.Y)
	require.Len(t, b7.Items, 2)
	assert.Equal(t, "17:1", b7.Items[0].Text)
	assertPoint(t, Point{440, 230}, b7.Items[0].Point)
	assertPoint(t, Point{440, 250}, b7.Items[1].Point)

	assert.Empty(t, l.Buckets[3].Items)
	assertPoint(t, Point{440, 140}, l.Buckets[2].Center)
}

func TestLayoutsAreDeterministic(t *testing.T) {
	w := snapshot.Matrix{{0, 2, 7}, {2, 0, 1}, {7, 1, 3}}
	assert.Equal(t, Graph(3, false, w), Graph(3, false, w))
	assert.Equal(t, Graph(3, true, w), Graph(3, true, w))
	assert.Equal(t, Heap([]int{9, 4, 7, 1}), Heap([]int{9, 4, 7, 1}))

	list := snapshot.NodeList{{Value: 1}, {Value: 2}, {Value: 3}, {Value: 4}}
	assert.Equal(t, Tree(tree.Reconstruct(list)), Tree(tree.Reconstruct(list)))
	assert.Equal(t, TreeSimple(list), TreeSimple(list))

	b := snapshot.Buckets{{"1:1"}, {}, {"2:2", "12:3"}}
	assert.Equal(t, Hash(b), Hash(b))
}

func TestGraphStaysOnCanvas(t *testing.T) {
	for n := 1; n <= 15; n++ {
		l := Graph(n, false, snapshot.Zero(n))
		for _, v := range l.Vertices {
			assert.True(t, v.X-l.NodeRadius >= 0 && v.X+l.NodeRadius <= Width, "n=%d x=%v", n, v.X)
			assert.True(t, v.Y-l.NodeRadius >= 0 && v.Y+l.NodeRadius <= Height, "n=%d y=%v", n, v.Y)
		}
	}
}
