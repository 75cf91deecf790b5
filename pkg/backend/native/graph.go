package native

import (
	"container/heap"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

// graph is an adjacency-matrix graph. A zero weight means no edge.
type graph struct {
	handle
	module   *Module
	adj      snapshot.Matrix
	directed bool
}

func newGraph(m *Module, n int, directed bool) *graph {
	return &graph{module: m, adj: snapshot.Zero(n), directed: directed}
}

func (g *graph) n() int { return len(g.adj) }

func (g *graph) valid(v int) bool { return v >= 0 && v < g.n() }

func (g *graph) AddEdge(u, v, weight int) {
	if !g.valid(u) || !g.valid(v) {
		return
	}
	g.adj[u][v] = weight
	if !g.directed && u != v {
		g.adj[v][u] = weight
	}
}

func (g *graph) RemoveEdge(u, v int) {
	if !g.valid(u) || !g.valid(v) {
		return
	}
	g.adj[u][v] = 0
	if !g.directed {
		g.adj[v][u] = 0
	}
}

// RemoveVertex builds a renumbered copy without vertex i. An out of range
// index returns the receiver itself.
func (g *graph) RemoveVertex(i int) backend.Graph {
	if !g.valid(i) || g.n() == 1 {
		return g
	}
	out := g.module.newGraph(g.n()-1, g.directed)
	for r, nr := 0, 0; r < g.n(); r++ {
		if r == i {
			continue
		}
		for c, nc := 0, 0; c < g.n(); c++ {
			if c == i {
				continue
			}
			if w := g.adj[r][c]; w != 0 {
				out.AddEdge(nr, nc, w)
			}
			nc++
		}
		nr++
	}
	return out
}

// SetDirected switches directedness in place. Switching to undirected
// mirrors every one-way edge so the matrix is symmetric.
func (g *graph) SetDirected(directed bool) {
	g.directed = directed
	if directed {
		return
	}
	for i := 0; i < g.n(); i++ {
		for j := i + 1; j < g.n(); j++ {
			if g.adj[i][j] == 0 && g.adj[j][i] == 0 {
				continue
			}
			w := g.adj[i][j]
			if w == 0 {
				w = g.adj[j][i]
			}
			g.adj[i][j], g.adj[j][i] = w, w
		}
	}
}

func (g *graph) IsDirected() bool { return g.directed }

func (g *graph) VertexCount() int { return g.n() }

func (g *graph) Matrix() string { return snapshot.FormatMatrix(g.adj) }

func (g *graph) Clear() {
	for _, row := range g.adj {
		clear(row)
	}
}

func (g *graph) BFS(start int) string {
	if !g.valid(start) {
		return "[]"
	}
	visited := make([]bool, g.n())
	visited[start] = true
	queue := []int{start}
	var order []int
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for v := 0; v < g.n(); v++ {
			if g.adj[u][v] != 0 && !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	return snapshot.FormatArray(order)
}

func (g *graph) DFS(start int) string {
	if !g.valid(start) {
		return "[]"
	}
	visited := make([]bool, g.n())
	stack := []int{start}
	var order []int
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[u] {
			continue
		}
		visited[u] = true
		order = append(order, u)
		for v := g.n() - 1; v >= 0; v-- {
			if g.adj[u][v] != 0 && !visited[v] {
				stack = append(stack, v)
			}
		}
	}
	return snapshot.FormatArray(order)
}

func (g *graph) Dijkstra(start int) string {
	if !g.valid(start) {
		return "[]"
	}
	dist := make([]int, g.n())
	for i := range dist {
		dist[i] = snapshot.Unreachable
	}
	visited := make([]bool, g.n())
	dist[start] = 0

	pq := &vertexPQ{{vertex: start, key: 0}}
	for pq.Len() > 0 {
		u := heap.Pop(pq).(pqItem).vertex
		if visited[u] {
			continue
		}
		visited[u] = true
		for v := 0; v < g.n(); v++ {
			w := g.adj[u][v]
			if w == 0 || visited[v] {
				continue
			}
			if dist[u]+w < dist[v] {
				dist[v] = dist[u] + w
				heap.Push(pq, pqItem{vertex: v, key: dist[v]})
			}
		}
	}
	return snapshot.FormatArray(dist)
}

// PrimMST grows a spanning tree from vertex 0. Directed graphs yield "[]".
func (g *graph) PrimMST() string {
	if g.directed {
		return "[]"
	}
	key := make([]int, g.n())
	parent := make([]int, g.n())
	inTree := make([]bool, g.n())
	for i := range key {
		key[i] = snapshot.Unreachable
		parent[i] = -1
	}
	key[0] = 0

	var edges []snapshot.Edge
	pq := &vertexPQ{{vertex: 0, key: 0}}
	for pq.Len() > 0 {
		u := heap.Pop(pq).(pqItem).vertex
		if inTree[u] {
			continue
		}
		inTree[u] = true
		if p := parent[u]; p != -1 {
			edges = append(edges, snapshot.Edge{U: p, V: u, Weight: g.adj[p][u]})
		}
		for v := 0; v < g.n(); v++ {
			if w := g.adj[u][v]; w != 0 && !inTree[v] && w < key[v] {
				key[v] = w
				parent[v] = u
				heap.Push(pq, pqItem{vertex: v, key: w})
			}
		}
	}
	return snapshot.FormatEdges(edges)
}

type pqItem struct {
	vertex, key int
}

// vertexPQ is a container/heap min-queue ordered by key, then vertex.
type vertexPQ []pqItem

func (q vertexPQ) Len() int { return len(q) }
func (q vertexPQ) Less(i, j int) bool {
	if q[i].key != q[j].key {
		return q[i].key < q[j].key
	}
	return q[i].vertex < q[j].vertex
}
func (q vertexPQ) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *vertexPQ) Push(x any)   { *q = append(*q, x.(pqItem)) }
func (q *vertexPQ) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

var _ backend.Graph = (*graph)(nil)
