// Package highlight turns the raw result of a graph algorithm into the set of
// vertices and edges to emphasize in the next render.
package highlight

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

// Algorithm identifies a graph algorithm.
type Algorithm int

const (
	None Algorithm = iota
	BFS
	DFS
	Dijkstra
	Prim
)

var algorithmNames = map[Algorithm]string{
	None:     "none",
	BFS:      "bfs",
	DFS:      "dfs",
	Dijkstra: "dijkstra",
	Prim:     "prim",
}

// String returns the lowercase algorithm name.
func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return "unknown"
}

// Label returns the display name used in the "Current Algorithm" line.
func (a Algorithm) Label() string {
	switch a {
	case BFS, DFS:
		return strings.ToUpper(a.String())
	case Dijkstra:
		return "Dijkstra"
	case Prim:
		return "Prim's MST"
	}
	return ""
}

// NeedsStart reports whether the algorithm takes a start vertex.
func (a Algorithm) NeedsStart() bool {
	return a == BFS || a == DFS || a == Dijkstra
}

// ParseAlgorithm resolves a name such as "bfs" or "Dijkstra".
func ParseAlgorithm(name string) (Algorithm, error) {
	if err := errors.ValidateAlgorithm(name); err != nil {
		return None, err
	}
	lower := strings.ToLower(name)
	for a, s := range algorithmNames {
		if s == lower {
			return a, nil
		}
	}
	return None, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", name)
}

// Pair is an unordered vertex pair, stored with A <= B.
type Pair struct {
	A, B int
}

// NewPair normalizes (u, v) so that A <= B.
func NewPair(u, v int) Pair {
	if u > v {
		u, v = v, u
	}
	return Pair{A: u, B: v}
}

// Set is the result of one algorithm run. The zero value highlights nothing.
type Set struct {
	Algorithm Algorithm
	// Vertices in visitation order for BFS and DFS, index order for
	// Dijkstra, first-seen order for Prim.
	Vertices []int
	Edges    []Pair
	// Distances holds Dijkstra's per-vertex result, sentinel included.
	Distances []int
	// Total is the summed weight of the Prim spanning tree.
	Total int
}

// Empty reports whether nothing is highlighted.
func (s Set) Empty() bool {
	return len(s.Vertices) == 0 && len(s.Edges) == 0
}

// HasVertex reports whether v is highlighted.
func (s Set) HasVertex(v int) bool {
	return slices.Contains(s.Vertices, v)
}

// HasEdge reports whether the pair (u, v) is highlighted, in either order.
func (s Set) HasEdge(u, v int) bool {
	return slices.Contains(s.Edges, NewPair(u, v))
}

// StepOf returns the 1-based visitation step of v for BFS and DFS, or 0.
func (s Set) StepOf(v int) int {
	if s.Algorithm != BFS && s.Algorithm != DFS {
		return 0
	}
	if i := slices.Index(s.Vertices, v); i >= 0 {
		return i + 1
	}
	return 0
}

// View is the part of a topology the interpreter needs.
type View interface {
	VertexCount() int
	Directed() bool
}

// CheckPrecondition rejects algorithm runs that cannot succeed on topo.
// It must be called before the backend is invoked.
func CheckPrecondition(alg Algorithm, topo View) error {
	if topo == nil || topo.VertexCount() == 0 {
		return errors.New(errors.ErrCodeBackendUnavailable, "graph is not initialized")
	}
	if alg == Prim && topo.Directed() {
		return errors.New(errors.ErrCodeAlgorithmPrecondition, "Prim's algorithm requires an undirected graph")
	}
	return nil
}

// Interpret decodes result for alg. A result that cannot be parsed yields an
// empty Set together with the parse error.
func Interpret(alg Algorithm, result string, topo View) (Set, error) {
	n := 0
	if topo != nil {
		n = topo.VertexCount()
	}
	inRange := func(v int) bool { return v >= 0 && v < n }

	switch alg {
	case BFS, DFS:
		set := Set{Algorithm: alg}
		for _, v := range snapshot.ParseArray(result) {
			if inRange(v) {
				set.Vertices = append(set.Vertices, v)
			}
		}
		return set, nil

	case Dijkstra:
		dist := snapshot.ParseArray(result)
		set := Set{Algorithm: alg, Distances: []int(dist)}
		for v, d := range dist {
			if d < snapshot.Unreachable && inRange(v) {
				set.Vertices = append(set.Vertices, v)
			}
		}
		return set, nil

	case Prim:
		edges, err := snapshot.ParseEdges(result)
		if err != nil {
			return Set{}, err
		}
		set := Set{Algorithm: alg}
		for _, e := range edges {
			if !inRange(e.U) || !inRange(e.V) {
				continue
			}
			set.Edges = append(set.Edges, NewPair(e.U, e.V))
			set.Total += e.Weight
			for _, v := range [2]int{e.U, e.V} {
				if !set.HasVertex(v) {
					set.Vertices = append(set.Vertices, v)
				}
			}
		}
		return set, nil
	}
	return Set{}, errors.New(errors.ErrCodeInvalidAlgorithm, "no interpreter for algorithm %s", alg)
}

// Summary renders the result line shown under the graph, for example
// "BFS from 0: 0 → 1 → 2" or "Distances from 0: 0:0, 1:5, 2:∞". Prim ignores start.
func Summary(s Set, start int) string {
	var b strings.Builder
	switch s.Algorithm {
	case BFS, DFS:
		b.WriteString(s.Algorithm.Label())
		b.WriteString(" from ")
		b.WriteString(strconv.Itoa(start))
		b.WriteString(": ")
		for i, v := range s.Vertices {
			if i > 0 {
				b.WriteString(" → ")
			}
			b.WriteString(strconv.Itoa(v))
		}
	case Dijkstra:
		b.WriteString("Distances from ")
		b.WriteString(strconv.Itoa(start))
		b.WriteString(": ")
		for v, d := range s.Distances {
			if v > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(':')
			if d >= snapshot.Unreachable {
				b.WriteString("∞")
			} else {
				b.WriteString(strconv.Itoa(d))
			}
		}
	case Prim:
		b.WriteString("MST edges: ")
		for i, e := range s.Edges {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(e.A))
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(e.B))
		}
		b.WriteString(" (total ")
		b.WriteString(strconv.Itoa(s.Total))
		b.WriteByte(')')
	}
	return b.String()
}
