package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

type fakeGraph struct {
	n        int
	directed bool
	edges    []snapshot.Edge
}

func (g fakeGraph) VertexCount() int       { return g.n }
func (g fakeGraph) Directed() bool         { return g.directed }
func (g fakeGraph) Edges() []snapshot.Edge { return g.edges }

func triangle(directed bool) fakeGraph {
	return fakeGraph{n: 3, directed: directed, edges: []snapshot.Edge{
		{U: 0, V: 1, Weight: 5},
		{U: 1, V: 2, Weight: 3},
		{U: 2, V: 2, Weight: 1},
	}}
}

func TestToDOTUndirected(t *testing.T) {
	dot := ToDOT(triangle(false), Options{})

	for _, want := range []string{
		"graph G {",
		`layout="circo";`,
		`0 [label="0"];`,
		`0 -- 1 [label="5"];`,
		`2 -- 2 [label="1"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "digraph") || strings.Contains(dot, "->") {
		t.Errorf("undirected graph rendered as digraph:\n%s", dot)
	}
}

func TestToDOTDirected(t *testing.T) {
	dot := ToDOT(triangle(true), Options{Engine: "dot"})
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("expected digraph, got:\n%s", dot)
	}
	if !strings.Contains(dot, `1 -> 2 [label="3"];`) {
		t.Errorf("missing directed edge:\n%s", dot)
	}
	if !strings.Contains(dot, `layout="dot";`) {
		t.Errorf("engine option ignored:\n%s", dot)
	}
}

func TestToDOTHighlight(t *testing.T) {
	set := highlight.Set{
		Algorithm: highlight.BFS,
		Vertices:  []int{1, 0},
	}
	dot := ToDOT(triangle(false), Options{Highlight: set})
	if !strings.Contains(dot, `0 [label="0", fillcolor="#68d391", color="#2f855a", penwidth=3, xlabel="2"];`) {
		t.Errorf("vertex 0 not highlighted with step 2:\n%s", dot)
	}
	if strings.Contains(dot, `2 [label="2", fillcolor`) {
		t.Errorf("vertex 2 should not be highlighted:\n%s", dot)
	}

	prim := highlight.Set{
		Algorithm: highlight.Prim,
		Vertices:  []int{0, 1, 2},
		Edges:     []highlight.Pair{highlight.NewPair(1, 0)},
	}
	dot = ToDOT(triangle(false), Options{Highlight: prim})
	if !strings.Contains(dot, `0 -- 1 [label="5", color="#805ad5", penwidth=4];`) {
		t.Errorf("MST edge not highlighted:\n%s", dot)
	}
	if strings.Contains(dot, `1 -- 2 [label="3", color`) {
		t.Errorf("non-MST edge highlighted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestExportDOT(t *testing.T) {
	e := NewExporter(nil, nil)
	data, hit, err := e.Export(context.Background(), triangle(false), Options{}, "DOT")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if hit {
		t.Error("DOT export is never cached")
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("unexpected DOT: %s", data)
	}
}

func TestExportErrors(t *testing.T) {
	e := NewExporter(nil, nil)
	ctx := context.Background()

	if _, _, err := e.Export(ctx, triangle(false), Options{}, "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif: got %v, want INVALID_FORMAT", err)
	}
	if _, _, err := e.Export(ctx, fakeGraph{}, Options{}, "svg"); !errors.Is(err, errors.ErrCodeBackendUnavailable) {
		t.Errorf("empty graph: got %v, want BACKEND_UNAVAILABLE", err)
	}
	if _, _, err := e.Export(ctx, triangle(false), Options{Engine: "dot; rm"}, "dot"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad engine: got %v, want INVALID_INPUT", err)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(triangle(false), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0`) {
		t.Errorf("expected normalized svg header, got %.200s", svg)
	}
}
