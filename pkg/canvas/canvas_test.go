package canvas

import (
	"strings"
	"testing"
)

func TestSVGDocument(t *testing.T) {
	s := NewSVG(WithTitle("heap <1>"))
	s.Circle(400, 150, 25, Style{Fill: "#2e8b57"})
	s.Line(400, 175, 350.456, 205, Style{Stroke: "#4a5568", StrokeWidth: 2})
	s.Text(400, 150, "a&b", TextStyle{Bold: true, Size: 16})

	out := string(s.Bytes())
	wants := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 500" width="800" height="500"`,
		`<title>heap &lt;1&gt;</title>`,
		`<circle cx="400" cy="150" r="25" fill="#2e8b57"/>`,
		`<line x1="400" y1="175" x2="350.46" y2="205" fill="none" stroke="#4a5568" stroke-width="2"/>`,
		`>a&amp;b</text>`,
		`font-weight="bold"`,
		"</svg>\n",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "<defs>") {
		t.Error("SVG without gradients should not emit <defs>")
	}
}

func TestSVGGradientsDeduplicated(t *testing.T) {
	s := NewSVG()
	st := Style{Fill: "#2e8b57", FillTo: "#3cb371"}
	s.Circle(1, 1, 1, st)
	s.Circle(2, 2, 1, st)

	out := string(s.Bytes())
	if got := strings.Count(out, "<radialGradient"); got != 1 {
		t.Errorf("radialGradient count = %d, want 1", got)
	}
	if got := strings.Count(out, `fill="url(#grad-2e8b57-3cb371)"`); got != 2 {
		t.Errorf("gradient fill count = %d, want 2", got)
	}
}

func TestSVGClear(t *testing.T) {
	s := NewSVG()
	s.Rect(0, 0, 10, 10, Style{Fill: "red", FillTo: "blue"})
	s.Clear()
	out := string(s.Bytes())
	if strings.Contains(out, "<rect x=") || strings.Contains(out, "<defs>") {
		t.Errorf("Clear() left content behind:\n%s", out)
	}
}

func TestSVGCurveAndDash(t *testing.T) {
	s := NewSVG()
	s.Curve(0, 0, 5, -5, 10, 0, Style{Stroke: "#000", Dash: []float64{5, 3}})
	out := string(s.Bytes())
	if !strings.Contains(out, `d="M 0 0 Q 5 -5 10 0"`) {
		t.Errorf("curve path missing:\n%s", out)
	}
	if !strings.Contains(out, `stroke-dasharray="5,3"`) {
		t.Errorf("dash missing:\n%s", out)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{400, "400"},
		{221.5, "221.5"},
		{10.6066017, "10.61"},
		{-0.001, "0"},
		{-12.3456, "-12.35"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Circle(10, 10, 5, Style{})
	r.Circle(900, 10, 5, Style{})
	r.Line(0, 0, 800, 500, Style{})
	r.Text(5, 5, "hello", TextStyle{})

	if got := r.Count(OpCircle); got != 2 {
		t.Errorf("Count(circle) = %d, want 2", got)
	}
	if got := r.Texts(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("Texts() = %v", got)
	}
	if got := len(r.OutOfBounds()); got != 1 {
		t.Errorf("OutOfBounds() = %d ops, want 1", got)
	}
	if got := r.String(); got != "2 circle, 1 line, 1 text" {
		t.Errorf("String() = %q", got)
	}

	r.Clear()
	if r.String() != "empty" {
		t.Errorf("after Clear String() = %q", r.String())
	}
}

func TestThemeMerge(t *testing.T) {
	custom := Theme{
		Primary:    "#000000",
		Algorithms: map[string]AlgorithmColors{"bfs": {Light: "#111111"}},
	}
	got := custom.Merge(DefaultTheme())

	if got.Primary != "#000000" {
		t.Errorf("Primary = %q, want override", got.Primary)
	}
	if got.Text != "#2d3748" {
		t.Errorf("Text = %q, want default", got.Text)
	}
	bfs := got.Algorithm("bfs")
	if bfs.Light != "#111111" || bfs.Dark != "#38a169" {
		t.Errorf("bfs colors = %+v", bfs)
	}
	if got.Algorithm("prim").Border != "#6b46c1" {
		t.Errorf("prim colors not inherited: %+v", got.Algorithm("prim"))
	}
	if got.Algorithm("none").Light != got.Primary {
		t.Errorf("unknown algorithm should fall back to primary")
	}
}
