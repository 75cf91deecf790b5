package render

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/canvas"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/layout"
	"github.com/matzehuels/structviz/pkg/snapshot"
	"github.com/matzehuels/structviz/pkg/tree"
)

// Fixed text positions.
const (
	centerX   = canvas.Width / 2
	titleY    = 40.0
	infoY     = 80.0
	algoY     = 100.0
	noticeY   = canvas.Height / 2
	legendY   = 450.0
	hintY     = 450.0
	summaryY  = 480.0
	tableX    = 50.0
	shadowOff = 2.0
)

type painter struct {
	s  canvas.Surface
	th canvas.Theme
}

func (p painter) text(x, y float64, s string, ts canvas.TextStyle) {
	if ts.Anchor == "" {
		ts.Anchor = canvas.AnchorMiddle
	}
	p.s.Text(x, y, s, ts)
}

func (p painter) title(s string) {
	p.text(centerX, titleY, s, canvas.TextStyle{Color: p.th.Text, Size: 24, Bold: true})
}

// notice replaces the body of a frame that has nothing to draw.
func (p painter) notice(s string) {
	p.text(centerX, noticeY, s, canvas.TextStyle{Color: p.th.Text, Size: 24, Bold: true})
}

func (p painter) info(y float64, s, color string) {
	p.text(centerX, y, s, canvas.TextStyle{Color: color, Size: 14})
}

func (p painter) line(a, b layout.Point, st canvas.Style) {
	p.s.Line(a.X, a.Y, b.X, b.Y, st)
}

// =============================================================================
// Heap
// =============================================================================

func (p painter) heap(st *state) {
	p.title("BINARY HEAP VISUALIZATION")
	values := snapshot.ParseArray(st.Snapshot)
	if len(values) == 0 {
		p.notice("Heap is empty")
		return
	}

	kind := "Max Heap"
	if st.MinHeap {
		kind = "Min Heap"
	}
	p.text(centerX, infoY, fmt.Sprintf("Array: %s (%s)", st.Snapshot, kind), canvas.TextStyle{Color: p.th.Text, Size: 16})

	l := layout.Heap(values)
	for _, e := range l.Edges {
		p.line(e.From, e.To, canvas.Style{Stroke: p.th.Edge, StrokeWidth: 2})
	}
	for _, n := range l.Nodes {
		p.s.Circle(n.X, n.Y, l.Radius, canvas.Style{Fill: p.th.Primary})
		p.text(n.X, n.Y, strconv.Itoa(n.Value), canvas.TextStyle{Color: p.th.NodeText, Size: 16, Bold: true})
	}
}

// =============================================================================
// AVL tree
// =============================================================================

func (p painter) tree(st *state) error {
	p.title("AVL TREE VISUALIZATION")
	entries, err := snapshot.ParseNodeList(st.Snapshot)
	if err != nil {
		p.notice("Error visualizing AVL tree")
		return err
	}
	if len(entries) == 0 {
		p.notice("Tree is empty")
		return nil
	}

	if st.Rotation != "" && st.Rotation != backend.NoRotation {
		p.info(infoY, "Last rotation: "+st.Rotation, p.th.Edge)
	}

	// An out-of-order listing cannot come from a search tree; it is still
	// shown, split by position only.
	var l layout.TreeLayout
	if slices.IsSorted(entries.Values()) {
		l = layout.Tree(tree.Reconstruct(entries))
	} else {
		l = layout.TreeSimple(entries)
	}

	for _, e := range l.Edges {
		p.line(e.From, e.To, canvas.Style{Stroke: p.th.Edge, StrokeWidth: 2})
	}
	for _, n := range l.Nodes {
		p.treeNode(n, l.Radius)
	}
	p.treeLegend()
	return nil
}

func (p painter) treeNode(n layout.TreeNode, r float64) {
	body := canvas.Style{Fill: p.th.Primary, FillTo: p.th.Secondary}
	if n.Root() {
		body.Stroke, body.StrokeWidth = p.th.Alert, 3
	}
	p.s.Circle(n.X, n.Y, r, body)
	if n.Unbalanced() {
		p.s.Circle(n.X, n.Y, r, canvas.Style{Stroke: p.th.Alert, StrokeWidth: 3, Dash: []float64{5, 3}})
	}

	p.text(n.X, n.Y, strconv.Itoa(n.Value), canvas.TextStyle{Color: p.th.NodeText, Size: 14, Bold: true})
	label := canvas.TextStyle{Color: p.th.Text, Size: 10}
	p.text(n.X-15, n.Y+r+10, "h:"+strconv.Itoa(n.Height), label)
	p.text(n.X+15, n.Y+r+10, "b:"+strconv.Itoa(n.Balance), label)
	if n.Unbalanced() {
		p.text(n.X, n.Y-r-5, "⚠", canvas.TextStyle{Color: p.th.Alert, Size: 12, Bold: true})
	}
}

func (p painter) treeLegend() {
	const r = 8.0
	label := canvas.TextStyle{Color: p.th.Text, Size: 12, Anchor: canvas.AnchorStart}

	p.s.Circle(50, legendY, r, canvas.Style{Fill: p.th.Primary})
	p.text(65, legendY, "Normal Node", label)

	p.s.Circle(200, legendY, r, canvas.Style{Fill: p.th.Primary, Stroke: p.th.Alert, StrokeWidth: 2})
	p.text(215, legendY, "Root Node", label)

	p.s.Circle(350, legendY, r, canvas.Style{Fill: p.th.Primary, Stroke: p.th.Alert, StrokeWidth: 2, Dash: []float64{3, 2}})
	p.text(350, legendY, "⚠", canvas.TextStyle{Color: p.th.Alert, Size: 10, Bold: true})
	p.text(365, legendY, "Unbalanced Node", label)
}

// =============================================================================
// Graph
// =============================================================================

func (p painter) graph(st *state) {
	p.title("GRAPH VISUALIZATION")
	if !st.Initialized {
		p.notice(`Graph not initialized. Click "Initialize Graph" to start.`)
		return
	}

	set := st.Highlight
	colors := p.th.Algorithm(set.Algorithm.String())
	l := layout.Graph(st.Weights.Size(), st.Directed, st.Weights)

	for _, e := range l.Edges {
		p.graphEdge(e, set.HasEdge(e.From, e.To), colors)
	}
	for _, v := range l.Vertices {
		p.vertex(v, l, set, colors)
	}

	kind := "Undirected"
	if st.Directed {
		kind = "Directed"
	}
	p.info(infoY, fmt.Sprintf("Nodes: %d | Type: %s", len(l.Vertices), kind), p.th.Edge)
	if set.Algorithm != highlight.None {
		p.info(algoY, "Current Algorithm: "+strings.ToUpper(set.Algorithm.String()), colors.Dark)
		p.text(centerX, summaryY, highlight.Summary(set, st.Start), canvas.TextStyle{Color: p.th.Text, Size: 13})
	}
	if !st.Weights.HasEdges() {
		p.text(centerX, hintY, `No edges added. Use "Add Edge" to connect nodes.`, canvas.TextStyle{Color: p.th.Muted, Size: 16})
	}
}

func (p painter) graphEdge(e layout.GraphEdge, highlighted bool, colors canvas.AlgorithmColors) {
	color, width := p.th.Primary, 2.5
	if highlighted {
		color, width = colors.Dark, 4
	}
	stroke := canvas.Style{Stroke: color, StrokeWidth: width}

	switch e.Kind {
	case layout.Straight:
		p.line(e.Start, e.End, stroke)
	case layout.Curve:
		p.s.Curve(e.Start.X, e.Start.Y, e.Control.X, e.Control.Y, e.End.X, e.End.Y, stroke)
	case layout.Loop:
		p.s.Circle(e.Center.X, e.Center.Y, e.Radius, stroke)
	}
	if e.HasArrow {
		for _, wing := range e.Arrow {
			p.line(e.Tip, wing, stroke)
		}
	}

	p.s.Circle(e.Label.X, e.Label.Y, layout.WeightLabelRadius, canvas.Style{Fill: p.th.Background, Stroke: color, StrokeWidth: 1.5})
	p.text(e.Label.X, e.Label.Y, strconv.Itoa(e.Weight), canvas.TextStyle{Color: p.th.Text, Size: 11, Bold: true})
}

func (p painter) vertex(v layout.Vertex, l layout.GraphLayout, set highlight.Set, colors canvas.AlgorithmColors) {
	r := l.NodeRadius
	p.s.Circle(v.X+shadowOff, v.Y+shadowOff, r, canvas.Style{Fill: "#000000", Opacity: 0.2})

	body := canvas.Style{Fill: p.th.Primary, FillTo: p.th.Secondary, Stroke: p.th.Text, StrokeWidth: 2.5}
	if set.HasVertex(v.Index) {
		body = canvas.Style{Fill: colors.Light, FillTo: colors.Dark, Stroke: colors.Border, StrokeWidth: 3}
	}
	p.s.Circle(v.X, v.Y, r, body)
	p.text(v.X, v.Y, strconv.Itoa(v.Index), canvas.TextStyle{Color: p.th.NodeText, Size: l.FontSize, Bold: true})

	if step := set.StepOf(v.Index); step > 0 {
		p.text(v.X, v.Y-r-10, strconv.Itoa(step), canvas.TextStyle{Color: p.th.Text, Size: 12, Bold: true})
	}
}

// =============================================================================
// Hash table
// =============================================================================

func (p painter) hash(st *state) error {
	p.title("HASH TABLE VISUALIZATION")
	buckets, err := snapshot.ParseBuckets(st.Snapshot)
	if err != nil {
		p.notice("Error visualizing hash table")
		return err
	}

	p.text(tableX, infoY, "Table State: "+st.Snapshot, canvas.TextStyle{Color: p.th.Text, Size: 14, Anchor: canvas.AnchorStart})

	l := layout.Hash(buckets)
	for _, b := range l.Buckets {
		p.s.Rect(b.X, b.Y, b.W, b.H, canvas.Style{Fill: p.th.Bucket, Stroke: p.th.Edge, StrokeWidth: 2})
		p.text(b.Title.X, b.Title.Y, "Bucket "+strconv.Itoa(b.Index), canvas.TextStyle{Color: p.th.Text, Size: 14, Bold: true})
		if len(b.Items) == 0 {
			p.text(b.Center.X, b.Center.Y, "Empty", canvas.TextStyle{Color: p.th.Muted, Size: 12})
			continue
		}
		for _, it := range b.Items {
			p.text(it.X, it.Y, it.Text, canvas.TextStyle{Color: p.th.Entry, Size: 12})
		}
	}

	if len(buckets) > 10 {
		p.text(centerX, hintY, "Scroll down to see all buckets →", canvas.TextStyle{Color: p.th.Edge, Size: 12})
	}
	if res := st.Search; res != nil {
		msg := fmt.Sprintf("Last search: key %d not found", res.Key)
		if res.Found {
			msg = fmt.Sprintf("Last search: key %d = %d", res.Key, res.Value)
		}
		p.text(centerX, summaryY, msg, canvas.TextStyle{Color: p.th.Text, Size: 13})
	}
	return nil
}
