package layout

import (
	"math"

	"github.com/matzehuels/structviz/pkg/snapshot"
)

// Graph layout constants.
const (
	GraphCenterX      = 400.0
	GraphCenterY      = 250.0
	GraphRadius       = 150.0
	GraphMinRadius    = 80.0
	VertexRadius      = 20.0
	MinVertexRadius   = 15.0
	VertexFont        = 16.0
	MinVertexFont     = 12.0
	EdgeTrim          = 20.0
	ArrowLength       = 15.0
	ArrowHalfAngle    = math.Pi / 6
	CurveOffset       = 15.0
	LoopRadius        = 25.0
	WeightLabelRadius = 12.0
)

// EdgeKind selects how an edge is drawn.
type EdgeKind int

const (
	// Straight is a directed edge trimmed at both vertex boundaries.
	Straight EdgeKind = iota
	// Curve is an undirected quadratic curve bent away from the chord.
	Curve
	// Loop is a self-loop drawn as a circle above the vertex.
	Loop
)

// Vertex is one positioned graph vertex.
type Vertex struct {
	Index int
	Point
}

// GraphEdge is one drawable edge. Which fields are set depends on Kind.
type GraphEdge struct {
	From, To int
	Weight   int
	Kind     EdgeKind

	// Straight and Curve.
	Start, End Point
	// Curve only.
	Control Point
	// Loop only.
	Center Point
	Radius float64

	// Arrow holds the two wing tips of the arrowhead at Tip. Set for
	// Straight edges and for directed loops.
	Arrow    [2]Point
	Tip      Point
	HasArrow bool

	// Label is the center of the weight badge.
	Label Point
}

// GraphLayout positions a graph on a circle.
type GraphLayout struct {
	Vertices   []Vertex
	Edges      []GraphEdge
	Radius     float64 // circle the vertices sit on
	NodeRadius float64
	FontSize   float64
	Directed   bool
}

// GraphScale returns the circle radius, vertex radius and label font size
// for n vertices. Denser graphs get a smaller circle, down to a floor.
func GraphScale(n int) (radius, nodeRadius, fontSize float64) {
	d := float64(n - 6)
	radius = clamp(GraphRadius-d*10, GraphMinRadius, GraphRadius)
	nodeRadius = clamp(VertexRadius-d, MinVertexRadius, VertexRadius)
	fontSize = clamp(VertexFont-d*0.5, MinVertexFont, VertexFont)
	return radius, nodeRadius, fontSize
}

// Graph lays out n vertices evenly on a circle, vertex 0 at angle 0, and
// one edge per nonzero weight. Undirected graphs emit each pair once, from
// the upper triangle unless only the lower cell is set. Weights beyond n are
// ignored.
func Graph(n int, directed bool, weights snapshot.Matrix) GraphLayout {
	radius, nodeRadius, fontSize := GraphScale(n)
	out := GraphLayout{Radius: radius, NodeRadius: nodeRadius, FontSize: fontSize, Directed: directed}
	if n <= 0 {
		return out
	}

	out.Vertices = make([]Vertex, n)
	for i := range out.Vertices {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out.Vertices[i] = Vertex{Index: i, Point: Point{
			X: GraphCenterX + radius*math.Cos(angle),
			Y: GraphCenterY + radius*math.Sin(angle),
		}}
	}

	for i := 0; i < n && i < len(weights); i++ {
		for j := 0; j < n && j < len(weights[i]); j++ {
			w := weights[i][j]
			if w == 0 || (!directed && i > j && mirrored(weights, i, j)) {
				continue
			}
			from, to := out.Vertices[i].Point, out.Vertices[j].Point
			var e GraphEdge
			switch {
			case i == j:
				e = loopEdge(from, directed)
			case directed:
				e = straightEdge(from, to)
			default:
				e = curveEdge(from, to)
			}
			if e.Kind != Loop && from.Dist(to) == 0 {
				continue
			}
			e.From, e.To, e.Weight = i, j, w
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// mirrored reports whether weights[j][i] is also set, so (i, j) is already
// drawn from the other side.
func mirrored(weights snapshot.Matrix, i, j int) bool {
	return j < len(weights) && i < len(weights[j]) && weights[j][i] != 0
}

func straightEdge(from, to Point) GraphEdge {
	dx, dy := to.X-from.X, to.Y-from.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return GraphEdge{Kind: Straight}
	}
	ux, uy := dx/d, dy/d
	start := from.Add(ux*EdgeTrim, uy*EdgeTrim)
	end := to.Add(-ux*EdgeTrim, -uy*EdgeTrim)
	return GraphEdge{
		Kind:     Straight,
		Start:    start,
		End:      end,
		Tip:      end,
		Arrow:    arrowHead(end, math.Atan2(dy, dx)),
		HasArrow: true,
		Label:    start.Mid(end),
	}
}

func curveEdge(from, to Point) GraphEdge {
	dx, dy := to.X-from.X, to.Y-from.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return GraphEdge{Kind: Curve}
	}
	ctrl := from.Mid(to).Add(dy/d*CurveOffset, -dx/d*CurveOffset)
	return GraphEdge{
		Kind:    Curve,
		Start:   from,
		End:     to,
		Control: ctrl,
		Label:   ctrl,
	}
}

func loopEdge(v Point, directed bool) GraphEdge {
	e := GraphEdge{
		Kind:   Loop,
		Center: v.Add(0, -LoopRadius),
		Radius: LoopRadius,
		Label:  v.Add(0, -LoopRadius*1.5),
	}
	if directed {
		e.Tip = v.Add(0, -LoopRadius*2)
		e.Arrow = arrowHead(e.Tip, math.Pi/2)
		e.HasArrow = true
	}
	return e
}

// arrowHead returns the wing tips of an arrow pointing along angle and
// ending at tip.
func arrowHead(tip Point, angle float64) [2]Point {
	sin, cos := math.Sincos(angle)
	side := ArrowLength * math.Tan(ArrowHalfAngle)
	var wings [2]Point
	for k, s := range [2]float64{side, -side} {
		// Rotate (-ArrowLength, s) by angle.
		wings[k] = tip.Add(-ArrowLength*cos-s*sin, -ArrowLength*sin+s*cos)
	}
	return wings
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
