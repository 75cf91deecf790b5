// Package canvas defines the drawing surface the renderer paints on.
//
// A [Surface] accepts a handful of primitives in the fixed 800×500 logical
// space used by package layout. [SVG] turns them into a standalone SVG
// document; [Recorder] keeps them in memory for tests and text summaries.
//
// Colors and fonts come from a [Theme]; [DefaultTheme] is the green theme.
package canvas

// Logical canvas size shared with package layout.
const (
	Width  = 800.0
	Height = 500.0
)

// Surface is a 2D drawing target.
type Surface interface {
	// Clear discards everything drawn so far.
	Clear()
	Circle(x, y, r float64, s Style)
	Line(x1, y1, x2, y2 float64, s Style)
	// Curve draws a quadratic Bézier curve through control point (cx, cy).
	Curve(x1, y1, cx, cy, x2, y2 float64, s Style)
	Rect(x, y, w, h float64, s Style)
	Text(x, y float64, text string, s TextStyle)
}

// Style describes fill and stroke of a shape. An empty color disables that
// part. When FillTo is set the fill is a radial gradient from Fill at the
// center to FillTo at the edge.
type Style struct {
	Fill        string
	FillTo      string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
	Opacity     float64 // 0 means opaque
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorMiddle Anchor = "middle"
	AnchorStart  Anchor = "start"
	AnchorEnd    Anchor = "end"
)

// TextStyle describes how text is drawn. Text is vertically centered on y
// unless Baseline is set.
type TextStyle struct {
	Color    string
	Size     float64
	Bold     bool
	Anchor   Anchor
	Baseline bool
}
