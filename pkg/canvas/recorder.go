package canvas

import "fmt"

// OpKind names a drawing primitive.
type OpKind string

const (
	OpCircle OpKind = "circle"
	OpLine   OpKind = "line"
	OpCurve  OpKind = "curve"
	OpRect   OpKind = "rect"
	OpText   OpKind = "text"
)

// Op is one recorded primitive call. Coords holds the call's numeric
// arguments in order.
type Op struct {
	Kind   OpKind
	Coords []float64
	Style  Style
	Text   string
	Font   TextStyle
}

// Recorder is a Surface that remembers every call.
type Recorder struct {
	Ops []Op
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() { r.Ops = nil }

func (r *Recorder) Circle(x, y, rad float64, s Style) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Coords: []float64{x, y, rad}, Style: s})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, s Style) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Coords: []float64{x1, y1, x2, y2}, Style: s})
}

func (r *Recorder) Curve(x1, y1, cx, cy, x2, y2 float64, s Style) {
	r.Ops = append(r.Ops, Op{Kind: OpCurve, Coords: []float64{x1, y1, cx, cy, x2, y2}, Style: s})
}

func (r *Recorder) Rect(x, y, w, h float64, s Style) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Coords: []float64{x, y, w, h}, Style: s})
}

func (r *Recorder) Text(x, y float64, text string, s TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Coords: []float64{x, y}, Text: text, Font: s})
}

// Count returns how many primitives of kind were drawn.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every drawn string in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// OutOfBounds returns the ops whose coordinates leave the logical canvas.
// Radii, widths and heights are not checked.
func (r *Recorder) OutOfBounds() []Op {
	var out []Op
	for _, op := range r.Ops {
		pts := op.Coords
		switch op.Kind {
		case OpCircle, OpRect, OpText:
			pts = pts[:2]
		}
		for i := 0; i+1 < len(pts); i += 2 {
			if pts[i] < 0 || pts[i] > Width || pts[i+1] < 0 || pts[i+1] > Height {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// String summarizes the recording, for example "3 circle, 2 line, 4 text".
func (r *Recorder) String() string {
	kinds := []OpKind{OpCircle, OpLine, OpCurve, OpRect, OpText}
	s := ""
	for _, k := range kinds {
		if n := r.Count(k); n > 0 {
			if s != "" {
				s += ", "
			}
			s += fmt.Sprintf("%d %s", n, k)
		}
	}
	if s == "" {
		return "empty"
	}
	return s
}

var _ Surface = (*Recorder)(nil)
