package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SVG is a Surface that builds a standalone SVG document.
type SVG struct {
	theme     Theme
	body      bytes.Buffer
	gradients []gradient
	title     string
}

type gradient struct {
	id, inner, outer string
}

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithTheme sets the theme used for the background and default font.
func WithTheme(t Theme) SVGOption { return func(s *SVG) { s.theme = t } }

// WithTitle sets the document <title>.
func WithTitle(title string) SVGOption { return func(s *SVG) { s.title = title } }

// NewSVG returns an empty SVG surface.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Clear() {
	s.body.Reset()
	s.gradients = nil
}

func (s *SVG) Circle(x, y, r float64, st Style) {
	fmt.Fprintf(&s.body, `  <circle cx="%s" cy="%s" r="%s"%s/>`+"\n", num(x), num(y), num(r), s.attrs(st))
}

func (s *SVG) Line(x1, y1, x2, y2 float64, st Style) {
	fmt.Fprintf(&s.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), s.attrs(st))
}

func (s *SVG) Curve(x1, y1, cx, cy, x2, y2 float64, st Style) {
	fmt.Fprintf(&s.body, `  <path d="M %s %s Q %s %s %s %s"%s/>`+"\n",
		num(x1), num(y1), num(cx), num(cy), num(x2), num(y2), s.attrs(st))
}

func (s *SVG) Rect(x, y, w, h float64, st Style) {
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(x), num(y), num(w), num(h), s.attrs(st))
}

func (s *SVG) Text(x, y float64, text string, ts TextStyle) {
	anchor := ts.Anchor
	if anchor == "" {
		anchor = AnchorMiddle
	}
	size := ts.Size
	if size <= 0 {
		size = 14
	}
	color := ts.Color
	if color == "" {
		color = s.theme.Text
	}

	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="%s"`,
		num(x), num(y), num(size), EscapeXML(color), anchor)
	if !ts.Baseline {
		s.body.WriteString(` dominant-baseline="central"`)
	}
	if ts.Bold {
		s.body.WriteString(` font-weight="bold"`)
	}
	fmt.Fprintf(&s.body, ">%s</text>\n", EscapeXML(text))
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		Width, Height, Width, Height, EscapeXML(s.theme.Font))
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(s.title))
	}
	s.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(s.theme.Background))
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *SVG) renderDefs(buf *bytes.Buffer) {
	if len(s.gradients) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, g := range s.gradients {
		fmt.Fprintf(buf, `    <radialGradient id="%s" cx="40%%" cy="40%%" r="60%%">`+"\n", g.id)
		fmt.Fprintf(buf, `      <stop offset="0%%" stop-color="%s"/>`+"\n", EscapeXML(g.inner))
		fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s"/>`+"\n", EscapeXML(g.outer))
		buf.WriteString("    </radialGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

// gradientID registers a radial gradient once and returns its id.
func (s *SVG) gradientID(inner, outer string) string {
	id := "grad-" + strings.TrimPrefix(inner, "#") + "-" + strings.TrimPrefix(outer, "#")
	for _, g := range s.gradients {
		if g.id == id {
			return id
		}
	}
	s.gradients = append(s.gradients, gradient{id: id, inner: inner, outer: outer})
	return id
}

func (s *SVG) attrs(st Style) string {
	var b strings.Builder
	switch {
	case st.Fill != "" && st.FillTo != "":
		fmt.Fprintf(&b, ` fill="url(#%s)"`, s.gradientID(st.Fill, st.FillTo))
	case st.Fill != "":
		fmt.Fprintf(&b, ` fill="%s"`, EscapeXML(st.Fill))
	default:
		b.WriteString(` fill="none"`)
	}
	if st.Stroke != "" {
		w := st.StrokeWidth
		if w <= 0 {
			w = 1
		}
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, EscapeXML(st.Stroke), num(w))
	}
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = num(d)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, num(st.Opacity))
	}
	return b.String()
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var _ Surface = (*SVG)(nil)
