package canvas

import (
	"bytes"
	"fmt"
	"strings"
)

// Element is a drawable primitive recorded on a surface.
type Element interface {
	writeSVG(buf *bytes.Buffer, indent string)
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style          Style
}

// Box is a rectangle, optionally with rounded corners.
type Box struct {
	Rect  Rect
	Rx    float64
	Style Style
}

// Polygon is a closed shape through Points.
type Polygon struct {
	Points []Point
	Style  Style
}

// Polyline is an open path through Points.
type Polyline struct {
	Points []Point
	Style  Style
}

// Text is a single line of text anchored at (X, Y).
type Text struct {
	X, Y    float64
	Content string
	Style   TextStyle
}

func (l Line) writeSVG(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		indent, num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), l.Style.attrs())
}

func (b Box) writeSVG(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"`,
		indent, num(b.Rect.X), num(b.Rect.Y), num(b.Rect.Width), num(b.Rect.Height))
	if b.Rx > 0 {
		fmt.Fprintf(buf, ` rx="%s"`, num(b.Rx))
	}
	buf.WriteString(b.Style.attrs())
	buf.WriteString("/>\n")
}

func (p Polygon) writeSVG(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<polygon points="%s"%s/>`+"\n", indent, points(p.Points), p.Style.attrs())
}

func (p Polyline) writeSVG(buf *bytes.Buffer, indent string) {
	st := p.Style
	if st.Fill == "" {
		st.Fill = "none"
	}
	fmt.Fprintf(buf, `%s<polyline points="%s"%s/>`+"\n", indent, points(p.Points), st.attrs())
}

func (t Text) writeSVG(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<text x="%s" y="%s"%s>%s</text>`+"\n",
		indent, num(t.X), num(t.Y), t.Style.attrs(t.X, t.Y), EscapeXML(t.Content))
}

func points(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func (s Style) attrs() string {
	var b strings.Builder
	if s.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, EscapeXML(s.Class))
	}
	if s.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, EscapeXML(s.Fill))
	}
	if s.FillOpacity > 0 {
		fmt.Fprintf(&b, ` fill-opacity="%s"`, num(s.FillOpacity))
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, EscapeXML(s.Stroke))
	}
	if s.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%s"`, num(s.StrokeWidth))
	}
	if s.Dash != "" {
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, EscapeXML(s.Dash))
	}
	if s.Opacity > 0 {
		fmt.Fprintf(&b, ` opacity="%s"`, num(s.Opacity))
	}
	return b.String()
}

func (s TextStyle) attrs(x, y float64) string {
	var b strings.Builder
	if s.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, EscapeXML(s.Class))
	}
	if s.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, EscapeXML(s.Fill))
	}
	if s.FontSize > 0 {
		fmt.Fprintf(&b, ` font-size="%s"`, num(s.FontSize))
	}
	if s.FontFamily != "" {
		fmt.Fprintf(&b, ` font-family="%s"`, EscapeXML(s.FontFamily))
	}
	if s.FontWeight != "" {
		fmt.Fprintf(&b, ` font-weight="%s"`, EscapeXML(s.FontWeight))
	}
	if s.Anchor != "" {
		fmt.Fprintf(&b, ` text-anchor="%s"`, s.Anchor)
	}
	if s.Baseline != "" {
		fmt.Fprintf(&b, ` dominant-baseline="%s"`, s.Baseline)
	}
	if s.Rotate != 0 {
		fmt.Fprintf(&b, ` transform="rotate(%s %s %s)"`, num(s.Rotate), num(x), num(y))
	}
	return b.String()
}
