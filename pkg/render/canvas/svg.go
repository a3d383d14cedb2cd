package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SVG serialises the canvas as a standalone SVG document.
func (c *Canvas) SVG() []byte {
	var buf bytes.Buffer
	c.render(&buf)
	return buf.Bytes()
}

// WriteSVG writes the canvas as a standalone SVG document to w.
func (c *Canvas) WriteSVG(w io.Writer) error {
	var buf bytes.Buffer
	c.render(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func (c *Canvas) render(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(c.width), num(c.height), c.width, c.height)

	buf.WriteString("  <defs>\n")
	for _, l := range c.layers {
		writeClipPaths(buf, l)
	}
	buf.WriteString("  </defs>\n")

	if c.background != "" {
		fmt.Fprintf(buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
			num(c.width), num(c.height), EscapeXML(c.background))
	}
	for _, l := range c.layers {
		writeSurface(buf, l, "  ")
	}
	buf.WriteString("</svg>\n")
}

func writeClipPaths(buf *bytes.Buffer, s *Surface) {
	fmt.Fprintf(buf, `    <clipPath id="clip-%s"><rect x="0" y="0" width="%s" height="%s"/></clipPath>`+"\n",
		s.id, num(s.rect.Width), num(s.rect.Height))
	for _, child := range s.Children() {
		writeClipPaths(buf, child)
	}
}

func writeSurface(buf *bytes.Buffer, s *Surface, indent string) {
	fmt.Fprintf(buf, `%s<g id="%s" data-name="%s" transform="translate(%s,%s)" clip-path="url(#clip-%s)">`+"\n",
		indent, s.id, EscapeXML(s.name), num(s.rect.X), num(s.rect.Y), s.id)
	inner := indent + "  "
	for _, it := range s.items {
		if it.child != nil {
			writeSurface(buf, it.child, inner)
			continue
		}
		it.elem.writeSVG(buf, inner)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// EscapeXML escapes s for use in SVG text content and attribute values.
func EscapeXML(s string) string {
	if !strings.ContainsAny(s, `<>&'"`+"\t\n\r") {
		return s
	}
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
