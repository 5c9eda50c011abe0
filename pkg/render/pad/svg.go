// Package pad renders geometry trees as Problem Analysis Diagrams:
// sequences stack vertically, nesting extends to the right, and each
// construct draws the notation's fixed shapes (capsules, header bars,
// conditional wedges, loop stripes).
//
// The static entry point is [RenderSVG]; [SVGSurface] is the retained
// counterpart driven by the scene reconciler.
package pad

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/padviz/pkg/layout"
	"github.com/matzehuels/padviz/pkg/scene"
)

// Padding around the diagram in the emitted SVG viewBox.
const canvasPadding = 20.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style Style
}

// WithStyle sets the visual style (default [Simple]).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// RenderSVG renders a geometry tree as a standalone SVG document.
func RenderSVG(root *layout.Node, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	var w, h float64
	if root != nil {
		w, h = root.Width, root.Height
	}
	w += 2 * canvasPadding
	h += 2 * canvasPadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	r.style.RenderDefs(&buf)
	if root != nil {
		writeGroup(&buf, root, canvasPadding+root.X, canvasPadding+root.Y, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeGroup emits one geometry node as a translated <g> with its own
// shapes followed by nested child groups.
func writeGroup(buf *bytes.Buffer, n *layout.Node, x, y float64, depth int) {
	indent := indentFor(depth)
	fmt.Fprintf(buf, "%s<g id=%q transform=\"translate(%.1f,%.1f)\">\n", indent, n.ID, x, y)
	for _, s := range scene.Shapes(n) {
		writeShape(buf, s, depth+1)
	}
	for _, c := range n.Kids() {
		writeGroup(buf, c, c.X, c.Y, depth+1)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

func writeShape(buf *bytes.Buffer, s scene.Shape, depth int) {
	indent := indentFor(depth)
	switch s.Kind {
	case scene.ShapeRect:
		fmt.Fprintf(buf, "%s<rect class=%q x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/>\n",
			indent, s.Class, s.X, s.Y, s.W, s.H)
	case scene.ShapeCapsule:
		fmt.Fprintf(buf, "%s<rect class=%q x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"%.1f\"/>\n",
			indent, s.Class, s.X, s.Y, s.W, s.H, s.H/2)
	case scene.ShapePolygon:
		fmt.Fprintf(buf, "%s<polygon class=%q points=%q/>\n", indent, s.Class, pointList(s.Points))
	case scene.ShapeLine:
		fmt.Fprintf(buf, "%s<line class=%q x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
			indent, s.Class, s.X, s.Y, s.X2, s.Y2)
	case scene.ShapeText:
		anchor := s.Anchor
		if anchor == "" {
			anchor = scene.AnchorStart
		}
		fmt.Fprintf(buf, "%s<text class=%q x=\"%.1f\" y=\"%.1f\" text-anchor=%q>%s</text>\n",
			indent, s.Class, s.X, s.Y, anchor, escape(s.Text))
	}
}

func pointList(pts []layout.Point) string {
	var b bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", p.X, p.Y)
	}
	return b.String()
}

func indentFor(depth int) string {
	b := make([]byte, 2*depth)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func escape(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
