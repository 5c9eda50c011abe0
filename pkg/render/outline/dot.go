// Package outline renders control-flow trees as node-link diagrams
// using Graphviz. It is the debug view for inspecting parser output
// before layout: every node becomes a box, every parent/child relation
// an arrow, with branch edges labeled then/else/body.
package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/render"
)

// Options configures outline diagram rendering.
type Options struct {
	// ShowKinds prefixes each node label with its kind.
	// When false, only the node's own text is shown.
	ShowKinds bool
}

// ToDOT converts a control-flow tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Error nodes are rendered with dashed outlines and grey fill to
// distinguish them from regular nodes.
func ToDOT(root *flow.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	w := dotWriter{buf: &buf, opts: opts}
	if root != nil {
		w.node(root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

// node emits one node and its subtree, returning the node's DOT id.
func (w *dotWriter) node(n *flow.Node) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++

	fmt.Fprintf(w.buf, "  %q [%s];\n", id, fmtAttrs(n, w.opts.ShowKinds))

	switch n.Kind {
	case flow.KindSequence, flow.KindBlock:
		for _, c := range n.Children {
			w.edge(id, c, "")
		}
	case flow.KindIf:
		w.edge(id, n.Then, "then")
		w.edge(id, n.Else, "else")
	case flow.KindLoop:
		w.edge(id, n.Body, "body")
	}
	return id
}

func (w *dotWriter) edge(from string, child *flow.Node, label string) {
	if child == nil {
		return
	}
	to := w.node(child)
	if label == "" {
		fmt.Fprintf(w.buf, "  %q -> %q;\n", from, to)
	} else {
		fmt.Fprintf(w.buf, "  %q -> %q [label=%q];\n", from, to, label)
	}
}

func fmtAttrs(n *flow.Node, showKinds bool) string {
	attrs := fmt.Sprintf("label=%q", fmtLabel(n, showKinds))
	if n.Kind == flow.KindError {
		attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey, fontcolor=black`
	}
	return attrs
}

func fmtLabel(n *flow.Node, showKinds bool) string {
	var text string
	switch n.Kind {
	case flow.KindBlock, flow.KindCommand:
		text = n.Label
	case flow.KindIf, flow.KindLoop:
		text = n.Condition
	case flow.KindError:
		text = n.Message
	}
	if text == "" {
		return string(n.Kind)
	}
	if showKinds {
		return string(n.Kind) + "\n" + text
	}
	return text
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
