package pad

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/padviz/pkg/errors"
	"github.com/matzehuels/padviz/pkg/layout"
)

// Style defines the visual appearance of a rendered diagram.
// Implementations contribute SVG <defs> content and the stylesheet the
// shape classes resolve against.
type Style interface {
	// Name returns the style identifier used on the CLI and HTTP API.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, stylesheets).
	RenderDefs(buf *bytes.Buffer)
}

// ForName returns the style with the given name.
func ForName(name string) (Style, error) {
	if err := errors.ValidateStyle(name); err != nil {
		return nil, err
	}
	switch name {
	case "sketch":
		return Sketch{}, nil
	default:
		return Simple{}, nil
	}
}

// Simple is the default clean style: thin black strokes, white fills,
// a monospace font.
type Simple struct{}

// Name implements [Style].
func (Simple) Name() string { return "simple" }

// RenderDefs implements [Style].
func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>\n")
	writeBaseCSS(buf)
	buf.WriteString("    </style>\n  </defs>\n")
}

// Sketch is a hand-drawn look: the same shapes run through a rough
// displacement filter.
type Sketch struct{}

// Name implements [Style].
func (Sketch) Name() string { return "sketch" }

// RenderDefs implements [Style].
func (Sketch) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString("    <filter id=\"rough\" x=\"-5%\" y=\"-5%\" width=\"110%\" height=\"110%\">\n")
	buf.WriteString("      <feTurbulence type=\"fractalNoise\" baseFrequency=\"0.02\" numOctaves=\"3\" seed=\"7\" result=\"noise\"/>\n")
	buf.WriteString("      <feDisplacementMap in=\"SourceGraphic\" in2=\"noise\" scale=\"2.5\"/>\n")
	buf.WriteString("    </filter>\n")
	buf.WriteString("    <style>\n")
	writeBaseCSS(buf)
	buf.WriteString("      rect, polygon, line { filter: url(#rough); }\n")
	buf.WriteString("    </style>\n  </defs>\n")
}

func writeBaseCSS(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "      text { font-family: monospace; font-size: %.0fpx; fill: #1a1a1a; dominant-baseline: central; }\n", layout.FontSize)
	buf.WriteString("      rect, polygon { fill: white; stroke: #1a1a1a; stroke-width: 1.5; }\n")
	buf.WriteString("      line { stroke: #1a1a1a; stroke-width: 1.5; }\n")
	buf.WriteString("      .frame { fill: none; }\n")
	buf.WriteString("      .header { fill: #e8e8e8; }\n")
	buf.WriteString("      .title { font-weight: bold; }\n")
	buf.WriteString("      .wedge { fill: #f5f5f5; }\n")
	buf.WriteString("      .cond { fill: #f5f5f5; }\n")
	buf.WriteString("      .error { fill: #ffe5e5; stroke: #b00020; }\n")
	buf.WriteString("      .error-text { fill: #b00020; }\n")
}
