package pipeline

import (
	"fmt"

	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/layout"
	"github.com/matzehuels/padviz/pkg/render/outline"
	"github.com/matzehuels/padviz/pkg/render/pad"
)

// Render generates output artifacts in the requested formats.
//
// The geometry drives the pad formats (svg, png, pdf, json); the dot
// format is the outline view of the raw control-flow tree and needs
// tree to be non-nil.
func Render(geometry *layout.Node, tree *flow.Node, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()

	style, err := pad.ForName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []pad.SVGOption{pad.WithStyle(style)}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = pad.RenderSVG(geometry, svgOpts...)
		case FormatPNG:
			data, err = pad.RenderPNG(geometry,
				pad.WithPNGSVGOptions(svgOpts...), pad.WithScale(opts.Scale))
		case FormatPDF:
			data, err = pad.RenderPDF(geometry, pad.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = MarshalGeometry(geometry)
		case FormatDOT:
			if tree == nil {
				return nil, fmt.Errorf("dot output needs the control-flow tree")
			}
			data = []byte(outline.ToDOT(tree, outline.Options{}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
