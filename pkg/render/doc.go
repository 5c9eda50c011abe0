// Package render provides diagram rendering for control-flow trees.
//
// # Overview
//
// This package contains the rendering pipeline that transforms computed
// diagram geometry into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - PAD diagram rendering (in [pad] subpackage)
//   - Node-link outline diagrams (in [outline] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// the pad and outline renderers.
//
//	svg := pad.RenderSVG(geometry)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # PAD Diagrams
//
// The [pad] subpackage renders geometry trees as Problem Analysis
// Diagrams: nested boxes where sequences stack vertically and nesting
// extends to the right. It also provides a retained SVG surface for the
// scene reconciler.
//
// # Outline Diagrams
//
// The [outline] subpackage renders the raw control-flow tree as a
// traditional node-link diagram using Graphviz, mainly for debugging
// parser output.
//
//	dot := outline.ToDOT(tree, outline.Options{})
//	svg, err := outline.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [pad]: github.com/matzehuels/padviz/pkg/render/pad
// [outline]: github.com/matzehuels/padviz/pkg/render/outline
package render
