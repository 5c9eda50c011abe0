// Package pkg provides the core libraries for padviz diagram rendering.
//
// # Overview
//
// Padviz turns control-flow trees (sequences, blocks, branches, loops,
// commands) into problem analysis diagrams: nested boxes whose geometry
// is computed recursively from the tree structure. The pkg directory is
// organized into four main areas:
//
//  1. [flow] - The control-flow tree: node kinds, builders, JSON codec
//  2. [layout] - Geometry: the recursive layout engine and shape helpers
//  3. [scene] - The reconciler: stable-identity diffing onto a retained
//     surface, plus pan/zoom/drag state
//  4. [render] - Output sinks (SVG, PNG, PDF, DOT) and visual styles
//
// # Architecture
//
// The typical data flow through padviz:
//
//	Control-flow JSON
//	         ↓
//	    [flow] package (decode tree)
//	         ↓
//	    [layout] package (compute geometry + stable identities)
//	         ↓
//	    [scene] / [render] packages (reconcile or serialize)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Decode a tree and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/padviz/pkg/flow"
//	    "github.com/matzehuels/padviz/pkg/layout"
//	    "github.com/matzehuels/padviz/pkg/render/pad"
//	)
//
//	// 1. Decode the control-flow tree
//	tree, _ := flow.Unmarshal(input)
//
//	// 2. Compute geometry
//	geometry := layout.New(nil).Compute(tree)
//
//	// 3. Render to SVG
//	svg := pad.RenderSVG(geometry)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [flow] - The wire-level control-flow tree. Decoding is total over
// valid JSON: unknown node types become error nodes instead of failing
// the whole tree.
//
// [layout] - The recursive layout engine. Each node kind has a fixed
// sizing rule; identities are derived from the structural path so an
// unchanged subtree keeps its identity across relayouts.
//
// [scene] - Reconciles successive geometry trees against a retained
// drawing surface, diffing by identity into enter/update/exit, and owns
// the interactive state: manual node offsets, pan/zoom, drag.
//
// ## Rendering
//
// [render/pad] - The diagram SVG sink and its visual styles (simple,
// sketch), plus a retained SVG surface for serializing reconciled
// scenes.
//
// [render/outline] - Compact node-link outlines of the tree using
// Graphviz.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - The complete decode → layout → render pipeline used by
// CLI and server, with content-addressed caching of layouts and
// artifacts.
//
// [cache] - Cache backends (file, Redis, null) with retry support and
// the content-hash key scheme.
//
// [config] - TOML configuration for the CLI and server.
//
// [errors] - Structured error codes and input validation shared across
// entry points.
//
// [observability] - Pipeline, cache, and scene hooks for metrics and
// tracing.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/flow
// [layout]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/render
// [render/pad]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/render/pad
// [render/outline]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/render/outline
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/padviz/pkg/observability
package pkg
