// Package layout turns a control-flow tree into absolute pixel geometry.
//
// The package has two halves:
//
//   - Shape calculators: pure functions computing the fixed PAD shapes
//     (start/end capsules, function header bar, container frame, and the
//     five-vertex conditional wedge) from already-known sizes.
//   - The [Engine]: a bottom-up recursive pass producing a [Node] tree
//     that mirrors the input 1:1, with position, size, and a stable
//     path-derived identity per node.
//
// Layout is deterministic and total: every well-formed input (including
// error nodes and nodes with missing child slots) produces a result, and
// running the engine twice over the same tree yields identical geometry.
// The only external capability is text measurement, injected as a
// [Measurer] so the engine stays testable without a rendering surface.
package layout
