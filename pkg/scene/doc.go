// Package scene reconciles geometry trees against a retained drawing
// surface and owns the interactive view state.
//
// The [Reconciler] performs an identity-keyed enter/update/exit diff per
// container level: nodes that disappeared are faded out and removed,
// new nodes are created hidden and transitioned in, surviving nodes are
// patched in place so element-local state (such as an in-flight drag)
// is preserved. On top of the computed geometry it maintains two pieces
// of state that survive layout recomputation:
//
//   - a manual offset per stable identity, accumulated by drag gestures
//     and applied additively to the computed position
//   - a single view transform (pan and zoom) applied at the scene root
//
// The drawing surface is abstracted behind [Surface] and [Group]; the
// package assumes only grouping, shape and text attributes, transforms,
// and removal. Everything here runs on a single goroutine driven by the
// host event loop; no locking is involved.
package scene
