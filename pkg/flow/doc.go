// Package flow defines the control-flow tree that drives PAD rendering.
//
// A [Node] is one of six kinds mirroring structured programming:
// sequence, block (named function body), if, loop, command, and error
// (a parse-failure placeholder). Trees are produced by external
// language parsers, arrive as JSON (see [Decode] for the wire format),
// and are treated as immutable once built.
//
// The package also provides small constructors ([Sequence], [Block],
// [If], [Loop], [Command], [ErrorNode]) used by tests and examples to
// build trees without going through JSON.
package flow
