package layout

import "unicode/utf8"

// Measurer returns the rendered width of text in user units for the
// diagram's fixed monospace font. The engine calls it synchronously
// during layout; implementations must be pure.
type Measurer func(text string) float64

// Monospace font metrics used by the default measurer. The renderers
// emit text at FontSize in a monospace family, so width is linear in
// rune count.
const (
	// FontSize is the diagram text size in user units.
	FontSize = 13.0

	// CharWidth is the advance width of one monospace glyph.
	CharWidth = 8.0
)

// Monospace is the default text measurer for the diagram's fixed
// monospace font.
func Monospace(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * CharWidth
}
