package errors

import (
	"strings"
	"unicode"
)

// Supported output formats and visual styles. These live here, next to
// the validators, so CLI and API reject unknown values identically.
var (
	// ValidFormats is the set of supported render output formats.
	ValidFormats = map[string]bool{
		"svg":  true,
		"png":  true,
		"pdf":  true,
		"json": true,
		"dot":  true,
	}

	// ValidStyles is the set of supported visual styles.
	ValidStyles = map[string]bool{
		"simple": true,
		"sketch": true,
	}
)

// ValidateFormat validates a render output format.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !ValidFormats[format] {
		return New(ErrCodeInvalidFormat, "unknown format: %q (want svg, png, pdf, json, or dot)", format)
	}
	return nil
}

// ValidateFormats validates a list of render output formats.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one format is required")
	}
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle validates a visual style name.
func ValidateStyle(style string) error {
	if style == "" {
		return New(ErrCodeInvalidStyle, "style cannot be empty")
	}
	if !ValidStyles[style] {
		return New(ErrCodeInvalidStyle, "unknown style: %q (want simple or sketch)", style)
	}
	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "output path cannot contain path traversal sequences (..)")
	}

	return nil
}
