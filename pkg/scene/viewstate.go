package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// =============================================================================
// View-State Host
// =============================================================================

// ViewStateHost persists the view transform across sessions. The
// reconciler reads it once at construction and writes it back on every
// transform change; the storage medium is the host's concern.
type ViewStateHost interface {
	// Load returns the saved view and whether one exists.
	Load() (View, bool)

	// Save stores the view.
	Save(v View) error
}

// =============================================================================
// Fragment Codec
// =============================================================================
//
// The compact "x,y,scale" form used when the view state travels through
// an addressable location string (a URL fragment or similar).

// EncodeFragment renders a view as "x,y,scale".
func EncodeFragment(v View) string {
	return fmt.Sprintf("%s,%s,%s",
		strconv.FormatFloat(v.X, 'g', -1, 64),
		strconv.FormatFloat(v.Y, 'g', -1, 64),
		strconv.FormatFloat(v.Scale, 'g', -1, 64),
	)
}

// ParseFragment parses an "x,y,scale" string. It reports false for
// anything that does not parse as exactly three floats; the caller
// should fall back to [DefaultView].
func ParseFragment(s string) (View, bool) {
	parts := strings.Split(strings.TrimPrefix(s, "#"), ",")
	if len(parts) != 3 {
		return View{}, false
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return View{}, false
		}
		vals[i] = f
	}
	return View{X: vals[0], Y: vals[1], Scale: vals[2]}.Clamp(), true
}

// =============================================================================
// File Host
// =============================================================================

// FileHost stores the view transform as a small JSON file, giving the
// terminal viewer reload-and-restore behavior.
type FileHost struct {
	path string
}

// NewFileHost creates a file-backed view-state host at path. An empty
// path defaults to viewstate.json under the user config directory.
func NewFileHost(path string) (*FileHost, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "padviz", "viewstate.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &FileHost{path: path}, nil
}

// Load reads the saved view. A missing or corrupt file is a clean
// "no saved state".
func (h *FileHost) Load() (View, bool) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return View{}, false
	}
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, false
	}
	return v.Clamp(), true
}

// Save writes the view to the backing file.
func (h *FileHost) Save(v View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0644)
}

// Ensure FileHost implements ViewStateHost.
var _ ViewStateHost = (*FileHost)(nil)
