package pad

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/padviz/pkg/scene"
)

// =============================================================================
// Retained SVG Surface
// =============================================================================

// SVGSurface is a retained implementation of [scene.Surface]: the
// reconciler mutates a group tree in place and [SVGSurface.Serialize]
// snapshots it as an SVG document at any point.
//
// Animation flags are accepted and ignored; a static document has no
// transitions to run.
type SVGSurface struct {
	root  *svgGroup
	view  scene.View
	style Style

	// Canvas size for the emitted viewBox.
	width, height float64
}

// SurfaceOption configures an SVGSurface.
type SurfaceOption func(*SVGSurface)

// WithSurfaceStyle sets the visual style (default [Simple]).
func WithSurfaceStyle(s Style) SurfaceOption {
	return func(surf *SVGSurface) { surf.style = s }
}

// WithCanvasSize sets the emitted document's viewBox size. Without it
// the size is derived from the root group's extent at serialization.
func WithCanvasSize(w, h float64) SurfaceOption {
	return func(surf *SVGSurface) { surf.width, surf.height = w, h }
}

// NewSVGSurface creates an empty retained surface.
func NewSVGSurface(opts ...SurfaceOption) *SVGSurface {
	s := &SVGSurface{
		root:  newSVGGroup(""),
		view:  scene.DefaultView(),
		style: Simple{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root implements [scene.Surface].
func (s *SVGSurface) Root() scene.Group { return s.root }

// SetView implements [scene.Surface].
func (s *SVGSurface) SetView(v scene.View) { s.view = v }

// View returns the transform applied at the document root.
func (s *SVGSurface) View() scene.View { return s.view }

// Serialize snapshots the retained tree as an SVG document. The view
// transform is applied as pan-then-zoom on a wrapping group.
func (s *SVGSurface) Serialize() []byte {
	w, h := s.width, s.height
	if w == 0 && h == 0 {
		w, h = s.extent()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	s.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <g transform=\"translate(%.1f,%.1f) scale(%.3f)\">\n", s.view.X, s.view.Y, s.view.Scale)
	for _, id := range s.root.order {
		s.root.children[id].write(&buf, 2)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// extent is the bottom-right corner of the top-level groups plus the
// canvas padding, scaled by the view.
func (s *SVGSurface) extent() (w, h float64) {
	for _, id := range s.root.order {
		g := s.root.children[id]
		for _, sh := range g.shapes {
			w = max(w, g.x+sh.X+sh.W)
			h = max(h, g.y+sh.Y+sh.H)
		}
	}
	w = (w + 2*canvasPadding) * s.view.Scale
	h = (h + 2*canvasPadding) * s.view.Scale
	return w, h
}

// =============================================================================
// Retained Group
// =============================================================================

type svgGroup struct {
	id       string
	x, y     float64
	opacity  float64
	shapes   []scene.Shape
	order    []string
	children map[string]*svgGroup
}

func newSVGGroup(id string) *svgGroup {
	return &svgGroup{id: id, opacity: 1, children: make(map[string]*svgGroup)}
}

func (g *svgGroup) ID() string { return g.id }

func (g *svgGroup) Children() []string {
	return append([]string(nil), g.order...)
}

func (g *svgGroup) Child(id string) (scene.Group, bool) {
	c, ok := g.children[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (g *svgGroup) EnsureChild(id string) scene.Group {
	if c, ok := g.children[id]; ok {
		return c
	}
	c := newSVGGroup(id)
	g.children[id] = c
	g.order = append(g.order, id)
	return c
}

func (g *svgGroup) Remove(id string, fade bool) {
	if _, ok := g.children[id]; !ok {
		return
	}
	delete(g.children, id)
	for i, cid := range g.order {
		if cid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

func (g *svgGroup) SetPosition(x, y float64, animate bool) {
	g.x, g.y = x, y
}

func (g *svgGroup) SetShapes(shapes []scene.Shape) {
	g.shapes = shapes
}

func (g *svgGroup) SetOpacity(opacity float64, animate bool) {
	g.opacity = opacity
}

func (g *svgGroup) write(buf *bytes.Buffer, depth int) {
	indent := indentFor(depth)
	fmt.Fprintf(buf, "%s<g id=%q transform=\"translate(%.1f,%.1f)\"", indent, g.id, g.x, g.y)
	if g.opacity != 1 {
		fmt.Fprintf(buf, " opacity=\"%.2f\"", g.opacity)
	}
	buf.WriteString(">\n")
	for _, s := range g.shapes {
		writeShape(buf, s, depth+1)
	}
	for _, id := range g.order {
		g.children[id].write(buf, depth+1)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

// Interface checks.
var (
	_ scene.Surface = (*SVGSurface)(nil)
	_ scene.Group   = (*svgGroup)(nil)
)
