package cli

import (
	"strings"

	"github.com/matzehuels/padviz/pkg/scene"
)

// =============================================================================
// Terminal Surface
// =============================================================================

// Pixel-to-cell mapping for the terminal canvas. Geometry is computed
// in pixel units; a terminal cell stands for roughly one character of
// a monospace font.
const (
	cellWidth  = 8.0
	cellHeight = 20.0
)

// termGroup is a retained node group drawn onto the terminal canvas.
// Animation hints are ignored: terminal redraws are immediate.
type termGroup struct {
	id       string
	x, y     float64
	opacity  float64
	shapes   []scene.Shape
	order    []string
	children map[string]*termGroup
}

func newTermGroup(id string) *termGroup {
	return &termGroup{
		id:       id,
		opacity:  1,
		children: make(map[string]*termGroup),
	}
}

func (g *termGroup) ID() string { return g.id }

func (g *termGroup) Children() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *termGroup) Child(id string) (scene.Group, bool) {
	c, ok := g.children[id]
	return c, ok
}

func (g *termGroup) EnsureChild(id string) scene.Group {
	if c, ok := g.children[id]; ok {
		return c
	}
	c := newTermGroup(id)
	g.children[id] = c
	g.order = append(g.order, id)
	return c
}

func (g *termGroup) Remove(id string, fade bool) {
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

func (g *termGroup) SetPosition(x, y float64, animate bool) {
	g.x, g.y = x, y
}

func (g *termGroup) SetShapes(shapes []scene.Shape) {
	g.shapes = shapes
}

func (g *termGroup) SetOpacity(opacity float64, animate bool) {
	g.opacity = opacity
}

// termSurface implements [scene.Surface] over a character canvas.
type termSurface struct {
	root *termGroup
	view scene.View
}

func newTermSurface() *termSurface {
	return &termSurface{
		root: newTermGroup("root"),
		view: scene.DefaultView(),
	}
}

func (s *termSurface) Root() scene.Group    { return s.root }
func (s *termSurface) SetView(v scene.View) { s.view = v }
func (s *termSurface) View() scene.View     { return s.view }

// Draw renders the retained scene onto a canvas of the given cell size,
// applying the view transform. The highlighted group, if any, is drawn
// with emphasized borders.
func (s *termSurface) Draw(cols, rows int, highlight string) string {
	c := newCanvas(cols, rows)
	s.drawGroup(c, s.root, 0, 0, highlight)
	return c.String()
}

func (s *termSurface) drawGroup(c *canvas, g *termGroup, ox, oy float64, highlight string) {
	ax, ay := ox+g.x, oy+g.y
	if g.opacity > 0 {
		emphasize := g.id == highlight
		for _, sh := range g.shapes {
			s.drawShape(c, sh, ax, ay, emphasize)
		}
	}
	for _, id := range g.order {
		s.drawGroup(c, g.children[id], ax, ay, highlight)
	}
}

// cell converts scene pixel coordinates to canvas cell coordinates
// through the view transform.
func (s *termSurface) cell(x, y float64) (int, int) {
	px := s.view.X + x*s.view.Scale
	py := s.view.Y + y*s.view.Scale
	return int(px / cellWidth), int(py / cellHeight)
}

func (s *termSurface) drawShape(c *canvas, sh scene.Shape, ox, oy float64, emphasize bool) {
	switch sh.Kind {
	case scene.ShapeRect, scene.ShapeCapsule:
		x0, y0 := s.cell(ox+sh.X, oy+sh.Y)
		x1, y1 := s.cell(ox+sh.X+sh.W, oy+sh.Y+sh.H)
		rounded := sh.Kind == scene.ShapeCapsule
		c.drawBox(x0, y0, x1, y1, rounded, emphasize)
	case scene.ShapePolygon:
		// Approximate the wedge by its bounding box.
		if len(sh.Points) == 0 {
			return
		}
		minX, minY := sh.Points[0].X, sh.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range sh.Points[1:] {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
		x0, y0 := s.cell(ox+minX, oy+minY)
		x1, y1 := s.cell(ox+maxX, oy+maxY)
		c.drawBox(x0, y0, x1, y1, false, emphasize)
	case scene.ShapeLine:
		x0, y0 := s.cell(ox+sh.X, oy+sh.Y)
		x1, y1 := s.cell(ox+sh.X2, oy+sh.Y2)
		c.drawLine(x0, y0, x1, y1)
	case scene.ShapeText:
		x, y := s.cell(ox+sh.X, oy+sh.Y)
		if sh.Anchor == scene.AnchorMiddle {
			x -= len([]rune(sh.Text)) / 2
		}
		c.drawText(x, y, sh.Text)
	}
}

// =============================================================================
// Canvas
// =============================================================================

// canvas is a cols x rows rune grid. Out-of-range writes are dropped,
// so shapes panned off screen simply clip.
type canvas struct {
	cols, rows int
	cells      [][]rune
}

func newCanvas(cols, rows int) *canvas {
	cells := make([][]rune, rows)
	for i := range cells {
		row := make([]rune, cols)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &canvas{cols: cols, rows: rows, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) drawBox(x0, y0, x1, y1 int, rounded, emphasize bool) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if rounded {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	h, v := '─', '│'
	if emphasize {
		tl, tr, bl, br = '┏', '┓', '┗', '┛'
		h, v = '━', '┃'
	}
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, h)
		c.set(x, y1, h)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, v)
		c.set(x1, y, v)
	}
	c.set(x0, y0, tl)
	c.set(x1, y0, tr)
	c.set(x0, y1, bl)
	c.set(x1, y1, br)
}

func (c *canvas) drawLine(x0, y0, x1, y1 int) {
	switch {
	case x0 == x1:
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			c.set(x0, y, '│')
		}
	case y0 == y1:
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			c.set(x, y0, '─')
		}
	}
}

func (c *canvas) drawText(x, y int, text string) {
	for i, r := range []rune(text) {
		c.set(x+i, y, r)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(string(row), " "))
	}
	return b.String()
}
