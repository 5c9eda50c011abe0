package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/layout"
	"github.com/matzehuels/padviz/pkg/scene"
)

// Pan and zoom steps for keyboard navigation, in screen pixels.
const (
	panStepX   = 4 * cellWidth
	panStepY   = 2 * cellHeight
	zoomInStep = 1.25
	zoomOut    = 0.8
)

// viewCommand creates the view command for exploring diagrams in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [flow.json]",
		Short: "Explore a diagram interactively in the terminal",
		Long: `Explore a diagram interactively in the terminal.

Controls:

  arrows / hjkl   pan (or move the grabbed node)
  mouse drag      pan
  + / -           zoom in / out (also mouse wheel)
  0               reset pan and zoom
  tab             cycle through grabbable containers
  enter           grab / release the selected container
  q               quit

Pan and zoom persist across sessions; grabbed-node offsets last for the
session and survive relayouts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(args[0])
		},
	}
	return cmd
}

// runView loads the tree, computes geometry, and runs the viewer.
func (c *CLI) runView(input string) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}
	tree, err := flow.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	m := newViewModel(tree)
	if path, err := viewStatePath(cfg); err == nil {
		if host, err := scene.NewFileHost(path); err == nil {
			m.host = host
		}
	}
	m.init()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// =============================================================================
// Viewer Model
// =============================================================================

// viewModel is the bubbletea model for the interactive viewer.
type viewModel struct {
	tree    *flow.Node
	engine  *layout.Engine
	surface *termSurface
	rec     *scene.Reconciler
	host    scene.ViewStateHost

	// draggables are container identities in pre-order; selIdx indexes
	// into them, -1 meaning no selection.
	draggables []string
	selIdx     int

	// Mouse drag bookkeeping.
	mouseX, mouseY int
	mouseHeld      bool

	width  int
	height int
}

func newViewModel(tree *flow.Node) *viewModel {
	return &viewModel{
		tree:   tree,
		engine: layout.New(nil),
		selIdx: -1,
		width:  80,
		height: 24,
	}
}

// init builds the surface and reconciler and renders the first pass.
func (m *viewModel) init() {
	m.surface = newTermSurface()
	var opts []scene.Option
	if m.host != nil {
		opts = append(opts, scene.WithViewStateHost(m.host))
	}
	m.rec = scene.NewReconciler(m.surface, opts...)

	geometry := m.engine.Compute(m.tree)
	m.rec.Render(geometry)
	m.draggables = collectContainers(geometry)
}

// collectContainers gathers the identities of grabbable nodes in
// pre-order: every container that owns children.
func collectContainers(n *layout.Node) []string {
	if n == nil {
		return nil
	}
	var ids []string
	switch n.Kind {
	case flow.KindBlock, flow.KindIf, flow.KindLoop:
		ids = append(ids, n.ID)
	}
	for _, kid := range n.Kids() {
		ids = append(ids, collectContainers(kid)...)
	}
	return ids
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		m.move(0, -panStepY)
	case "down", "j":
		m.move(0, panStepY)
	case "left", "h":
		m.move(-panStepX, 0)
	case "right", "l":
		m.move(panStepX, 0)

	case "+", "=":
		m.rec.Zoom(zoomInStep)
	case "-", "_":
		m.rec.Zoom(zoomOut)
	case "0":
		m.rec.SetView(scene.DefaultView())

	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)

	case "enter", " ":
		m.toggleDrag()
	}
	return m, nil
}

// move pans the view, or moves the grabbed node when a drag is active.
func (m *viewModel) move(dx, dy float64) {
	if m.rec.Dragging() {
		m.rec.MoveDrag(dx, dy)
		return
	}
	m.rec.Pan(dx, dy)
}

// cycleSelection steps through the grabbable containers. An active
// drag ends first so the selection can move on.
func (m *viewModel) cycleSelection(dir int) {
	if len(m.draggables) == 0 {
		return
	}
	if m.rec.Dragging() {
		m.rec.EndDrag()
	}
	m.selIdx = (m.selIdx + dir + len(m.draggables) + 1) % (len(m.draggables) + 1)
	// The extra slot past the end clears the selection.
}

func (m *viewModel) toggleDrag() {
	if m.rec.Dragging() {
		m.rec.EndDrag()
		return
	}
	if id := m.selected(); id != "" {
		m.rec.StartDrag(id)
	}
}

// selected returns the currently selected container identity, or "".
func (m *viewModel) selected() string {
	if m.selIdx < 0 || m.selIdx >= len(m.draggables) {
		return ""
	}
	return m.draggables[m.selIdx]
}

func (m *viewModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.rec.Zoom(zoomInStep)
		case tea.MouseButtonWheelDown:
			m.rec.Zoom(zoomOut)
		case tea.MouseButtonLeft:
			m.mouseX, m.mouseY = msg.X, msg.Y
			m.mouseHeld = true
		}
	case tea.MouseActionMotion:
		if m.mouseHeld {
			dx := float64(msg.X-m.mouseX) * cellWidth
			dy := float64(msg.Y-m.mouseY) * cellHeight
			m.move(dx, dy)
			m.mouseX, m.mouseY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		m.mouseHeld = false
	}
}

func (m *viewModel) View() string {
	header := StyleTitle.Render("padviz") + "  " +
		StyleDim.Render("arrows pan · +/- zoom · 0 reset · tab select · ⏎ grab · q quit")

	status := fmt.Sprintf("zoom %.0f%%", m.rec.View().Scale*100)
	if id := m.selected(); id != "" {
		verb := "selected"
		if m.rec.Dragging() {
			verb = "grabbed"
		}
		status += "  " + verb + " " + id
	}

	rows := m.height - 3
	if rows < 1 {
		rows = 1
	}
	body := m.surface.Draw(m.width, rows, m.selected())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		StyleDim.Render(status),
		body,
	)
}
