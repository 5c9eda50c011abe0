package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/scene"
)

func testViewModel() *viewModel {
	tree := flow.Block("main",
		flow.Command("x = 1"),
		flow.Loop("i < n", flow.Command("step")),
	)
	m := newViewModel(tree)
	m.init()
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewModelCollectContainers(t *testing.T) {
	m := testViewModel()

	want := []string{"blk", "blk/loop1"}
	if len(m.draggables) != len(want) {
		t.Fatalf("draggables = %v, want %v", m.draggables, want)
	}
	for i, id := range want {
		if m.draggables[i] != id {
			t.Errorf("draggables[%d] = %q, want %q", i, m.draggables[i], id)
		}
	}
}

func TestViewModelPan(t *testing.T) {
	m := testViewModel()

	m.Update(key("down"))
	m.Update(key("right"))

	v := m.rec.View()
	if v.X != panStepX || v.Y != panStepY {
		t.Errorf("view after pan = %+v", v)
	}
}

func TestViewModelZoomAndReset(t *testing.T) {
	m := testViewModel()

	m.Update(key("+"))
	if got := m.rec.View().Scale; got != zoomInStep {
		t.Errorf("scale after zoom = %v, want %v", got, zoomInStep)
	}

	m.Update(key("0"))
	if got := m.rec.View(); got != scene.DefaultView() {
		t.Errorf("view after reset = %+v", got)
	}
}

func TestViewModelSelectionCycle(t *testing.T) {
	m := testViewModel()

	if m.selected() != "" {
		t.Fatalf("initial selection = %q", m.selected())
	}

	m.Update(key("tab"))
	if m.selected() != "blk" {
		t.Errorf("first selection = %q, want blk", m.selected())
	}

	m.Update(key("tab"))
	if m.selected() != "blk/loop1" {
		t.Errorf("second selection = %q, want blk/loop1", m.selected())
	}

	// One more step clears the selection, then cycling restarts.
	m.Update(key("tab"))
	if m.selected() != "" {
		t.Errorf("third selection = %q, want none", m.selected())
	}
	m.Update(key("tab"))
	if m.selected() != "blk" {
		t.Errorf("wrapped selection = %q, want blk", m.selected())
	}
}

func TestViewModelGrabAndMove(t *testing.T) {
	m := testViewModel()

	m.Update(key("tab"))
	m.Update(key("tab")) // select blk/loop1
	m.Update(key("enter"))

	if !m.rec.Dragging() || m.rec.DragID() != "blk/loop1" {
		t.Fatalf("drag not active: dragging=%v id=%q", m.rec.Dragging(), m.rec.DragID())
	}

	m.Update(key("down"))
	off := m.rec.Offset("blk/loop1")
	if off.DY != panStepY {
		t.Errorf("offset after move = %+v", off)
	}

	// Moving while dragging must not pan the view.
	if v := m.rec.View(); v != scene.DefaultView() {
		t.Errorf("view changed during drag: %+v", v)
	}

	m.Update(key("enter"))
	if m.rec.Dragging() {
		t.Error("drag should end on second enter")
	}
	if got := m.rec.Offset("blk/loop1"); got != off {
		t.Errorf("offset should survive drag end: %+v", got)
	}
}

func TestViewModelMouseWheelZoom(t *testing.T) {
	m := testViewModel()

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.rec.View().Scale; got != zoomInStep {
		t.Errorf("scale after wheel = %v, want %v", got, zoomInStep)
	}
}

func TestViewModelMouseDragPans(t *testing.T) {
	m := testViewModel()

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 10, Y: 5})
	m.Update(tea.MouseMsg{Action: tea.MouseActionMotion, X: 12, Y: 6})

	v := m.rec.View()
	if v.X != 2*cellWidth || v.Y != cellHeight {
		t.Errorf("view after mouse drag = %+v", v)
	}

	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease})
	m.Update(tea.MouseMsg{Action: tea.MouseActionMotion, X: 20, Y: 20})
	if m.rec.View() != v {
		t.Error("motion after release should not pan")
	}
}

func TestViewModelViewRenders(t *testing.T) {
	m := testViewModel()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty output")
	}
}
