package scene

import (
	"strings"

	"github.com/matzehuels/padviz/pkg/layout"
	"github.com/matzehuels/padviz/pkg/observability"
)

// =============================================================================
// Reconciler
// =============================================================================

// Offset is a user-applied positional adjustment layered on top of the
// computed layout, keyed by stable identity.
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Reconciler diffs successive geometry trees against a retained surface
// and owns the interactive state (manual offsets, view transform, drag).
//
// All methods must be called from the single UI goroutine; the
// reconciler does no locking.
type Reconciler struct {
	surface Surface
	host    ViewStateHost // optional

	view    View
	offsets map[string]Offset

	// Per-pass bookkeeping, rebuilt on every Render.
	elements map[string]Group
	computed map[string]layout.Point

	dragID string
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithViewStateHost attaches a persistence host: the saved transform is
// restored at construction and every transform change is written back.
func WithViewStateHost(h ViewStateHost) Option {
	return func(r *Reconciler) { r.host = h }
}

// NewReconciler creates a reconciler drawing onto surface.
func NewReconciler(surface Surface, opts ...Option) *Reconciler {
	r := &Reconciler{
		surface:  surface,
		view:     DefaultView(),
		offsets:  make(map[string]Offset),
		elements: make(map[string]Group),
		computed: make(map[string]layout.Point),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.host != nil {
		if v, ok := r.host.Load(); ok {
			r.view = v.Clamp()
		}
	}
	r.surface.SetView(r.view)
	return r
}

// Render reconciles the surface with a new geometry tree. It is safe to
// call repeatedly with structurally different trees; only the nodes
// whose identity entered, moved, or left are touched. Manual offsets
// and the view transform survive untouched except for offsets whose
// owning identity disappeared.
//
// Within one call, enter/update/exit at a container level completes
// before that level's children are processed, and sibling order follows
// the input tree.
func (r *Reconciler) Render(root *layout.Node) {
	r.elements = make(map[string]Group)
	r.computed = make(map[string]layout.Point)

	var nodes []*layout.Node
	if root != nil {
		nodes = []*layout.Node{root}
	}
	enter, update, exit := r.reconcile(r.surface.Root(), nodes)
	observability.Scene().OnReconcile(enter, update, exit)
}

// reconcile applies the enter/update/exit diff at one container level,
// then recurses into each surviving node's group.
func (r *Reconciler) reconcile(parent Group, nodes []*layout.Node) (enter, update, exit int) {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	// Exit: fade out departed nodes and drop their manual offsets,
	// including those of their (also departed) descendants.
	for _, id := range parent.Children() {
		if !present[id] {
			parent.Remove(id, true)
			r.dropOffsets(id)
			exit++
		}
	}

	for _, n := range nodes {
		g, existed := parent.Child(n.ID)
		if !existed {
			// Enter: create hidden, position immediately, fade in.
			g = parent.EnsureChild(n.ID)
			g.SetOpacity(0, false)
			g.SetShapes(Shapes(n))
			r.place(g, n, false)
			g.SetOpacity(1, true)
			enter++
		} else {
			// Update: patch in place, preserving element-local state.
			g.SetShapes(Shapes(n))
			r.place(g, n, n.ID != r.dragID)
			update++
		}

		r.elements[n.ID] = g
		r.computed[n.ID] = layout.Point{X: n.X, Y: n.Y}

		e, u, x := r.reconcile(g, n.Kids())
		enter += e
		update += u
		exit += x
	}
	return enter, update, exit
}

// place positions a group at its computed coordinates plus the node's
// manual offset. The actively dragged node always moves immediately so
// transitions never fight the pointer.
func (r *Reconciler) place(g Group, n *layout.Node, animate bool) {
	off := r.offsets[n.ID]
	g.SetPosition(n.X+off.DX, n.Y+off.DY, animate)
}

// dropOffsets removes the manual offset of id and of every descendant.
// Identities are structural paths, so descendants share the id prefix.
func (r *Reconciler) dropOffsets(id string) {
	delete(r.offsets, id)
	prefix := id + "/"
	for k := range r.offsets {
		if strings.HasPrefix(k, prefix) {
			delete(r.offsets, k)
		}
	}
}

// Offset returns the manual offset currently applied to id.
func (r *Reconciler) Offset(id string) Offset {
	return r.offsets[id]
}

// =============================================================================
// View Transform
// =============================================================================

// View returns the current view transform.
func (r *Reconciler) View() View {
	return r.view
}

// SetView replaces the view transform, clamped to the valid scale
// range, applies it at the scene root, and persists it.
func (r *Reconciler) SetView(v View) {
	r.view = v.Clamp()
	r.surface.SetView(r.view)
	r.persistView()
}

// Pan shifts the view by a screen-space delta. Ignored while a node
// drag is active: the two gestures share the pointer and must not both
// consume it.
func (r *Reconciler) Pan(dx, dy float64) {
	if r.Dragging() {
		return
	}
	r.SetView(View{X: r.view.X + dx, Y: r.view.Y + dy, Scale: r.view.Scale})
}

// Zoom multiplies the current scale by factor, clamped to the valid
// range.
func (r *Reconciler) Zoom(factor float64) {
	r.SetView(View{X: r.view.X, Y: r.view.Y, Scale: r.view.Scale * factor})
}

func (r *Reconciler) persistView() {
	if r.host == nil {
		return
	}
	// Persistence is best-effort; a failing host must not break
	// interaction.
	_ = r.host.Save(r.view)
}

// =============================================================================
// Drag Interaction
// =============================================================================

// StartDrag marks id as actively dragged. While a drag is live the
// node's position updates bypass animation and the ambient pan gesture
// is suspended.
func (r *Reconciler) StartDrag(id string) {
	r.dragID = id
}

// Dragging reports whether a node drag is in progress.
func (r *Reconciler) Dragging() bool {
	return r.dragID != ""
}

// DragID returns the identity under active drag, or "".
func (r *Reconciler) DragID() string {
	return r.dragID
}

// MoveDrag accumulates a pointer movement delta into the dragged node's
// manual offset and repositions it immediately. The delta is divided by
// the view scale so dragging feels 1:1 at any zoom level.
func (r *Reconciler) MoveDrag(dx, dy float64) {
	if r.dragID == "" {
		return
	}
	off := r.offsets[r.dragID]
	off.DX += dx / r.view.Scale
	off.DY += dy / r.view.Scale
	r.offsets[r.dragID] = off

	g, ok := r.elements[r.dragID]
	if !ok {
		return
	}
	base := r.computed[r.dragID]
	g.SetPosition(base.X+off.DX, base.Y+off.DY, false)
}

// EndDrag clears the active drag and restores the pan gesture.
func (r *Reconciler) EndDrag() {
	r.dragID = ""
}
