package scene

// =============================================================================
// View Transform
// =============================================================================

// Zoom bounds for the scene root transform.
const (
	MinScale = 0.1
	MaxScale = 4.0
)

// View is the scene root transform: a pan offset and a zoom scale,
// independent of all node geometry.
type View struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// DefaultView is the transform used when no saved view state exists.
func DefaultView() View {
	return View{X: 0, Y: 0, Scale: 1}
}

// Clamp bounds the scale to [MinScale, MaxScale] and normalizes a zero
// scale to 1.
func (v View) Clamp() View {
	switch {
	case v.Scale == 0:
		v.Scale = 1
	case v.Scale < MinScale:
		v.Scale = MinScale
	case v.Scale > MaxScale:
		v.Scale = MaxScale
	}
	return v
}
