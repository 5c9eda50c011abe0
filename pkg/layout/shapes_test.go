package layout

import "testing"

func TestStartCapsuleWidth(t *testing.T) {
	tests := []struct {
		name       string
		labelWidth float64
		want       float64
	}{
		{"zero floors at minimum", 0, MinCapsuleWidth},
		{"narrow floors at minimum", 30, MinCapsuleWidth},
		{"wide grows with label", 200, 200 + LabelPadding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartCapsuleWidth(tt.labelWidth); got != tt.want {
				t.Errorf("StartCapsuleWidth(%v) = %v, want %v", tt.labelWidth, got, tt.want)
			}
		})
	}
}

func TestCapsuleAnchors(t *testing.T) {
	c := Rect{X: 10, Y: 20, W: 60, H: CapsuleHeight}
	if p := CapsuleTopCenter(c); p.X != 40 || p.Y != 20 {
		t.Errorf("CapsuleTopCenter = %v", p)
	}
	if p := CapsuleBottomCenter(c); p.X != 40 || p.Y != 50 {
		t.Errorf("CapsuleBottomCenter = %v", p)
	}
}

func TestFrameSize(t *testing.T) {
	w, h := FrameSize(100, 200)
	if w != 100+2*FramePadding {
		t.Errorf("w = %v", w)
	}
	if h != HeaderHeight+200+2*FramePadding {
		t.Errorf("h = %v", h)
	}
}

func TestFrameBody(t *testing.T) {
	w, h := FrameSize(100, 200)
	body := FrameBody(w, h)
	if body.W != 100 || body.H != 200 {
		t.Errorf("FrameBody should invert FrameSize: %v", body)
	}
	if body.X != FramePadding || body.Y != HeaderHeight+FramePadding {
		t.Errorf("FrameBody origin = (%v, %v)", body.X, body.Y)
	}
}

func TestWedgeBottomY(t *testing.T) {
	tests := []struct {
		name            string
		thenH           float64
		containerH      float64
		elseCenterY     float64
		hasElse         bool
		want            float64
	}{
		{"with else uses else center", 40, 140, 100, true, 100},
		{"without else extends to padding line", 200, 240, 0, false, 220},
		{"without else keeps minimum depth", 40, 100, 0, false, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WedgeBottomY(tt.thenH, tt.containerH, tt.elseCenterY, tt.hasElse)
			if got != tt.want {
				t.Errorf("WedgeBottomY = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWedgeVertices(t *testing.T) {
	v := WedgeVertices(40, 80, 100)

	// Top edge at half the then-branch height, bottom at bottomY.
	if v[0] != (Point{X: 0, Y: 20}) {
		t.Errorf("v0 = %v", v[0])
	}
	if v[4] != (Point{X: 0, Y: 100}) {
		t.Errorf("v4 = %v", v[4])
	}

	// Right edge stops GapX short of the branches.
	right := 80 - GapX
	if v[1].X != right || v[3].X != right {
		t.Errorf("right edge = %v / %v, want %v", v[1].X, v[3].X, right)
	}

	// The notch indents at the vertical midpoint.
	if v[2] != (Point{X: right - NotchDepth, Y: 60}) {
		t.Errorf("notch = %v", v[2])
	}
}
