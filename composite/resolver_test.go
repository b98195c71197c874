package composite

import "testing"

func TestResolveAxisRules(t *testing.T) {
	canvas := &Canvas{
		Width: 1000, Height: 800,
		PaddingLeft: 40, PaddingRight: 60,
		PaddingTop: 20, PaddingBottom: 30,
	}

	cases := []struct {
		name         string
		x            Position
		wantX        float64
		wantDrag     bool
		wantRight    bool
	}{
		{"left_keyword", Position{Edge: EdgeLeft}, 40, false, false},
		{"center_keyword", Position{Edge: EdgeCenter}, 40 + (900-200)/2.0, false, false},
		{"right_keyword", Position{Edge: EdgeRight}, 40 + 900 - 200, true, true},
		{"positive_offset_content_relative", At(100), 140, true, false},
		{"zero_offset", At(0), 40, true, false},
		{"negative_offset_far_anchored", At(-10), 1000 - 10 - 200, true, true},
		{"malformed_defaults_to_near", Position{Edge: EdgeTop}, 40, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layer := &Layer{ID: "l", X: c.x, Y: At(0), Width: 200, Height: 100, Visible: true}
			p := Resolve(layer, canvas)
			if p.X != c.wantX {
				t.Fatalf("X = %v, want %v", p.X, c.wantX)
			}
			if p.CanDragX != c.wantDrag {
				t.Fatalf("CanDragX = %v, want %v", p.CanDragX, c.wantDrag)
			}
			if p.RightAligned != c.wantRight {
				t.Fatalf("RightAligned = %v, want %v", p.RightAligned, c.wantRight)
			}
			if p.Width != 200 || p.Height != 100 {
				t.Fatalf("size = %vx%v, want 200x100", p.Width, p.Height)
			}
		})
	}
}

func TestResolveCenterNeverDraggable(t *testing.T) {
	canvas := &Canvas{Width: 500, Height: 500}
	layer := &Layer{X: Position{Edge: EdgeCenter}, Y: Position{Edge: EdgeCenter}, Width: 100, Height: 100}
	p := Resolve(layer, canvas)
	if p.CanDragX || p.CanDragY {
		t.Fatalf("centered layer must not be draggable, got CanDragX=%v CanDragY=%v", p.CanDragX, p.CanDragY)
	}
	if p.X != 200 || p.Y != 200 {
		t.Fatalf("centered at (%v,%v), want (200,200)", p.X, p.Y)
	}
}

func TestResolveTotalSizeWithPaddingAndRotation(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 1000}
	cases := []struct {
		name     string
		rotation int
		wantW    float64
		wantH    float64
	}{
		{"rot0", 0, 200 + 5 + 7, 100 + 3 + 9},
		{"rot90", 90, 100 + 3 + 9, 200 + 5 + 7},
		{"rot180", 180, 200 + 5 + 7, 100 + 3 + 9},
		{"rot270", 270, 100 + 3 + 9, 200 + 5 + 7},
		{"bogus_rotation_as_zero", 45, 200 + 5 + 7, 100 + 3 + 9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layer := &Layer{
				X: At(0), Y: At(0),
				Width: 200, Height: 100,
				PaddingLeft: 5, PaddingRight: 7, PaddingTop: 3, PaddingBottom: 9,
				Rotation: c.rotation,
			}
			p := Resolve(layer, canvas)
			if p.Width != c.wantW || p.Height != c.wantH {
				t.Fatalf("total = %vx%v, want %vx%v", p.Width, p.Height, c.wantW, c.wantH)
			}
		})
	}
}

func TestLayerAspectRatio(t *testing.T) {
	cases := []struct {
		name     string
		w, h     float64
		rotation int
		want     float64
	}{
		{"landscape", 200, 100, 0, 2},
		{"rotated_quarter", 200, 100, 90, 0.5},
		{"rotated_three_quarters", 200, 100, 270, 0.5},
		{"rotated_half", 200, 100, 180, 2},
		{"degenerate", 200, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := &Layer{Width: c.w, Height: c.h, Rotation: c.rotation}
			if got := l.AspectRatio(); got != c.want {
				t.Fatalf("AspectRatio() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestPlacementRelative(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := &Layer{X: At(100), Y: At(50), Width: 200, Height: 100}
	p := Resolve(layer, canvas)
	r, ok := p.Relative(canvas)
	if !ok {
		t.Fatal("Relative should succeed for a measured canvas")
	}
	if r.X != 0.1 || r.Width != 0.2 || r.Y != 0.1 || r.Height != 0.2 {
		t.Fatalf("relative = %+v", r)
	}

	if _, ok := p.Relative(&Canvas{}); ok {
		t.Fatal("Relative must refuse an unmeasured canvas")
	}
}
