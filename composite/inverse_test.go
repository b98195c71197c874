package composite

import (
	"fmt"
	"math"
	"testing"
)

// displayRect converts a resolved placement into viewport pixels for a
// viewport of the given size.
func displayRect(p Placement, c *Canvas, viewW, viewH float64) Rect {
	sx := viewW / c.Width
	sy := viewH / c.Height
	return Rect{X: p.X * sx, Y: p.Y * sy, Width: p.Width * sx, Height: p.Height * sy}
}

func applyUpdate(l Layer, u Update) Layer {
	if u.X != nil {
		l.X = *u.X
	}
	if u.Y != nil {
		l.Y = *u.Y
	}
	if u.Size != nil {
		l.Width = u.Size.Width
		l.Height = u.Size.Height
	}
	return l
}

func TestRoundTripIdentity(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 800}
	positions := []struct {
		name string
		x, y Position
	}{
		{"keywords", Position{Edge: EdgeLeft}, Position{Edge: EdgeTop}},
		{"centered", Position{Edge: EdgeCenter}, Position{Edge: EdgeCenter}},
		{"far_keywords", Position{Edge: EdgeRight}, Position{Edge: EdgeBottom}},
		{"near_offsets", At(120), At(40)},
		{"far_offsets", At(-30), At(-15)},
		{"mixed", At(0), Position{Edge: EdgeBottom}},
	}
	rotations := []int{0, 90, 180, 270}

	for _, pc := range positions {
		for _, rot := range rotations {
			for _, pad := range []float64{0, 6} {
				name := fmt.Sprintf("%s_rot%d", pc.name, rot)
				if pad != 0 {
					name += "_padded"
				}
				t.Run(name, func(t *testing.T) {
					layer := Layer{
						ID: "l", Visible: true,
						X: pc.x, Y: pc.y,
						Width: 200, Height: 100,
						PaddingLeft: pad, PaddingTop: pad / 2,
						Rotation: rot,
					}
					p := Resolve(&layer, canvas)
					r := displayRect(p, canvas, canvas.Width, canvas.Height)
					u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
					if !ok {
						t.Fatal("InverseMap refused a measured viewport")
					}
					got := applyUpdate(layer, u)
					if math.Abs(got.Width-layer.Width) > 1 || math.Abs(got.Height-layer.Height) > 1 {
						t.Fatalf("size drifted: got %vx%v, want %vx%v", got.Width, got.Height, layer.Width, layer.Height)
					}
					// the recovered model must resolve to the same rectangle
					rp := Resolve(&got, canvas)
					if math.Abs(rp.X-p.X) > 1 || math.Abs(rp.Y-p.Y) > 1 ||
						math.Abs(rp.Width-p.Width) > 1 || math.Abs(rp.Height-p.Height) > 1 {
						t.Fatalf("placement drifted: got %+v, want %+v", rp, p)
					}
					// draggable numeric axes must round-trip the exact model
					if layer.X.Edge == EdgeNone && got.X != layer.X {
						t.Fatalf("x = %+v, want %+v", got.X, layer.X)
					}
					if layer.Y.Edge == EdgeNone && got.Y != layer.Y {
						t.Fatalf("y = %+v, want %+v", got.Y, layer.Y)
					}
					// far keywords stay symbolic on an unpadded canvas
					if layer.X.Edge == EdgeRight && got.X != layer.X {
						t.Fatalf("x = %+v, want right keyword", got.X)
					}
					if layer.Y.Edge == EdgeBottom && got.Y != layer.Y {
						t.Fatalf("y = %+v, want bottom keyword", got.Y)
					}
				})
			}
		}
	}
}

func TestRoundTripScaledViewport(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 800}
	layer := Layer{X: At(120), Y: At(-40), Width: 200, Height: 100}
	p := Resolve(&layer, canvas)
	// viewport at half the canvas resolution
	r := displayRect(p, canvas, 500, 400)
	u, ok := InverseMap(r, 500, 400, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused a measured viewport")
	}
	got := applyUpdate(layer, u)
	if got.X != layer.X || got.Y != layer.Y {
		t.Fatalf("position drifted: x=%+v y=%+v", got.X, got.Y)
	}
	if got.Width != 200 || got.Height != 100 {
		t.Fatalf("size drifted: %vx%v", got.Width, got.Height)
	}
}

func TestEdgeCrossingReanchor(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: At(-10), Y: At(0), Width: 200, Height: 100}
	p := Resolve(&layer, canvas)
	if p.X != 790 || !p.RightAligned {
		t.Fatalf("setup: X=%v RightAligned=%v", p.X, p.RightAligned)
	}

	// move the box so its logical left position lands at 850: the model
	// must flip to a non-negative left-anchored offset
	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.X = 850
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.X == nil || u.X.Edge != EdgeNone || u.X.Offset != 850 {
		t.Fatalf("x = %+v, want offset 850", u.X)
	}
}

func TestExactEdgeBecomesKeyword(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: At(-10), Y: At(0), Width: 200, Height: 100}
	p := Resolve(&layer, canvas)

	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.X = 800 // right edge exactly on the canvas edge
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.X == nil || u.X.Edge != EdgeRight {
		t.Fatalf("x = %+v, want right keyword", u.X)
	}
}

func TestNearAnchorCrossesToFar(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500, PaddingLeft: 20}
	layer := Layer{X: At(10), Y: At(0), Width: 200, Height: 100}
	p := Resolve(&layer, canvas)

	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.X = 5 // left of the content area's start
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.X == nil || u.X.Edge != EdgeNone || u.X.Offset != 5+200-1000 {
		t.Fatalf("x = %+v, want far offset %v", u.X, 5+200-1000)
	}
}

func TestOversizedLayerHoldsContentEdge(t *testing.T) {
	// the layer is wider and taller than the canvas, so once it slides
	// left of the content edge no anchor can express the position; the
	// model must hold at the content edge instead of flipping to a
	// positive far-formula offset that re-resolves on the wrong side
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: At(0), Y: At(0), Width: 1100, Height: 600}
	p := Resolve(&layer, canvas)
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("setup: placed at (%v,%v)", p.X, p.Y)
	}

	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.X = -50
	r.Y = -30
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.X == nil || *u.X != At(0) {
		t.Fatalf("x = %+v, want offset 0", u.X)
	}
	if u.Y == nil || *u.Y != At(0) {
		t.Fatalf("y = %+v, want offset 0", u.Y)
	}
	got := applyUpdate(layer, u)
	rp := Resolve(&got, canvas)
	if rp.X > 0 || rp.Y > 0 {
		t.Fatalf("re-resolved right of the content edge: (%v,%v)", rp.X, rp.Y)
	}
}

func TestOversizedFarAnchoredHoldsContentEdge(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: At(-10), Y: At(0), Width: 1100, Height: 100}
	p := Resolve(&layer, canvas)
	if p.X != -110 {
		t.Fatalf("setup: X = %v, want -110", p.X)
	}

	// dragged right into the band neither anchor can represent
	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.X = -50
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.X == nil || *u.X != At(0) {
		t.Fatalf("x = %+v, want offset 0", u.X)
	}
}

func TestCenterAxisLeftAlone(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: Position{Edge: EdgeCenter}, Y: At(10), Width: 200, Height: 100}
	p := Resolve(&layer, canvas)

	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.X += 50
	r.Y += 50
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.X != nil {
		t.Fatalf("centered axis must not be updated, got %+v", u.X)
	}
	if u.Y == nil || u.Y.Offset != 60 {
		t.Fatalf("y = %+v, want offset 60", u.Y)
	}
}

func TestRotatedPaddingRecovery(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 1000}
	layer := Layer{
		X: At(0), Y: At(0),
		Width: 200, Height: 100,
		PaddingLeft: 5, PaddingTop: 3,
		Rotation: 90,
	}
	p := Resolve(&layer, canvas)
	if p.Width != 103 || p.Height != 205 {
		t.Fatalf("rotated total = %vx%v, want 103x205", p.Width, p.Height)
	}

	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.Size == nil || u.Size.Width != 200 || u.Size.Height != 100 {
		t.Fatalf("recovered size = %+v, want 200x100", u.Size)
	}
}

func TestInverseMapGuards(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: At(0), Y: At(0), Width: 200, Height: 100}
	p := Resolve(&layer, canvas)

	if _, ok := InverseMap(Rect{}, 0, 0, &layer, canvas, p); ok {
		t.Fatal("must refuse an unmeasured viewport")
	}
	if _, ok := InverseMap(Rect{}, 100, 100, &layer, &Canvas{}, p); ok {
		t.Fatal("must refuse an unmeasured canvas")
	}
}

func TestSizeFloorOnePixel(t *testing.T) {
	canvas := &Canvas{Width: 1000, Height: 500}
	layer := Layer{X: At(0), Y: At(0), Width: 200, Height: 100, PaddingLeft: 10, PaddingRight: 10}
	p := Resolve(&layer, canvas)

	r := displayRect(p, canvas, canvas.Width, canvas.Height)
	r.Width = 4 // smaller than the layer's own padding
	r.Height = 0
	u, ok := InverseMap(r, canvas.Width, canvas.Height, &layer, canvas, p)
	if !ok {
		t.Fatal("InverseMap refused")
	}
	if u.Size == nil || u.Size.Width < 1 || u.Size.Height < 1 {
		t.Fatalf("recovered size = %+v, want at least 1x1", u.Size)
	}
}
