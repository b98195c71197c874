package composite

import "math"

// Rect is a display-space rectangle, in viewport pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Size is a layer's recovered logical image dimensions.
type Size struct {
	Width, Height float64
}

// Update is a proposed partial change to a layer. Nil fields leave the
// corresponding model fields untouched.
type Update struct {
	X, Y *Position
	Size *Size
}

// IsZero reports whether the update would change nothing.
func (u Update) IsZero() bool {
	return u.X == nil && u.Y == nil && u.Size == nil
}

// InverseMap converts a gesture's resulting display-space rectangle
// back into a partial layer update. The viewport dimensions give the
// display-to-canvas scale; the layer supplies the stationary padding
// and rotation that must be undone to recover the logical image size.
// Axes whose placement was not draggable are left alone. Returns
// ok=false when the viewport or canvas has not been measured yet.
func InverseMap(r Rect, viewW, viewH float64, l *Layer, c *Canvas, p Placement) (Update, bool) {
	if viewW <= 0 || viewH <= 0 || c.Width <= 0 || c.Height <= 0 {
		return Update{}, false
	}

	// display -> canvas pixels
	sx := c.Width / viewW
	sy := c.Height / viewH
	cx := r.X * sx
	cy := r.Y * sy
	cw := r.Width * sx
	ch := r.Height * sy

	var u Update

	// Undo the layer's own padding in the rotated frame, then undo the
	// quarter-turn swap to get back to the logical image size.
	padL, padT, padR, padB := l.RotatedPadding()
	w := cw - padL - padR
	h := ch - padT - padB
	if rot := l.NormalRotation(); rot == 90 || rot == 270 {
		w, h = h, w
	}
	w = math.Max(1, math.Round(w))
	h = math.Max(1, math.Round(h))
	u.Size = &Size{Width: w, Height: h}

	if p.CanDragX {
		u.X = recoverAxis(cx, cw, c.Width, c.PaddingLeft, p.RightAligned, EdgeRight)
	}
	if p.CanDragY {
		u.Y = recoverAxis(cy, ch, c.Height, c.PaddingTop, p.BottomAligned, EdgeBottom)
	}
	return u, true
}

// recoverAxis maps a canvas-space position back to the offset model,
// re-anchoring when the layer crosses the canvas edge. An offset of
// exactly zero from the far edge becomes the keyword, never numeric 0.
func recoverAxis(at, total, canvasLen, padNear float64, farAligned bool, farEdge Edge) *Position {
	at = math.Round(at)
	near := at - padNear
	off := math.Round(at + total - canvasLen)
	if near < 0 && off > 0 {
		// the layer is wider than the span between the content edge and
		// the canvas's far edge, so neither anchor can express a
		// position this far over; hold at the content edge
		return &Position{Offset: 0}
	}
	if farAligned {
		switch {
		case off > 0:
			return &Position{Offset: near}
		case off == 0:
			return &Position{Edge: farEdge}
		default:
			return &Position{Offset: off}
		}
	}
	if near >= 0 {
		return &Position{Offset: near}
	}
	// fell left of the content area: hang from the far edge instead
	if off == 0 {
		return &Position{Edge: farEdge}
	}
	return &Position{Offset: off}
}
