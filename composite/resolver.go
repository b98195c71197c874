package composite

// Placement is a layer's resolved on-screen rectangle in canvas
// pixels, plus the interaction flags the overlay needs: which axes may
// be dragged and which edge the current offset is anchored to.
type Placement struct {
	X, Y          float64
	Width, Height float64

	CanDragX, CanDragY bool

	RightAligned  bool
	BottomAligned bool
}

// Resolve converts a layer's declarative position model into canvas
// pixels. Positive numeric offsets are content-relative; negative
// offsets hang from the canvas's far edge. Keyword positions anchor
// against the content area.
func Resolve(l *Layer, c *Canvas) Placement {
	var p Placement
	p.Width = l.TotalWidth()
	p.Height = l.TotalHeight()
	p.X, p.CanDragX, p.RightAligned = resolveAxis(l.X, c.Width, c.PaddingLeft, c.ContentWidth(), p.Width)
	p.Y, p.CanDragY, p.BottomAligned = resolveAxis(l.Y, c.Height, c.PaddingTop, c.ContentHeight(), p.Height)
	return p
}

func resolveAxis(pos Position, canvasLen, padNear, content, total float64) (at float64, canDrag, farAligned bool) {
	switch pos.Edge {
	case EdgeCenter:
		return padNear + (content-total)/2, false, false
	case EdgeRight, EdgeBottom:
		return padNear + content - total, true, true
	case EdgeNone:
		if pos.Offset < 0 {
			return canvasLen + pos.Offset - total, true, true
		}
		return padNear + pos.Offset, true, false
	default:
		// near keywords and malformed values pin to the content edge
		return padNear, false, false
	}
}

// Relative converts the placement into fractions of the canvas size,
// for percentage-based styling. Returns ok=false when the canvas has
// no measurable area yet.
func (p Placement) Relative(c *Canvas) (Placement, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return Placement{}, false
	}
	r := p
	r.X /= c.Width
	r.Width /= c.Width
	r.Y /= c.Height
	r.Height /= c.Height
	return r, true
}
