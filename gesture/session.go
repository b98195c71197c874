package gesture

import (
	"math"

	"github.com/milk9111/gallery/composite"
)

// MinSize is the smallest width or height, in display units, a resize
// gesture may shrink a layer to.
const MinSize = 20

// State is the session's current mode.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

// Handle identifies one of the eight resize grips around a layer box.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

func (h Handle) west() bool  { return h == HandleNW || h == HandleW || h == HandleSW }
func (h Handle) east() bool  { return h == HandleNE || h == HandleE || h == HandleSE }
func (h Handle) north() bool { return h == HandleNW || h == HandleN || h == HandleNE }
func (h Handle) south() bool { return h == HandleSW || h == HandleS || h == HandleSE }

func (h Handle) corner() bool {
	return h == HandleNW || h == HandleNE || h == HandleSE || h == HandleSW
}

// Hooks are transition actions fired when the session leaves or
// re-enters Idle. Callers use them to acquire and release global
// pointer capture so the pairing is structural rather than manual.
type Hooks struct {
	OnActive func()
	OnIdle   func()
}

// Session tracks one drag or resize gesture from pointer-down to
// pointer-up. It holds no state between gestures; a new pointer-down
// overwrites everything.
type Session struct {
	state  State
	handle Handle

	// pointer position at gesture start, display units
	startPX, startPY float64
	// rectangle at gesture start, display units
	start composite.Rect
	// measured viewport at gesture start
	viewW, viewH float64

	canDragX, canDragY bool
	lockAspect         bool
	ratio              float64 // original width / height

	hooks Hooks
}

func NewSession(hooks Hooks) *Session {
	return &Session{hooks: hooks}
}

func (s *Session) State() State { return s.state }

// Viewport returns the surface size measured at gesture start.
func (s *Session) Viewport() (float64, float64) { return s.viewW, s.viewH }

// BeginDrag starts a move gesture. It refuses when neither axis is
// draggable or the viewport has no measurable size yet.
func (s *Session) BeginDrag(px, py float64, rect composite.Rect, canDragX, canDragY bool, m Metrics) bool {
	if s.state != StateIdle {
		return false
	}
	if !canDragX && !canDragY {
		return false
	}
	w, h := m.ViewportSize()
	if w <= 0 || h <= 0 {
		return false
	}
	*s = Session{
		state:    StateDragging,
		startPX:  px,
		startPY:  py,
		start:    rect,
		viewW:    w,
		viewH:    h,
		canDragX: canDragX,
		canDragY: canDragY,
		hooks:    s.hooks,
	}
	if s.hooks.OnActive != nil {
		s.hooks.OnActive()
	}
	return true
}

// BeginResize starts a resize gesture on the given handle. ratio is
// the layer's original width:height, used when lockAspect is set.
func (s *Session) BeginResize(h Handle, px, py float64, rect composite.Rect, lockAspect bool, ratio float64, m Metrics) bool {
	if s.state != StateIdle || h == HandleNone {
		return false
	}
	w, vh := m.ViewportSize()
	if w <= 0 || vh <= 0 {
		return false
	}
	if ratio <= 0 {
		lockAspect = false
	}
	*s = Session{
		state:      StateResizing,
		handle:     h,
		startPX:    px,
		startPY:    py,
		start:      rect,
		viewW:      w,
		viewH:      vh,
		lockAspect: lockAspect,
		ratio:      ratio,
		hooks:      s.hooks,
	}
	if s.hooks.OnActive != nil {
		s.hooks.OnActive()
	}
	return true
}

// Move computes the proposed rectangle for the current pointer
// position. Stray moves while Idle are ignored.
func (s *Session) Move(px, py float64) (composite.Rect, bool) {
	dx := px - s.startPX
	dy := py - s.startPY
	switch s.state {
	case StateDragging:
		r := s.start
		if s.canDragX {
			r.X += dx
		}
		if s.canDragY {
			r.Y += dy
		}
		return r, true
	case StateResizing:
		return s.resize(dx, dy), true
	default:
		return composite.Rect{}, false
	}
}

// End discards the session. Safe to call repeatedly; cancellation
// (pointer lost, surface torn down) goes through here too.
func (s *Session) End() {
	if s.state == StateIdle {
		return
	}
	hooks := s.hooks
	*s = Session{hooks: hooks}
	if hooks.OnIdle != nil {
		hooks.OnIdle()
	}
}

func (s *Session) resize(dx, dy float64) composite.Rect {
	h := s.handle
	r := s.start

	if h.west() {
		r.Width -= dx
	}
	if h.east() {
		r.Width += dx
	}
	if h.north() {
		r.Height -= dy
	}
	if h.south() {
		r.Height += dy
	}

	if s.lockAspect {
		switch {
		case h.corner():
			// let the larger intended change drive the ratio
			dw := r.Width - s.start.Width
			dh := r.Height - s.start.Height
			if math.Abs(dw) >= math.Abs(dh) {
				r.Height = r.Width / s.ratio
			} else {
				r.Width = r.Height * s.ratio
			}
		case h == HandleE || h == HandleW:
			r.Height = r.Width / s.ratio
		case h == HandleN || h == HandleS:
			r.Width = r.Height * s.ratio
		}
	}

	// minimum-size floor; when locked, the other dimension follows the
	// ratio so the box shape stays consistent
	if r.Width < MinSize {
		r.Width = MinSize
		if s.lockAspect {
			r.Height = MinSize / s.ratio
		}
	}
	if r.Height < MinSize {
		r.Height = MinSize
		if s.lockAspect {
			r.Width = MinSize * s.ratio
		}
	}

	// re-anchor the moving edges; the opposite edges stay fixed
	if h.west() {
		r.X = s.start.X + s.start.Width - r.Width
	} else {
		r.X = s.start.X
	}
	if h.north() {
		r.Y = s.start.Y + s.start.Height - r.Height
	} else {
		r.Y = s.start.Y
	}
	return r
}
