package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/gallery/composite"
	"github.com/milk9111/gallery/gesture"
	"github.com/milk9111/gallery/project"
)

const (
	handleSize   = 8.0
	handleHitPad = 5.0
)

var handleCursors = map[gesture.Handle]ebiten.CursorShapeType{
	gesture.HandleNW: ebiten.CursorShapeNWSEResize,
	gesture.HandleSE: ebiten.CursorShapeNWSEResize,
	gesture.HandleNE: ebiten.CursorShapeNESWResize,
	gesture.HandleSW: ebiten.CursorShapeNESWResize,
	gesture.HandleE:  ebiten.CursorShapeEWResize,
	gesture.HandleW:  ebiten.CursorShapeEWResize,
	gesture.HandleN:  ebiten.CursorShapeNSResize,
	gesture.HandleS:  ebiten.CursorShapeNSResize,
}

// Overlay renders the selection box around the selected layer and
// drives the geometry loop: resolve the layer to a rectangle, track
// the gesture, inverse-map the proposal back into the model.
type Overlay struct {
	e       *Editor
	session *gesture.Session

	// snapshot taken when a gesture begins; pushed to the undo stack
	// on release when the gesture changed anything
	pending *project.Project
	changed bool
}

func NewOverlay(e *Editor) *Overlay {
	o := &Overlay{e: e}
	o.session = gesture.NewSession(gesture.Hooks{
		OnIdle: o.finishGesture,
	})
	return o
}

func (o *Overlay) finishGesture() {
	if o.pending != nil && o.changed {
		o.e.undoStack = append(o.e.undoStack, o.pending)
		if len(o.e.undoStack) > o.e.maxUndo {
			o.e.undoStack = o.e.undoStack[1:]
		}
	}
	o.pending = nil
	o.changed = false
}

func (o *Overlay) metrics() gesture.Metrics {
	c := &o.e.store.Canvas
	return gesture.FixedMetrics{W: c.Width * o.e.zoom, H: c.Height * o.e.zoom}
}

// viewRect returns the placement scaled into display space: canvas
// coordinates times the current zoom.
func (o *Overlay) viewRect(p composite.Placement) composite.Rect {
	z := o.e.zoom
	return composite.Rect{X: p.X * z, Y: p.Y * z, Width: p.Width * z, Height: p.Height * z}
}

func (o *Overlay) Update(mx, my int) {
	e := o.e
	px, py := e.screenToView(mx, my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if o.session.State() != gesture.StateIdle {
		if !pressed {
			o.session.End()
			return
		}
		rect, ok := o.session.Move(px, py)
		if !ok {
			return
		}
		l, sel := e.store.Selected()
		if !sel {
			// layer disappeared mid-gesture (undo, reload)
			o.session.End()
			return
		}
		vw, vh := o.session.Viewport()
		placement := composite.Resolve(l, &e.store.Canvas)
		u, ok := composite.InverseMap(rect, vw, vh, l, &e.store.Canvas, placement)
		if !ok {
			return
		}
		if e.store.Apply(l.ID, u) {
			o.changed = true
			e.previewStale = true
		}
		return
	}

	// idle: hover feedback, then maybe a new gesture or selection
	cursor := ebiten.CursorShapeDefault
	if l, ok := e.store.Selected(); ok && mx >= leftPanelW {
		p := composite.Resolve(l, &e.store.Canvas)
		r := o.viewRect(p)
		if h := handleAt(r, px, py); h != gesture.HandleNone {
			cursor = handleCursors[h]
		} else if contains(r, px, py) && (p.CanDragX || p.CanDragY) {
			cursor = ebiten.CursorShapePointer
		}
	}
	ebiten.SetCursorShape(cursor)

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || mx < leftPanelW {
		return
	}

	if l, ok := e.store.Selected(); ok {
		p := composite.Resolve(l, &e.store.Canvas)
		r := o.viewRect(p)
		if h := handleAt(r, px, py); h != gesture.HandleNone {
			lock := !ebiten.IsKeyPressed(ebiten.KeyShift)
			if o.session.BeginResize(h, px, py, r, lock, l.AspectRatio(), o.metrics()) {
				o.pending = e.store.Snapshot("")
			}
			return
		}
		if contains(r, px, py) {
			if o.session.BeginDrag(px, py, r, p.CanDragX, p.CanDragY, o.metrics()) {
				o.pending = e.store.Snapshot("")
			}
			return
		}
	}

	// plain click: select the topmost layer under the cursor
	cx := px / e.zoom
	cy := py / e.zoom
	for i := len(e.store.Layers) - 1; i >= 0; i-- {
		l := &e.store.Layers[i]
		if !l.Visible {
			continue
		}
		p := composite.Resolve(l, &e.store.Canvas)
		if cx >= p.X && cx < p.X+p.Width && cy >= p.Y && cy < p.Y+p.Height {
			e.store.SelectIndex(i)
			e.syncLayerPanel()
			return
		}
	}
	e.store.Deselect()
	e.syncLayerPanel()
}

func contains(r composite.Rect, x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// handleAt hit-tests the eight grips around the rectangle.
func handleAt(r composite.Rect, x, y float64) gesture.Handle {
	type grip struct {
		h      gesture.Handle
		gx, gy float64
	}
	grips := []grip{
		{gesture.HandleNW, r.X, r.Y},
		{gesture.HandleNE, r.X + r.Width, r.Y},
		{gesture.HandleSE, r.X + r.Width, r.Y + r.Height},
		{gesture.HandleSW, r.X, r.Y + r.Height},
		{gesture.HandleN, r.X + r.Width/2, r.Y},
		{gesture.HandleE, r.X + r.Width, r.Y + r.Height/2},
		{gesture.HandleS, r.X + r.Width/2, r.Y + r.Height},
		{gesture.HandleW, r.X, r.Y + r.Height/2},
	}
	hit := handleSize/2 + handleHitPad
	for _, g := range grips {
		if x >= g.gx-hit && x <= g.gx+hit && y >= g.gy-hit && y <= g.gy+hit {
			return g.h
		}
	}
	return gesture.HandleNone
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	e := o.e
	l, ok := e.store.Selected()
	if !ok {
		return
	}
	p := composite.Resolve(l, &e.store.Canvas)
	x, y := e.canvasToScreen(p.X, p.Y)
	w := p.Width * e.zoom
	h := p.Height * e.zoom

	border := color.NRGBA{R: 0x4c, G: 0x9e, B: 0xff, A: 0xff}
	if !p.CanDragX && !p.CanDragY {
		border = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	}
	e.fillRect(screen, x, y, w, 1, border)
	e.fillRect(screen, x, y+h-1, w, 1, border)
	e.fillRect(screen, x, y, 1, h, border)
	e.fillRect(screen, x+w-1, y, 1, h, border)

	fill := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for _, g := range [][2]float64{
		{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h},
		{x + w/2, y}, {x + w, y + h/2}, {x + w/2, y + h}, {x, y + h/2},
	} {
		e.fillRect(screen, g[0]-handleSize/2-1, g[1]-handleSize/2-1, handleSize+2, handleSize+2, border)
		e.fillRect(screen, g[0]-handleSize/2, g[1]-handleSize/2, handleSize, handleSize, fill)
	}
}
