package project

import (
	"fmt"
	"math"

	"github.com/milk9111/gallery/composite"
)

// Store owns the canonical layer list and selection for one editing
// session. Overlays and panels read from it and push partial updates
// back through Apply; they never mutate layer fields directly.
type Store struct {
	Canvas composite.Canvas
	Layers []composite.Layer

	selected int // index into Layers, -1 for none
	nextID   int
	dirty    bool
}

func NewStore(canvas composite.Canvas) *Store {
	return &Store{Canvas: canvas, selected: -1, nextID: 1}
}

// FromProject builds a store over a loaded project's state.
func FromProject(p *Project) *Store {
	s := &Store{Canvas: p.Canvas, Layers: p.Layers, selected: -1, nextID: len(p.Layers) + 1}
	return s
}

// Snapshot copies the current state into a Project for saving or for
// an undo entry.
func (s *Store) Snapshot(name string) *Project {
	layers := make([]composite.Layer, len(s.Layers))
	copy(layers, s.Layers)
	return &Project{Name: name, Canvas: s.Canvas, Layers: layers}
}

// Restore replaces the store's state from a snapshot, keeping the
// selection when the selected layer still exists.
func (s *Store) Restore(p *Project) {
	var keep string
	if l, ok := s.Selected(); ok {
		keep = l.ID
	}
	s.Canvas = p.Canvas
	s.Layers = make([]composite.Layer, len(p.Layers))
	copy(s.Layers, p.Layers)
	s.selected = -1
	if keep != "" {
		s.Select(keep)
	}
}

func (s *Store) Dirty() bool        { return s.dirty }
func (s *Store) ClearDirty()        { s.dirty = false }
func (s *Store) SelectedIndex() int { return s.selected }

// Selected returns the selected layer, if any.
func (s *Store) Selected() (*composite.Layer, bool) {
	if s.selected < 0 || s.selected >= len(s.Layers) {
		return nil, false
	}
	return &s.Layers[s.selected], true
}

// Select picks a layer by id. Unknown ids clear the selection.
func (s *Store) Select(id string) bool {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			s.selected = i
			return true
		}
	}
	s.selected = -1
	return false
}

func (s *Store) SelectIndex(i int) {
	if i < 0 || i >= len(s.Layers) {
		s.selected = -1
		return
	}
	s.selected = i
}

func (s *Store) Deselect() { s.selected = -1 }

// Find returns the layer with the given id.
func (s *Store) Find(id string) (*composite.Layer, bool) {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			return &s.Layers[i], true
		}
	}
	return nil, false
}

// Apply merges a partial update into the layer. Recovered dimensions
// are rounded and floored at one pixel. An update that leaves every
// field value-equal is a no-op and does not dirty the store.
func (s *Store) Apply(id string, u composite.Update) bool {
	l, ok := s.Find(id)
	if !ok || u.IsZero() {
		return false
	}
	next := *l
	if u.X != nil {
		next.X = *u.X
	}
	if u.Y != nil {
		next.Y = *u.Y
	}
	if u.Size != nil {
		next.Width = math.Max(1, math.Round(u.Size.Width))
		next.Height = math.Max(1, math.Round(u.Size.Height))
	}
	if next == *l {
		return false
	}
	*l = next
	s.dirty = true
	return true
}

// Add appends a layer on top of the stack and selects it. A missing
// id gets a generated one.
func (s *Store) Add(l composite.Layer) *composite.Layer {
	if l.ID == "" {
		l.ID = fmt.Sprintf("layer-%d", s.nextID)
	}
	s.nextID++
	s.Layers = append(s.Layers, l)
	s.selected = len(s.Layers) - 1
	s.dirty = true
	return &s.Layers[s.selected]
}

// Remove drops a layer by id.
func (s *Store) Remove(id string) bool {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			s.Layers = append(s.Layers[:i], s.Layers[i+1:]...)
			if s.selected == i {
				s.selected = -1
			} else if s.selected > i {
				s.selected--
			}
			s.dirty = true
			return true
		}
	}
	return false
}

// MoveLayer shifts a layer up (+1, toward the top of the stack) or
// down (-1) in draw order.
func (s *Store) MoveLayer(id string, delta int) bool {
	for i := range s.Layers {
		if s.Layers[i].ID != id {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(s.Layers) {
			return false
		}
		s.Layers[i], s.Layers[j] = s.Layers[j], s.Layers[i]
		if s.selected == i {
			s.selected = j
		} else if s.selected == j {
			s.selected = i
		}
		s.dirty = true
		return true
	}
	return false
}

// ToggleVisible flips a layer's visibility.
func (s *Store) ToggleVisible(id string) bool {
	l, ok := s.Find(id)
	if !ok {
		return false
	}
	l.Visible = !l.Visible
	s.dirty = true
	return true
}

// VisibleLayers returns the layers that render, bottom to top.
func (s *Store) VisibleLayers() []composite.Layer {
	out := make([]composite.Layer, 0, len(s.Layers))
	for _, l := range s.Layers {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}
