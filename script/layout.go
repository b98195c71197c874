// Package script runs user layout scripts against a project's layer
// stack: a script receives the canvas and a mutable layers array and
// adjusts positions, sizes and visibility in one batch.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/gallery/composite"
)

// Run executes src with `canvas` and `layers` bound, then reads the
// mutated layers array back. x and y accept the wire form: a keyword
// string or a number. Layers the script did not touch come back
// unchanged; layers it removed or mangled are left unchanged too.
func Run(src []byte, canvas composite.Canvas, layers []composite.Layer) ([]composite.Layer, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if err := s.Add("canvas", map[string]interface{}{
		"width":          canvas.Width,
		"height":         canvas.Height,
		"content_width":  canvas.ContentWidth(),
		"content_height": canvas.ContentHeight(),
	}); err != nil {
		return nil, err
	}

	in := make([]interface{}, len(layers))
	for i := range layers {
		in[i] = layerMap(&layers[i])
	}
	if err := s.Add("layers", in); err != nil {
		return nil, err
	}

	compiled, err := s.Run()
	if err != nil {
		return nil, fmt.Errorf("layout script: %w", err)
	}

	out := make([]composite.Layer, len(layers))
	copy(out, layers)
	raw, ok := compiled.Get("layers").Value().([]interface{})
	if !ok {
		return out, nil
	}
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := m["id"].(string)
		for i := range out {
			if out[i].ID == id {
				applyLayerMap(&out[i], m)
				break
			}
		}
	}
	return out, nil
}

func layerMap(l *composite.Layer) map[string]interface{} {
	return map[string]interface{}{
		"id":      l.ID,
		"name":    l.Name,
		"x":       positionValue(l.X),
		"y":       positionValue(l.Y),
		"width":   l.Width,
		"height":  l.Height,
		"visible": l.Visible,
	}
}

func positionValue(p composite.Position) interface{} {
	if p.Edge != composite.EdgeNone {
		return p.Edge.String()
	}
	return p.Offset
}

func applyLayerMap(l *composite.Layer, m map[string]interface{}) {
	if v, ok := m["x"]; ok {
		l.X = toPosition(v, l.X)
	}
	if v, ok := m["y"]; ok {
		l.Y = toPosition(v, l.Y)
	}
	if w, ok := toFloat(m["width"]); ok && w >= 1 {
		l.Width = w
	}
	if h, ok := toFloat(m["height"]); ok && h >= 1 {
		l.Height = h
	}
	if v, ok := m["visible"].(bool); ok {
		l.Visible = v
	}
}

func toPosition(v interface{}, prev composite.Position) composite.Position {
	switch t := v.(type) {
	case string:
		return composite.ParsePosition(t)
	case float64:
		return composite.At(t)
	case int64:
		return composite.At(float64(t))
	case int:
		return composite.At(float64(t))
	default:
		return prev
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	}
	return 0, false
}
