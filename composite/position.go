package composite

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Edge names the keyword placements a Position can take on either axis.
// EdgeNone means the Position is a numeric pixel offset instead.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeCenter
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeCenter:
		return "center"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return ""
	}
}

// Anchor says which canvas edge a numeric offset is measured from.
type Anchor int

const (
	AnchorNear Anchor = iota // left / top
	AnchorFar                // right / bottom
)

// Position describes where a layer sits on one axis. It is either an
// edge keyword (Edge != EdgeNone) or a signed pixel offset. A
// non-negative offset measures from the content area's near edge; a
// negative offset is the gap between the layer's far edge and the
// canvas's far edge. An exact far-edge alignment is always expressed
// as the keyword, never as a far-anchored zero.
type Position struct {
	Edge   Edge
	Offset float64
}

// At returns a numeric offset position. The sign picks the anchor.
func At(px float64) Position { return Position{Offset: px} }

// Anchored reports which edge the position is measured from.
func (p Position) Anchored() Anchor {
	switch {
	case p.Edge == EdgeRight || p.Edge == EdgeBottom:
		return AnchorFar
	case p.Edge == EdgeNone && p.Offset < 0:
		return AnchorFar
	default:
		return AnchorNear
	}
}

// Draggable reports whether a layer with this position can be dragged
// on the axis. Near-edge and center keywords pin the layer in place.
func (p Position) Draggable() bool {
	return p.Edge == EdgeNone || p.Edge == EdgeRight || p.Edge == EdgeBottom
}

func parseEdge(s string) (Edge, bool) {
	switch s {
	case "left":
		return EdgeLeft, true
	case "center":
		return EdgeCenter, true
	case "right":
		return EdgeRight, true
	case "top":
		return EdgeTop, true
	case "bottom":
		return EdgeBottom, true
	}
	return EdgeNone, false
}

// ParsePosition converts the wire form (keyword string or number) into
// a Position. Malformed input falls back to the near-edge default and
// never errors.
func ParsePosition(s string) Position {
	if e, ok := parseEdge(s); ok {
		return Position{Edge: e}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Position{Offset: v}
	}
	return Position{Edge: EdgeLeft}
}

// UnmarshalYAML accepts either a keyword scalar or a number.
func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*p = Position{Edge: EdgeLeft}
		return nil
	}
	var v float64
	if err := value.Decode(&v); err == nil {
		*p = Position{Offset: v}
		return nil
	}
	*p = ParsePosition(value.Value)
	return nil
}

func (p Position) MarshalYAML() (interface{}, error) {
	if p.Edge != EdgeNone {
		return p.Edge.String(), nil
	}
	return p.Offset, nil
}

// UnmarshalJSON mirrors the YAML form for JSON project files.
func (p *Position) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*p = Position{Offset: v}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = ParsePosition(s)
		return nil
	}
	*p = Position{Edge: EdgeLeft}
	return nil
}

func (p Position) MarshalJSON() ([]byte, error) {
	if p.Edge != EdgeNone {
		return json.Marshal(p.Edge.String())
	}
	return json.Marshal(p.Offset)
}

func (p Position) String() string {
	if p.Edge != EdgeNone {
		return p.Edge.String()
	}
	return fmt.Sprintf("%g", p.Offset)
}
