package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/gallery/composite"
)

// ServiceParams formats the final resolved layer parameters as the
// path fragment the external imaging service consumes: the canvas
// geometry followed by one watermark() filter per visible layer, in
// draw order. Position arguments use the service's grammar: an
// alignment keyword, or a signed pixel offset.
func ServiceParams(c *composite.Canvas, layers []composite.Layer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d", int(math.Round(c.Width)), int(math.Round(c.Height)))

	var filters []string
	if c.PaddingLeft != 0 || c.PaddingTop != 0 || c.PaddingRight != 0 || c.PaddingBottom != 0 {
		filters = append(filters, fmt.Sprintf("padding(%d,%d,%d,%d)",
			int(math.Round(c.PaddingLeft)), int(math.Round(c.PaddingTop)),
			int(math.Round(c.PaddingRight)), int(math.Round(c.PaddingBottom))))
	}
	for i := range layers {
		l := &layers[i]
		if !l.Visible {
			continue
		}
		args := []string{
			l.Source,
			positionArg(l.X),
			positionArg(l.Y),
			fmt.Sprintf("%dx%d", int(math.Round(l.Width)), int(math.Round(l.Height))),
		}
		if rot := l.NormalRotation(); rot != 0 {
			args = append(args, fmt.Sprintf("rotate(%d)", rot))
		}
		if l.PaddingLeft != 0 || l.PaddingTop != 0 || l.PaddingRight != 0 || l.PaddingBottom != 0 {
			args = append(args, fmt.Sprintf("pad(%d,%d,%d,%d)",
				int(math.Round(l.PaddingLeft)), int(math.Round(l.PaddingTop)),
				int(math.Round(l.PaddingRight)), int(math.Round(l.PaddingBottom))))
		}
		filters = append(filters, fmt.Sprintf("watermark(%s)", strings.Join(args, ",")))
	}

	if len(filters) > 0 {
		b.WriteString("/filters:")
		b.WriteString(strings.Join(filters, ":"))
	}
	return b.String()
}

func positionArg(p composite.Position) string {
	if p.Edge != composite.EdgeNone {
		return p.Edge.String()
	}
	return fmt.Sprintf("%d", int(math.Round(p.Offset)))
}
