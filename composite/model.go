package composite

// Canvas is the full composite output area, including its padding. The
// content area (canvas minus padding) is the band keyword positions
// anchor against.
type Canvas struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`

	PaddingLeft   float64 `yaml:"padding_left,omitempty" json:"padding_left,omitempty"`
	PaddingRight  float64 `yaml:"padding_right,omitempty" json:"padding_right,omitempty"`
	PaddingTop    float64 `yaml:"padding_top,omitempty" json:"padding_top,omitempty"`
	PaddingBottom float64 `yaml:"padding_bottom,omitempty" json:"padding_bottom,omitempty"`
}

// ContentWidth returns the width of the content area, never negative.
func (c *Canvas) ContentWidth() float64 {
	w := c.Width - c.PaddingLeft - c.PaddingRight
	if w < 0 {
		return 0
	}
	return w
}

func (c *Canvas) ContentHeight() float64 {
	h := c.Height - c.PaddingTop - c.PaddingBottom
	if h < 0 {
		return 0
	}
	return h
}

// Layer is one compositable image element. Width and Height are the
// layer's own image dimensions before its padding and rotation are
// applied. Its padding wraps the image, and rotation then rotates the
// already-padded box.
type Layer struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Source  string `yaml:"source,omitempty" json:"source,omitempty"`
	Visible bool   `yaml:"visible" json:"visible"`

	X Position `yaml:"x" json:"x"`
	Y Position `yaml:"y" json:"y"`

	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`

	PaddingLeft   float64 `yaml:"padding_left,omitempty" json:"padding_left,omitempty"`
	PaddingRight  float64 `yaml:"padding_right,omitempty" json:"padding_right,omitempty"`
	PaddingTop    float64 `yaml:"padding_top,omitempty" json:"padding_top,omitempty"`
	PaddingBottom float64 `yaml:"padding_bottom,omitempty" json:"padding_bottom,omitempty"`

	// Rotation in degrees, one of 0, 90, 180, 270. Anything else is
	// treated as 0.
	Rotation int `yaml:"rotation,omitempty" json:"rotation,omitempty"`
}

// NormalRotation returns the layer's rotation snapped to a quarter
// turn. Out-of-range values mean no rotation.
func (l *Layer) NormalRotation() int {
	switch l.Rotation {
	case 90, 180, 270:
		return l.Rotation
	default:
		return 0
	}
}

// RotatedPadding returns the layer's own padding as it appears in the
// rotated frame. A 90 degree (clockwise) turn puts the original left
// padding at the top, the original top at the right, and so on.
func (l *Layer) RotatedPadding() (left, top, right, bottom float64) {
	switch l.NormalRotation() {
	case 90:
		return l.PaddingBottom, l.PaddingLeft, l.PaddingTop, l.PaddingRight
	case 180:
		return l.PaddingRight, l.PaddingBottom, l.PaddingLeft, l.PaddingTop
	case 270:
		return l.PaddingTop, l.PaddingRight, l.PaddingBottom, l.PaddingLeft
	default:
		return l.PaddingLeft, l.PaddingTop, l.PaddingRight, l.PaddingBottom
	}
}

// AspectRatio is the width:height ratio of the image as it presents on
// the canvas, with the axes swapped for quarter-turn rotations. Zero
// when the image has no measurable area.
func (l *Layer) AspectRatio() float64 {
	w, h := l.Width, l.Height
	if r := l.NormalRotation(); r == 90 || r == 270 {
		w, h = h, w
	}
	if w <= 0 || h <= 0 {
		return 0
	}
	return w / h
}

// TotalWidth is the width the layer occupies on the canvas: image plus
// own padding, with the axes swapped for quarter-turn rotations.
func (l *Layer) TotalWidth() float64 {
	if r := l.NormalRotation(); r == 90 || r == 270 {
		return l.Height + l.PaddingTop + l.PaddingBottom
	}
	return l.Width + l.PaddingLeft + l.PaddingRight
}

func (l *Layer) TotalHeight() float64 {
	if r := l.NormalRotation(); r == 90 || r == 270 {
		return l.Width + l.PaddingLeft + l.PaddingRight
	}
	return l.Height + l.PaddingTop + l.PaddingBottom
}
