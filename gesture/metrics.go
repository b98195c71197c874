package gesture

// Metrics reports the measured pixel box of the surface a layer
// overlay is rendered into. It stands in for a live bounding-rect read
// so the geometry math can run without a real rendering surface.
type Metrics interface {
	ViewportSize() (w, h float64)
}

// FixedMetrics is a Metrics with a constant size, used by the editor's
// offscreen canvas and by tests.
type FixedMetrics struct {
	W, H float64
}

func (m FixedMetrics) ViewportSize() (float64, float64) { return m.W, m.H }
