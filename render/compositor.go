package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/milk9111/gallery/composite"
)

// Source resolves a layer's source reference to a decoded image.
type Source interface {
	Image(ref string) (image.Image, bool)
}

// ImageMap is a Source backed by a plain map.
type ImageMap map[string]image.Image

func (m ImageMap) Image(ref string) (image.Image, bool) {
	img, ok := m[ref]
	return img, ok
}

// Options controls the composite output.
type Options struct {
	// Background fills the canvas before layers are drawn. Nil leaves
	// it transparent.
	Background color.Color
	// Scaler resizes layer images; defaults to ApproxBiLinear.
	Scaler xdraw.Scaler
}

// Composite renders the canvas and its visible layers into a single
// image. Layers draw bottom to top in slice order. A layer whose
// source image is missing renders as a flat placeholder so the layout
// stays visible.
func Composite(c *composite.Canvas, layers []composite.Layer, src Source, opts Options) (*image.NRGBA, error) {
	w := int(math.Round(c.Width))
	h := int(math.Round(c.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("composite: canvas has no area (%dx%d)", w, h)
	}
	scaler := opts.Scaler
	if scaler == nil {
		scaler = xdraw.ApproxBiLinear
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(out, out.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	for i := range layers {
		l := &layers[i]
		if !l.Visible {
			continue
		}
		lw := int(math.Round(l.Width))
		lh := int(math.Round(l.Height))
		if lw <= 0 || lh <= 0 {
			continue
		}

		var img image.Image
		if src != nil {
			img, _ = src.Image(l.Source)
		}
		if img == nil {
			img = image.NewUniform(color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff})
		}

		scaled := image.NewNRGBA(image.Rect(0, 0, lw, lh))
		scaler.Scale(scaled, scaled.Bounds(), img, bounded(img, lw, lh), xdraw.Over, nil)

		padded := pad(scaled, l.PaddingLeft, l.PaddingTop, l.PaddingRight, l.PaddingBottom)
		rotated := rotateQuarter(padded, l.NormalRotation())

		p := composite.Resolve(l, c)
		at := image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
		dr := rotated.Bounds().Add(at)
		draw.Draw(out, dr, rotated, rotated.Bounds().Min, draw.Over)
	}
	return out, nil
}

// bounded returns the source rectangle for scaling; uniform images
// have infinite bounds and need a concrete window.
func bounded(img image.Image, w, h int) image.Rectangle {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > 1<<20 || b.Dy() > 1<<20 {
		return image.Rect(0, 0, w, h)
	}
	return b
}

// pad wraps img in a transparent border.
func pad(img *image.NRGBA, left, top, right, bottom float64) *image.NRGBA {
	li, ti := int(math.Round(left)), int(math.Round(top))
	ri, bi := int(math.Round(right)), int(math.Round(bottom))
	if li == 0 && ti == 0 && ri == 0 && bi == 0 {
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()+li+ri, b.Dy()+ti+bi))
	draw.Draw(out, image.Rect(li, ti, li+b.Dx(), ti+b.Dy()), img, b.Min, draw.Src)
	return out
}

// rotateQuarter rotates clockwise by 0, 90, 180 or 270 degrees.
func rotateQuarter(img *image.NRGBA, degrees int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	switch degrees {
	case 90:
		out := image.NewNRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetNRGBA(h-1-y, x, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	case 180:
		out := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetNRGBA(w-1-x, h-1-y, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	case 270:
		out := image.NewNRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetNRGBA(y, w-1-x, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
			}
		}
		return out
	default:
		return img
	}
}
