package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/gallery/common"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	minZoom = 0.1
	maxZoom = 16.0
)

// Viewer is the full-screen gallery: one image at a time with pan,
// cursor-anchored zoom and an optional slideshow timer.
type Viewer struct {
	browser *Browser

	img     *ebiten.Image
	imgErr  error
	loaded  string
	screenW int
	screenH int

	zoom       float64
	targetZoom float64
	offsetX    float64
	offsetY    float64
	fitted     bool

	dragActive bool
	lastMX     int
	lastMY     int

	slideshow    time.Duration
	slideshowOn  bool
	lastAdvance  time.Time
	showHelp     bool
}

func NewViewer(browser *Browser, slideshow time.Duration) *Viewer {
	return &Viewer{
		browser:    browser,
		zoom:       1,
		targetZoom: 1,
		slideshow:  slideshow,
		showHelp:   true,
	}
}

func (v *Viewer) Update() error {
	v.ensureImage()

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		v.advance(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.advance(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.slideshowOn = !v.slideshowOn
		v.lastAdvance = time.Now()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.fitted = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.showHelp = !v.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := v.browser.Rescan(); err != nil {
			log.Printf("rescan: %v", err)
		}
	}

	if v.slideshowOn && v.slideshow > 0 && time.Since(v.lastAdvance) >= v.slideshow {
		v.advance(1)
	}

	mx, my := ebiten.CursorPosition()

	// wheel zoom, keeping the point under the cursor fixed
	if _, wy := ebiten.Wheel(); wy != 0 {
		factor := 1.1
		if wy < 0 {
			factor = 1.0 / 1.1
		}
		v.targetZoom = common.Clamp(v.targetZoom*factor, minZoom, maxZoom)
	}
	if v.targetZoom != v.zoom {
		oldZoom := v.zoom
		v.zoom = common.Lerp(v.zoom, v.targetZoom, 0.35)
		// recompute offset so the cursor-anchored point stays put
		localX := (float64(mx) - v.offsetX) / oldZoom
		localY := (float64(my) - v.offsetY) / oldZoom
		v.offsetX = float64(mx) - localX*v.zoom
		v.offsetY = float64(my) - localY*v.zoom
	}

	// left-drag pan
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed {
		if !v.dragActive {
			v.dragActive = true
			v.lastMX = mx
			v.lastMY = my
		}
		v.offsetX += float64(mx - v.lastMX)
		v.offsetY += float64(my - v.lastMY)
		v.lastMX = mx
		v.lastMY = my
	} else {
		v.dragActive = false
	}

	return nil
}

// advance moves through the gallery and resets the view for the new
// image.
func (v *Viewer) advance(d int) {
	if d > 0 {
		v.browser.Next()
	} else {
		v.browser.Prev()
	}
	v.fitted = false
	v.lastAdvance = time.Now()
}

func (v *Viewer) ensureImage() {
	if v.loaded == v.browser.Name() && (v.img != nil || v.imgErr != nil) {
		return
	}
	v.loaded = v.browser.Name()
	v.img, v.imgErr = v.browser.Current()
	if v.imgErr != nil {
		log.Printf("load %s: %v", v.loaded, v.imgErr)
	}
}

// fit sizes the image to the screen and centers it.
func (v *Viewer) fit() {
	if v.img == nil || v.screenW == 0 || v.screenH == 0 {
		return
	}
	iw := float64(v.img.Bounds().Dx())
	ih := float64(v.img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	z := float64(v.screenW) / iw
	if alt := float64(v.screenH) / ih; alt < z {
		z = alt
	}
	v.zoom = common.Clamp(z, minZoom, maxZoom)
	v.targetZoom = v.zoom
	v.offsetX = (float64(v.screenW) - iw*v.zoom) / 2
	v.offsetY = (float64(v.screenH) - ih*v.zoom) / 2
	v.fitted = true
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.img != nil {
		if !v.fitted {
			v.fit()
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.zoom, v.zoom)
		op.GeoM.Translate(v.offsetX, v.offsetY)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(v.img, op)
	}

	if v.showHelp {
		status := fmt.Sprintf("%s (%d images)  zoom %.0f%%", v.browser.Name(), v.browser.Len(), v.zoom*100)
		if v.slideshowOn {
			status += "  [slideshow]"
		}
		ebitenutil.DebugPrint(screen, status+"\narrows: next/prev  space: slideshow  wheel: zoom  drag: pan  r: reset  f: fullscreen  h: hide")
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.screenW || outsideHeight != v.screenH {
		v.screenW = outsideWidth
		v.screenH = outsideHeight
		v.fitted = false
	}
	return outsideWidth, outsideHeight
}
