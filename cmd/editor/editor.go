package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/gallery/composite"
	"github.com/milk9111/gallery/project"
	"github.com/milk9111/gallery/render"
	"github.com/milk9111/gallery/script"
)

const (
	leftPanelW = 220

	baseWidthEditor  = 1280 + leftPanelW
	baseHeightEditor = 720
)

// Config carries the editor's startup options.
type Config struct {
	ProjectPath  string
	AssetsDir    string
	LayoutScript string
	CanvasW      float64
	CanvasH      float64
	ClipboardOK  bool
}

// Editor is the compositing editor: a canvas preview with a drag and
// resize overlay on the selected layer, and a layer panel on the left.
type Editor struct {
	cfg   Config
	store *project.Store
	path  string

	// decoded source images, keyed by layer source reference
	images    render.ImageMap
	assets    []string // asset file names available for new layers
	nextAsset int

	// canvas view transform
	zoom      float64
	offsetX   float64
	offsetY   float64
	panActive bool
	lastMX    int
	lastMY    int

	overlay *Overlay

	// preview cache, rebuilt when the model changes
	preview      *ebiten.Image
	previewStale bool

	ui         *ebitenui.UI
	layerPanel *LayerPanel

	// undo stack of full project snapshots
	undoStack []*project.Project
	maxUndo   int

	watcher       *project.Watcher
	reloadPending bool

	// small images for the overlay chrome
	whiteImg *ebiten.Image

	statusMsg string
}

func NewEditor(cfg Config) (*Editor, error) {
	e := &Editor{
		cfg:          cfg,
		images:       render.ImageMap{},
		zoom:         1,
		previewStale: true,
		maxUndo:      64,
		whiteImg:     ebiten.NewImage(1, 1),
	}
	e.whiteImg.Fill(color.White)

	if cfg.ProjectPath != "" {
		p, err := project.Load(cfg.ProjectPath)
		if err != nil {
			return nil, err
		}
		e.store = project.FromProject(p)
		e.path = cfg.ProjectPath
	} else {
		e.store = project.NewStore(composite.Canvas{Width: cfg.CanvasW, Height: cfg.CanvasH})
	}

	if err := e.scanAssets(); err != nil {
		log.Printf("assets: %v", err)
	}
	for i := range e.store.Layers {
		e.loadSource(e.store.Layers[i].Source)
	}

	e.overlay = NewOverlay(e)
	e.buildUI()

	if e.path != "" {
		w, err := project.NewWatcher(filepath.Dir(e.path))
		if err != nil {
			log.Printf("watch %s: %v", e.path, err)
		} else {
			e.watcher = w
		}
	}
	return e, nil
}

func (e *Editor) Close() {
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
}

func (e *Editor) scanAssets() error {
	entries, err := os.ReadDir(e.cfg.AssetsDir)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".png", ".jpg", ".jpeg":
			e.assets = append(e.assets, ent.Name())
		}
	}
	sort.Strings(e.assets)
	return nil
}

// loadSource decodes a layer source into the image map. Missing files
// just log; the compositor draws a placeholder for them.
func (e *Editor) loadSource(ref string) {
	if ref == "" {
		return
	}
	if _, ok := e.images[ref]; ok {
		return
	}
	f, err := os.Open(filepath.Join(e.cfg.AssetsDir, ref))
	if err != nil {
		log.Printf("open source %s: %v", ref, err)
		return
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("decode source %s: %v", ref, err)
		return
	}
	e.images[ref] = img
}

func (e *Editor) pushUndo() {
	e.undoStack = append(e.undoStack, e.store.Snapshot(""))
	if len(e.undoStack) > e.maxUndo {
		e.undoStack = e.undoStack[1:]
	}
}

func (e *Editor) undo() {
	if len(e.undoStack) == 0 {
		return
	}
	snap := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.store.Restore(snap)
	e.markStale()
}

func (e *Editor) markStale() {
	e.previewStale = true
	e.syncLayerPanel()
}

// projectName derives the saved project name from its path; a project
// that has never been saved has no name yet.
func projectName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func (e *Editor) save() {
	path, err := e.store.Snapshot(projectName(e.path)).Save(e.path)
	if err != nil {
		log.Printf("save: %v", err)
		e.statusMsg = fmt.Sprintf("save failed: %v", err)
		return
	}
	e.path = path
	e.store.ClearDirty()
	e.statusMsg = "saved " + path
}

func (e *Editor) addLayer() {
	if len(e.assets) == 0 {
		e.statusMsg = "no assets to add"
		return
	}
	ref := e.assets[e.nextAsset%len(e.assets)]
	e.nextAsset++
	e.loadSource(ref)

	w, h := 200.0, 200.0
	if img, ok := e.images[ref]; ok {
		w = float64(img.Bounds().Dx())
		h = float64(img.Bounds().Dy())
	}
	e.pushUndo()
	e.store.Add(composite.Layer{
		Name:    strings.TrimSuffix(ref, filepath.Ext(ref)),
		Source:  ref,
		Visible: true,
		X:       composite.Position{Edge: composite.EdgeCenter},
		Y:       composite.Position{Edge: composite.EdgeCenter},
		Width:   w,
		Height:  h,
	})
	e.markStale()
}

func (e *Editor) copyServiceParams() {
	params := render.ServiceParams(&e.store.Canvas, e.store.Layers)
	if !e.cfg.ClipboardOK {
		log.Printf("service params: %s", params)
		e.statusMsg = "clipboard unavailable, params logged"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(params))
	e.statusMsg = "copied " + params
}

func (e *Editor) runLayoutScript() {
	if e.cfg.LayoutScript == "" {
		e.statusMsg = "no layout script configured (-script)"
		return
	}
	src, err := os.ReadFile(e.cfg.LayoutScript)
	if err != nil {
		log.Printf("layout script: %v", err)
		e.statusMsg = fmt.Sprintf("layout script: %v", err)
		return
	}
	out, err := script.Run(src, e.store.Canvas, e.store.Layers)
	if err != nil {
		log.Printf("layout script: %v", err)
		e.statusMsg = fmt.Sprintf("layout script: %v", err)
		return
	}
	e.pushUndo()
	e.store.Layers = out
	e.markStale()
	e.statusMsg = "layout script applied"
}

// checkWatcher drains external-change events for the open project. A
// clean store reloads in place; unsaved work just flags the change.
func (e *Editor) checkWatcher() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-e.watcher.Events:
			if !ok {
				e.watcher = nil
				return
			}
			if e.path == "" || filepath.Base(name) != filepath.Base(e.path) {
				continue
			}
			if e.store.Dirty() {
				e.reloadPending = true
				e.statusMsg = "project changed on disk (F5 to reload)"
				continue
			}
			e.reloadFromDisk()
		case err, ok := <-e.watcher.Errors:
			if ok && err != nil {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (e *Editor) reloadFromDisk() {
	p, err := project.Load(e.path)
	if err != nil {
		log.Printf("reload: %v", err)
		e.statusMsg = fmt.Sprintf("reload failed: %v", err)
		return
	}
	e.store.Restore(p)
	e.store.ClearDirty()
	for i := range e.store.Layers {
		e.loadSource(e.store.Layers[i].Source)
	}
	e.reloadPending = false
	e.markStale()
	e.statusMsg = "reloaded from disk"
}

func (e *Editor) handleShortcuts() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		e.undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		e.reloadFromDisk()
	case inpututil.IsKeyJustPressed(ebiten.KeyC) && !ctrl:
		e.copyServiceParams()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		e.runLayoutScript()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		e.addLayer()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		if l, ok := e.store.Selected(); ok {
			e.pushUndo()
			e.store.ToggleVisible(l.ID)
			e.markStale()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if l, ok := e.store.Selected(); ok {
			e.pushUndo()
			e.store.Remove(l.ID)
			e.markStale()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		if l, ok := e.store.Selected(); ok {
			e.pushUndo()
			e.store.MoveLayer(l.ID, 1)
			e.markStale()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		if l, ok := e.store.Selected(); ok {
			e.pushUndo()
			e.store.MoveLayer(l.ID, -1)
			e.markStale()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		e.cycleSelection()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.store.Deselect()
		e.syncLayerPanel()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		e.zoom = 1
		e.offsetX = 0
		e.offsetY = 0
	}
}

func (e *Editor) cycleSelection() {
	if len(e.store.Layers) == 0 {
		return
	}
	next := (e.store.SelectedIndex() + 1) % len(e.store.Layers)
	e.store.SelectIndex(next)
	e.syncLayerPanel()
}

func (e *Editor) Update() error {
	e.ui.Update()
	e.checkWatcher()
	e.handleShortcuts()

	mx, my := ebiten.CursorPosition()

	// wheel zoom over the canvas area, cursor point fixed
	if mx >= leftPanelW {
		if _, wy := ebiten.Wheel(); wy != 0 {
			factor := 1.1
			if wy < 0 {
				factor = 1.0 / 1.1
			}
			newZoom := e.zoom * factor
			if newZoom < 0.1 {
				newZoom = 0.1
			}
			if newZoom > 8.0 {
				newZoom = 8.0
			}
			localX := (float64(mx-leftPanelW) - e.offsetX) / e.zoom
			localY := (float64(my) - e.offsetY) / e.zoom
			e.zoom = newZoom
			e.offsetX = float64(mx-leftPanelW) - localX*e.zoom
			e.offsetY = float64(my) - localY*e.zoom
		}
	}

	// middle-button pan
	mPressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if mPressed {
		if !e.panActive {
			e.panActive = true
			e.lastMX = mx
			e.lastMY = my
		}
		e.offsetX += float64(mx - e.lastMX)
		e.offsetY += float64(my - e.lastMY)
		e.lastMX = mx
		e.lastMY = my
	} else {
		e.panActive = false
	}

	e.overlay.Update(mx, my)
	return nil
}

func (e *Editor) rebuildPreview() {
	img, err := render.Composite(&e.store.Canvas, e.store.Layers, e.images, render.Options{
		Background: color.NRGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff},
	})
	if err != nil {
		log.Printf("composite: %v", err)
		return
	}
	e.preview = ebiten.NewImageFromImage(img)
	e.previewStale = false
}

// canvasToScreen maps canvas pixels to screen pixels.
func (e *Editor) canvasToScreen(cx, cy float64) (float64, float64) {
	return cx*e.zoom + e.offsetX + leftPanelW, cy*e.zoom + e.offsetY
}

// screenToView maps screen pixels into the overlay's display space:
// canvas-origin coordinates scaled by the current zoom.
func (e *Editor) screenToView(mx, my int) (float64, float64) {
	return float64(mx-leftPanelW) - e.offsetX, float64(my) - e.offsetY
}

func (e *Editor) Draw(screen *ebiten.Image) {
	if e.previewStale || e.preview == nil {
		e.rebuildPreview()
	}
	if e.preview != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(e.zoom, e.zoom)
		op.GeoM.Translate(e.offsetX+leftPanelW, e.offsetY)
		screen.DrawImage(e.preview, op)
	}

	e.overlay.Draw(screen)
	e.ui.Draw(screen)

	status := e.statusMsg
	if e.store.Dirty() {
		status += " *"
	}
	ebitenutil.DebugPrintAt(screen, status, leftPanelW+8, 4)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// fillRect draws a solid rectangle using the shared 1x1 image.
func (e *Editor) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	r, g, b, a := c.RGBA()
	op.ColorScale.Scale(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	dst.DrawImage(e.whiteImg, op)
}
