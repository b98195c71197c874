package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
)

func main() {
	projectPath := flag.String("project", "", "project file to open (.yaml or .json); empty starts a new project")
	assetsDir := flag.String("assets", "assets", "directory with source images for new layers")
	layoutScript := flag.String("script", "", "layout script to run with the L key")
	canvasW := flag.Float64("w", 1280, "canvas width for new projects")
	canvasH := flag.Float64("h", 720, "canvas height for new projects")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		clipboardOK = false
	}

	ed, err := NewEditor(Config{
		ProjectPath:  *projectPath,
		AssetsDir:    *assetsDir,
		LayoutScript: *layoutScript,
		CanvasW:      *canvasW,
		CanvasH:      *canvasH,
		ClipboardOK:  clipboardOK,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer ed.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidthEditor, baseHeightEditor)
	ebiten.SetWindowTitle("gallery editor")
	ebiten.SetTPS(60)

	start := time.Now()
	err = ebiten.RunGame(ed)
	log.Printf("editor session: %s", time.Since(start).Round(time.Second))
	if err != nil {
		log.Fatal(err)
	}
}
