package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	dir := flag.String("dir", ".", "image directory to browse")
	slideshow := flag.Duration("slideshow", 5*time.Second, "slideshow interval")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	browser, err := NewBrowser(*dir)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("gallery")

	if err := ebiten.RunGame(NewViewer(browser, *slideshow)); err != nil {
		log.Fatal(err)
	}
}
