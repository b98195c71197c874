// Command compose renders a project file to a PNG without opening the
// editor, and prints the parameter string for the imaging service.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/gallery/project"
	"github.com/milk9111/gallery/render"
)

func main() {
	in := flag.String("in", "", "project file (.yaml or .json)")
	out := flag.String("out", "composite.png", "output PNG path")
	assetsDir := flag.String("assets", "assets", "directory with layer source images")
	paramsOnly := flag.Bool("params", false, "print service params and exit without rendering")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	p, err := project.Load(*in)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(render.ServiceParams(&p.Canvas, p.Layers))
	if *paramsOnly {
		return
	}

	images := render.ImageMap{}
	for i := range p.Layers {
		ref := p.Layers[i].Source
		if ref == "" {
			continue
		}
		if _, ok := images[ref]; ok {
			continue
		}
		img, err := loadImage(filepath.Join(*assetsDir, ref))
		if err != nil {
			log.Printf("source %s: %v", ref, err)
			continue
		}
		images[ref] = img
	}

	result, err := render.Composite(&p.Canvas, p.Layers, images, render.Options{})
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, result); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%dx%d)", *out, result.Bounds().Dx(), result.Bounds().Dy())
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
