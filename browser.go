package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Browser scans a directory for images and serves them one at a time.
// Images decode lazily and stay cached for the session.
type Browser struct {
	dir     string
	files   []string
	current int
	cache   map[string]*ebiten.Image
}

func NewBrowser(dir string) (*Browser, error) {
	b := &Browser{dir: dir, cache: map[string]*ebiten.Image{}}
	if err := b.Rescan(); err != nil {
		return nil, err
	}
	return b, nil
}

// Rescan re-reads the directory listing, keeping the current image
// selected when it still exists.
func (b *Browser) Rescan() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}
	var keep string
	if b.current >= 0 && b.current < len(b.files) {
		keep = b.files[b.current]
	}
	b.files = b.files[:0]
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			b.files = append(b.files, e.Name())
		}
	}
	sort.Strings(b.files)
	if len(b.files) == 0 {
		return fmt.Errorf("no images in %s", b.dir)
	}
	b.current = 0
	for i, f := range b.files {
		if f == keep {
			b.current = i
			break
		}
	}
	return nil
}

func (b *Browser) Len() int { return len(b.files) }

func (b *Browser) Name() string {
	if b.current < 0 || b.current >= len(b.files) {
		return ""
	}
	return b.files[b.current]
}

func (b *Browser) Next() { b.step(1) }
func (b *Browser) Prev() { b.step(-1) }

func (b *Browser) step(d int) {
	if len(b.files) == 0 {
		return
	}
	b.current = (b.current + d + len(b.files)) % len(b.files)
}

// Current decodes and returns the selected image.
func (b *Browser) Current() (*ebiten.Image, error) {
	name := b.Name()
	if name == "" {
		return nil, fmt.Errorf("no image selected")
	}
	if img, ok := b.cache[name]; ok {
		return img, nil
	}
	f, err := os.Open(filepath.Join(b.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	img := ebiten.NewImageFromImage(decoded)
	b.cache[name] = img
	return img, nil
}
