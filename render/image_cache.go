package render

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Loader turns an asset path into an image.
type Loader func(path string) (*ebiten.Image, error)

type placeholderKey struct {
	w, h int
	clr  color.RGBA
}

// ImageCache loads images lazily and remembers both hits and misses, so a
// missing file is only reported once.
type ImageCache struct {
	load         Loader
	images       map[string]*ebiten.Image
	missing      map[string]error
	placeholders map[placeholderKey]*ebiten.Image
	logger       *log.Logger
}

func NewImageCache(load Loader) *ImageCache {
	return &ImageCache{
		load:         load,
		images:       map[string]*ebiten.Image{},
		missing:      map[string]error{},
		placeholders: map[placeholderKey]*ebiten.Image{},
		logger:       log.Default(),
	}
}

// Get returns the image for path, loading it on first use.
func (c *ImageCache) Get(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img, ok := c.images[path]; ok {
		return img, nil
	}
	if err, ok := c.missing[path]; ok {
		return nil, err
	}
	if c.load == nil {
		err := fmt.Errorf("render: no loader for %s", path)
		c.missing[path] = err
		return nil, err
	}

	img, err := c.load(path)
	if err != nil {
		c.logger.Printf("render: %v, drawing placeholder", err)
		c.missing[path] = err
		return nil, err
	}
	c.images[path] = img
	return img, nil
}

// Placeholder returns a solid w×h image of clr.
func (c *ImageCache) Placeholder(w, h int, clr color.RGBA) *ebiten.Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	key := placeholderKey{w: w, h: h, clr: clr}
	if img, ok := c.placeholders[key]; ok {
		return img
	}
	img := ebiten.NewImage(w, h)
	img.Fill(clr)
	c.placeholders[key] = img
	return img
}
