// Package teximage prepares block texture images on the CPU before upload.
package teximage

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// DefaultSize is the edge length block textures are scaled to.
const DefaultSize = 16

// Load decodes an image file and fits it to a size×size RGBA tile.
func Load(path string, size int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return Fit(img, size), nil
}

// Fit scales img to size×size with nearest-neighbour sampling so pixel art
// stays crisp. An image already at that size is copied unchanged.
func Fit(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Procedural returns a deterministic speckled stone tile, used when no
// texture file is configured or it fails to load.
func Procedural(size int, seed uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	h := seed | 1
	for y := range size {
		for x := range size {
			// xorshift32
			h ^= h << 13
			h ^= h >> 17
			h ^= h << 5
			shade := uint8(112 + h%40)
			if x == 0 || y == 0 {
				shade -= 24
			}
			img.SetRGBA(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 0xff})
		}
	}
	return img
}

// LoadOrProcedural loads path, falling back to Procedural when path is
// empty or unreadable. The returned error reports why the fallback was used.
func LoadOrProcedural(path string, size int) (*image.RGBA, error) {
	if path == "" {
		return Procedural(size, 1), nil
	}
	img, err := Load(path, size)
	if err != nil {
		return Procedural(size, 1), err
	}
	return img, nil
}
