package frameio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

// LoadSprite decodes an image file and scales it to size×size.
func LoadSprite(path string, size int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite %s: %w", path, err)
	}
	return ScaleSprite(src, size), nil
}

// ScaleSprite resamples src into a new size×size image.
func ScaleSprite(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if src.Bounds().Dx() == size && src.Bounds().Dy() == size {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// DefaultSprite draws a small walled town: a stone ring with a keep.
func DefaultSprite(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	outer := float64(size) * 0.46
	inner := float64(size) * 0.34
	keep := float64(size) * 0.14

	wall := color.RGBA{120, 110, 95, 255}
	ground := color.RGBA{200, 170, 110, 255}
	roof := color.RGBA{170, 40, 30, 255}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d := math.Sqrt(dx*dx + dy*dy)
			switch {
			case math.Abs(dx) <= keep && math.Abs(dy) <= keep:
				img.SetRGBA(x, y, roof)
			case d <= inner:
				img.SetRGBA(x, y, ground)
			case d <= outer:
				img.SetRGBA(x, y, wall)
			}
		}
	}
	return img
}
