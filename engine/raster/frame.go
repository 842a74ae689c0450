// Package raster paints overlay primitives into the frame buffer through the
// projection cache.
package raster

import (
	"image"
	"image/color"

	"github.com/1siamBot/townmap/engine/surface"
)

const (
	// LineSamples is the number of stamps along every DrawLine.
	LineSamples = 100
	// StrokeSize is the stamp edge DrawLine uses.
	StrokeSize = 7
)

// Visibility is the part of the projection cache the rasterizer needs.
type Visibility interface {
	Pixel(x, y int) surface.Point
	IsVisible(x, y int) bool
}

// Frame is a Size×Size RGBA buffer.
type Frame struct {
	Pix []uint8
	vis Visibility
}

// NewFrame allocates a cleared frame that stamps through vis.
func NewFrame(vis Visibility) *Frame {
	return &Frame{
		Pix: make([]uint8, surface.Size*surface.Size*4),
		vis: vis,
	}
}

// Clear resets the buffer to transparent black.
func (f *Frame) Clear() {
	clear(f.Pix)
}

// SetPixel writes c at canvas (x, y) for 0 < x, y < Size. Row 0 and
// column 0 are never written.
func (f *Frame) SetPixel(x, y int, c color.RGBA) {
	if x <= 0 || x >= surface.Size || y <= 0 || y >= surface.Size {
		return
	}
	i := (x + y*surface.Size) * 4
	f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = c.R, c.G, c.B, c.A
}

// At returns the color stored at canvas (x, y); off-canvas reads are
// transparent.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || x >= surface.Size || y < 0 || y >= surface.Size {
		return color.RGBA{}
	}
	i := (x + y*surface.Size) * 4
	return color.RGBA{f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]}
}

// DrawCircle stamps an r×r square of source cells whose top-left corner is
// (x0, y0), painting each visible cell's projected pixel. Despite the name
// it is neither round nor centered.
func (f *Frame) DrawCircle(x0, y0, r int, c color.RGBA) {
	for dx := 0; dx < r; dx++ {
		for dy := 0; dy < r; dy++ {
			x, y := x0+dx, y0+dy
			if f.vis.IsVisible(x, y) {
				p := f.vis.Pixel(x, y)
				f.SetPixel(p.X, p.Y, c)
			}
		}
	}
}

// DrawLine stamps LineSamples squares from (x1, y1) toward (x2, y2) in
// source space. The end point itself is not stamped.
func (f *Frame) DrawLine(x1, y1, x2, y2 int, c color.RGBA) {
	for k := 0; k < LineSamples; k++ {
		t := float64(k) / LineSamples
		x := x1 + int(t*float64(x2-x1))
		y := y1 + int(t*float64(y2-y1))
		f.DrawCircle(x, y, StrokeSize, c)
	}
}

// Image wraps the buffer without copying.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: surface.Size * 4,
		Rect:   image.Rect(0, 0, surface.Size, surface.Size),
	}
}
