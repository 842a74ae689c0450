// Package frameio turns rendered frames into images: sprite overlay and
// PNG output.
package frameio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/townmap/engine/surface"
)

// Compose copies frame and alpha-blends sprite centered on each point.
// Points equal to surface.Outside are skipped.
func Compose(frame *image.RGBA, points []surface.Point, sprite image.Image) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	xdraw.Draw(out, out.Bounds(), frame, frame.Bounds().Min, xdraw.Src)
	if sprite == nil {
		return out
	}

	sb := sprite.Bounds()
	half := image.Pt(sb.Dx()/2, sb.Dy()/2)
	for _, p := range points {
		if p == surface.Outside {
			continue
		}
		at := image.Pt(p.X, p.Y).Sub(half)
		xdraw.Draw(out, image.Rectangle{Min: at, Max: at.Add(sb.Size())}, sprite, sb.Min, xdraw.Over)
	}
	return out
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RoundPath names the frame file for a game round.
func RoundPath(dir string, round int) string {
	return filepath.Join(dir, fmt.Sprintf("%d.png", round))
}
