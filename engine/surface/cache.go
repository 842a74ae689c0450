// Package surface precomputes where every world cell of the terrain lands on
// the canvas and answers coarse visibility queries against that mapping.
package surface

import (
	"context"
	"image/color"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/townmap/engine/terrain"
)

// Size is the edge length of both the source grid and the canvas.
const Size = 1000

// Contour banding. A cell is ridge-lit when the truncated remainder of its
// negated height falls under BandWidth.
const (
	BandSeparation = 0.15
	BandWidth      = 0.015
)

var (
	// RidgeColor paints cells on a contour line.
	RidgeColor = color.RGBA{255, 255, 255, 255}
	// BaseColor paints every other cell.
	BaseColor = color.RGBA{0, 0, 0, 255}
)

// Point is a world cell after projection.
type Point struct {
	X, Y  int
	Z     float64
	Color color.RGBA
}

// Outside is returned for every query that falls off the grid.
var Outside = Point{X: -1, Y: -1}

// Projector maps a world sample to a canvas pixel plus an ordering depth.
type Projector interface {
	Project(wx, wy, height float64) (px, py int, z float64)
}

// Index converts grid coordinates to a flat offset. ok is false outside
// [0,Size)².
func Index(x, y int) (i int, ok bool) {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return 0, false
	}
	return x + y*Size, true
}

// queryable reports whether (x, y) is inside the readable window. Row and
// column 0 are excluded.
func queryable(x, y int) bool {
	return x > 0 && x < Size && y > 0 && y < Size
}

// WorldCoord returns the world position sampled by grid cell (x, y).
func WorldCoord(x, y int) (float64, float64) {
	return float64(x)/100 - 5, float64(y)/100 - 5
}

// BandColor picks the contour color for a height.
func BandColor(height float64) color.RGBA {
	if math.Mod(-height, BandSeparation) < BandWidth {
		return RidgeColor
	}
	return BaseColor
}

// Cache is immutable once Build returns and may be shared between readers.
type Cache struct {
	projected []Point   // by source cell
	depth     []float64 // by destination pixel
}

type buildOptions struct {
	workers int
}

// Option tunes Build.
type Option func(*buildOptions)

// WithWorkers sets the number of goroutines projecting cells. Values below 1
// fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *buildOptions) { o.workers = n }
}

// Build samples and projects every world cell.
//
// Projection runs in parallel column bands, each writing only its own
// source slots. Depth is then written in a single outer-x/inner-y pass where
// a later cell unconditionally replaces an earlier one at the same
// destination. That ordering is what IsVisible is measured against, so it
// must not become a max-compare.
func Build(ctx context.Context, sampler terrain.Sampler, proj Projector, opts ...Option) (*Cache, error) {
	o := buildOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	c := &Cache{
		projected: make([]Point, Size*Size),
		depth:     make([]float64, Size*Size),
	}

	band := (Size + o.workers - 1) / o.workers
	g, gctx := errgroup.WithContext(ctx)
	for x0 := 0; x0 < Size; x0 += band {
		x0, x1 := x0, min(x0+band, Size)
		g.Go(func() error {
			for x := x0; x < x1; x++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				for y := 0; y < Size; y++ {
					wx, wy := WorldCoord(x, y)
					h := sampler.Height(wx, wy)
					px, py, z := proj.Project(wx, wy, h)
					c.projected[x+y*Size] = Point{X: px, Y: py, Z: z, Color: BandColor(h)}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			p := c.projected[x+y*Size]
			// Destinations off the canvas have no depth slot.
			if i, ok := Index(p.X, p.Y); ok {
				c.depth[i] = p.Z
			}
		}
	}
	return c, nil
}

// Pixel returns the projected point for source cell (x, y), or Outside.
func (c *Cache) Pixel(x, y int) Point {
	if !queryable(x, y) {
		return Outside
	}
	return c.projected[x+y*Size]
}

// Depth returns the depth stored for canvas pixel (x, y), or 0.
func (c *Cache) Depth(x, y int) float64 {
	if !queryable(x, y) {
		return 0
	}
	return c.depth[x+y*Size]
}

// IsVisible compares the cell's own depth with whatever depth its
// destination pixel holds. Ties count as visible.
func (c *Cache) IsVisible(x, y int) bool {
	p := c.Pixel(x, y)
	return p.Z >= c.Depth(p.X, p.Y)
}
