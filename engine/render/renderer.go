package render

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/1siamBot/townmap/engine/config"
	"github.com/1siamBot/townmap/engine/raster"
	"github.com/1siamBot/townmap/engine/render3d"
	"github.com/1siamBot/townmap/engine/surface"
	"github.com/1siamBot/townmap/engine/terrain"
	"github.com/1siamBot/townmap/engine/towns"
)

// Renderer composes frames from the projection cache and the town layout.
// It is not safe for concurrent Render calls.
type Renderer struct {
	cache  *surface.Cache
	layout *towns.Layout
	frame  *raster.Frame

	blue, red Outline
}

// New wraps an already built cache and layout.
func New(cache *surface.Cache, layout *towns.Layout) *Renderer {
	return &Renderer{
		cache:  cache,
		layout: layout,
		frame:  raster.NewFrame(cache),
	}
}

// Init builds the terrain cache and town layout described by cfg.
func Init(ctx context.Context, cfg *config.Config) (*Renderer, error) {
	start := time.Now()
	log.Printf("Renderer: building surface cache (seed %d, %d octaves)", cfg.Terrain.Seed, cfg.Terrain.Octaves)
	cache, err := surface.Build(ctx,
		terrain.NewNoise(cfg.Terrain),
		render3d.NewProjection(),
		surface.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("build surface cache: %w", err)
	}
	log.Printf("Renderer: surface cache ready in %v", time.Since(start).Round(time.Millisecond))

	rng := towns.NewSource()
	if cfg.LayoutSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.LayoutSeed))
	}
	return New(cache, towns.Generate(rng)), nil
}

// Render repaints the terrain and draws both territories, blue first.
// Capitals are not checked against their team's towns.
func (r *Renderer) Render(blueTowns []int, blueCapital int, redTowns []int, redCapital int) error {
	return r.RenderState(State{
		Blue: Territory{Towns: blueTowns, Capital: blueCapital},
		Red:  Territory{Towns: redTowns, Capital: redCapital},
	})
}

// RenderState is Render taking a State.
func (r *Renderer) RenderState(s State) error {
	if err := s.validate(); err != nil {
		return err
	}

	r.frame.Clear()
	for x := 0; x < surface.Size; x++ {
		for y := 0; y < surface.Size; y++ {
			if r.cache.IsVisible(x, y) {
				p := r.cache.Pixel(x, y)
				r.frame.SetPixel(p.X, p.Y, p.Color)
			}
		}
	}

	r.blue = r.drawTerritory(s.Blue, Blue)
	r.red = r.drawTerritory(s.Red, Red)
	return nil
}

// Frame returns the buffer written by the last Render.
func (r *Renderer) Frame() *raster.Frame { return r.frame }

// Cache exposes projection queries.
func (r *Renderer) Cache() *surface.Cache { return r.cache }

// Layout exposes town anchors.
func (r *Renderer) Layout() *towns.Layout { return r.layout }

// Outlines returns what the last Render stroked for each team.
func (r *Renderer) Outlines() (blue, red Outline) { return r.blue, r.red }

// ProjectedTown returns where town i lands on the canvas. Anchors on the
// unreadable border row/column come back as surface.Outside.
func (r *Renderer) ProjectedTown(i int) (surface.Point, error) {
	a, err := r.layout.Town(i)
	if err != nil {
		return surface.Outside, err
	}
	return r.cache.Pixel(a.X, a.Y), nil
}

// ProjectedTowns returns ProjectedTown for every town in index order.
func (r *Renderer) ProjectedTowns() []surface.Point {
	pts := make([]surface.Point, 0, towns.Count)
	for _, a := range r.layout.Anchors() {
		pts = append(pts, r.cache.Pixel(a.X, a.Y))
	}
	return pts
}

// PickRadius is how close (in frame pixels) a point must be to a projected
// town for TownAt to report it.
const PickRadius = 25

// TownAt returns the town whose projected anchor is nearest to canvas
// (x, y) within PickRadius, or -1.
func (r *Renderer) TownAt(x, y int) int {
	best, bestD := -1, PickRadius*PickRadius+1
	for i, p := range r.ProjectedTowns() {
		if p == surface.Outside {
			continue
		}
		dx, dy := p.X-x, p.Y-y
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
