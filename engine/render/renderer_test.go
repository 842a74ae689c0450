package render

import (
	"context"
	"errors"
	"image/color"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/1siamBot/townmap/engine/config"
	"github.com/1siamBot/townmap/engine/render3d"
	"github.com/1siamBot/townmap/engine/surface"
	"github.com/1siamBot/townmap/engine/terrain"
	"github.com/1siamBot/townmap/engine/towns"
)

var (
	flatOnce  sync.Once
	flatCache *surface.Cache
	flatErr   error
)

func flatSurface(t *testing.T) *surface.Cache {
	t.Helper()
	flatOnce.Do(func() {
		flatCache, flatErr = surface.Build(context.Background(), terrain.Flat(0), render3d.NewProjection())
	})
	if flatErr != nil {
		t.Fatalf("build flat cache: %v", flatErr)
	}
	return flatCache
}

// gridLayout puts every town at the center of its placement window.
func gridLayout() *towns.Layout {
	var a [towns.Count]towns.Anchor
	for i := range a {
		a[i] = towns.Anchor{
			X: (i%towns.GridSide)*towns.CellStride + towns.Margin + towns.Spread/2,
			Y: (i/towns.GridSide)*towns.CellStride + towns.Margin + towns.Spread/2,
		}
	}
	return towns.FromAnchors(a)
}

func countColor(r *Renderer, c color.RGBA) int {
	n := 0
	for x := 0; x < surface.Size; x++ {
		for y := 0; y < surface.Size; y++ {
			if r.Frame().At(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFlatTerrainRendersRidgeColorOnly(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	if err := r.Render(nil, 0, nil, 0); err != nil {
		t.Fatal(err)
	}
	ridge := 0
	for x := 0; x < surface.Size; x++ {
		for y := 0; y < surface.Size; y++ {
			switch c := r.Frame().At(x, y); c {
			case surface.RidgeColor:
				ridge++
			case color.RGBA{}:
			default:
				t.Fatalf("pixel (%d,%d) = %v, want ridge color or untouched", x, y, c)
			}
		}
	}
	if ridge == 0 {
		t.Fatal("terrain pass painted nothing")
	}
}

func TestSingleTownCapitalHasOnlyDegenerateConnector(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	if err := r.Render([]int{5}, 5, nil, 0); err != nil {
		t.Fatal(err)
	}
	blue, red := r.Outlines()
	if len(blue.Hull) < 3 || len(blue.Hull) >= RingPoints {
		t.Fatalf("hull has %d vertices", len(blue.Hull))
	}
	if len(blue.Edges) != len(blue.Hull) {
		t.Fatalf("%d edges for a %d-vertex hull, want a closed ring", len(blue.Edges), len(blue.Hull))
	}
	nonDegenerate := 0
	for _, s := range blue.Connectors {
		if !s.Degenerate() {
			nonDegenerate++
		}
	}
	if len(blue.Connectors) != 1 || nonDegenerate != 0 {
		t.Fatalf("connectors = %+v, want one zero-length segment", blue.Connectors)
	}
	if len(red.Hull) != 0 || len(red.Connectors) != 0 {
		t.Fatal("empty red territory should draw nothing")
	}
	if countColor(r, Blue) == 0 {
		t.Fatal("no outline pixels in team color")
	}
	if countColor(r, Connector) == 0 {
		t.Fatal("degenerate connector should still stamp at the town")
	}
}

func TestConnectorsJoinEveryTownToCapital(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	if err := r.Render([]int{0, 1, 4}, 1, []int{10, 15}, 15); err != nil {
		t.Fatal(err)
	}
	blue, red := r.Outlines()
	capital, _ := r.Layout().Town(1)
	if len(blue.Connectors) != 3 {
		t.Fatalf("%d blue connectors, want 3", len(blue.Connectors))
	}
	for _, s := range blue.Connectors {
		if s.B.X != capital.X || s.B.Y != capital.Y {
			t.Fatalf("connector %+v does not end at the capital", s)
		}
	}
	if len(red.Connectors) != 2 || countColor(r, Red) == 0 {
		t.Fatal("red territory missing")
	}
}

func TestCapitalOutsideTerritoryIsDrawnAnyway(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	if err := r.Render([]int{0}, 3, nil, 0); err != nil {
		t.Fatalf("unowned capital should not be rejected: %v", err)
	}
	blue, _ := r.Outlines()
	if blue.Connectors[0].Degenerate() {
		t.Fatal("connector to a foreign capital should have length")
	}
}

func TestRenderRejectsUnknownTownBeforeDrawing(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	r.Frame().SetPixel(1, 1, Red)
	cases := [][4]any{
		{[]int{16}, 0, []int{}, 0},
		{[]int{0}, -1, []int{}, 0},
		{[]int{0}, 0, []int{2}, 99},
	}
	for _, c := range cases {
		err := r.Render(c[0].([]int), c[1].(int), c[2].([]int), c[3].(int))
		if !errors.Is(err, towns.ErrUnknownTown) {
			t.Fatalf("Render(%v) err = %v, want ErrUnknownTown", c, err)
		}
	}
	if r.Frame().At(1, 1) != Red {
		t.Fatal("frame was modified by a rejected render")
	}
}

func TestRenderRebuildsFrame(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	if err := r.Render([]int{0, 5}, 0, nil, 0); err != nil {
		t.Fatal(err)
	}
	if countColor(r, Blue) == 0 {
		t.Fatal("first render drew no outline")
	}
	if err := r.Render(nil, 0, nil, 0); err != nil {
		t.Fatal(err)
	}
	if n := countColor(r, Blue); n != 0 {
		t.Fatalf("%d outline pixels survived a fresh render", n)
	}
}

func TestProjectedTown(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	for i := 0; i < towns.Count; i++ {
		p, err := r.ProjectedTown(i)
		if err != nil {
			t.Fatal(err)
		}
		a, _ := r.Layout().Town(i)
		if p != r.Cache().Pixel(a.X, a.Y) {
			t.Fatalf("town %d projected to %+v", i, p)
		}
		if p != r.ProjectedTowns()[i] {
			t.Fatalf("ProjectedTowns disagrees for town %d", i)
		}
	}
	if _, err := r.ProjectedTown(towns.Count); !errors.Is(err, towns.ErrUnknownTown) {
		t.Fatalf("err = %v", err)
	}
}

func TestTownAt(t *testing.T) {
	r := New(flatSurface(t), gridLayout())
	p, _ := r.ProjectedTown(6)
	if got := r.TownAt(p.X+3, p.Y-4); got != 6 {
		t.Fatalf("TownAt near town 6 = %d", got)
	}
	if got := r.TownAt(p.X, p.Y+PickRadius); got != 6 {
		t.Fatalf("TownAt on the radius = %d", got)
	}
	if got := r.TownAt(-100, -100); got != -1 {
		t.Fatalf("TownAt far away = %d, want -1", got)
	}
}

func TestInitBuildsSeededLayout(t *testing.T) {
	cfg := config.Default()
	cfg.LayoutSeed = 9
	cfg.Terrain.Octaves = 2
	a, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b := towns.Generate(rand.New(rand.NewSource(9)))
	if !reflect.DeepEqual(a.Layout().Anchors(), b.Anchors()) {
		t.Fatal("layout seed was not honoured")
	}
	if err := a.Render([]int{0}, 0, []int{15}, 15); err != nil {
		t.Fatal(err)
	}
}
