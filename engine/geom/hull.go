// Package geom holds small integer-plane helpers used by the overlay passes.
package geom

import (
	"math"
	"slices"

	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Pt is an integer point in source grid pixels.
type Pt struct {
	X, Y int
}

// MultiPoint packs pts as an XY point set.
func MultiPoint(pts []Pt) *gogeom.MultiPoint {
	flat := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		flat = append(flat, float64(p.X), float64(p.Y))
	}
	return gogeom.NewMultiPointFlat(gogeom.XY, flat)
}

// Points unpacks the XY coordinates of g. A closed ring loses its repeated
// closing vertex.
func Points(g gogeom.T) []Pt {
	if g == nil {
		return nil
	}
	flat := g.FlatCoords()
	stride := g.Stride()
	pts := make([]Pt, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		pts = append(pts, Pt{int(math.Round(flat[i])), int(math.Round(flat[i+1]))})
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// ConvexHull returns the hull vertices counter-clockwise (in a Y-up frame)
// without repeating the first vertex. Collinear and duplicate points are
// dropped. Fewer than three distinct points come back deduplicated, and a
// collinear set reduces to its two ends.
func ConvexHull(pts []Pt) []Pt {
	ps := slices.Clone(pts)
	slices.SortFunc(ps, func(a, b Pt) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	ps = slices.Compact(ps)
	if len(ps) < 3 {
		return ps
	}

	hull := Points(xy.ConvexHull(MultiPoint(ps)))
	if Area(hull) < 0 {
		slices.Reverse(hull)
	}
	return hull
}

// Area returns the signed shoelace area of a polygon; positive when the
// vertices are counter-clockwise.
func Area(poly []Pt) float64 {
	if len(poly) < 3 {
		return 0
	}
	s := 0
	for i := range poly {
		j := (i + 1) % len(poly)
		s += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return float64(s) / 2
}
