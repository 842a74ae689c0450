package render

import (
	"image/color"
	"math"

	"github.com/1siamBot/townmap/engine/geom"
	"github.com/1siamBot/townmap/engine/towns"
)

// Territory is one team's holdings for a frame.
type Territory struct {
	Towns   []int `json:"towns"`
	Capital int   `json:"capital"`
}

const (
	// RingPoints is how many samples each town contributes to the hull.
	RingPoints = 100
	// RingRadius is the sample ring radius in source pixels.
	RingRadius = 50
)

// Team and connector stroke colors.
var (
	Blue      = color.RGBA{0, 0, 255, 255}
	Red       = color.RGBA{255, 0, 0, 255}
	Connector = color.RGBA{255, 255, 0, 255}
)

// Segment is a stroked line in source space.
type Segment struct {
	A, B geom.Pt
}

// Degenerate reports whether both ends coincide.
func (s Segment) Degenerate() bool { return s.A == s.B }

// Outline records what drawTerritory stroked.
type Outline struct {
	Hull       []geom.Pt
	Edges      []Segment
	Connectors []Segment
}

func ringSamples(anchors []towns.Anchor) []geom.Pt {
	pts := make([]geom.Pt, 0, len(anchors)*RingPoints)
	for _, a := range anchors {
		for k := 0; k < RingPoints; k++ {
			ang := float64(k) * 2 * math.Pi / RingPoints
			pts = append(pts, geom.Pt{
				X: a.X + int(math.Cos(ang)*RingRadius),
				Y: a.Y + int(math.Sin(ang)*RingRadius),
			})
		}
	}
	return pts
}

// drawTerritory outlines the hull around every owned town's sample ring in
// c, then joins each town to the capital in yellow. Indices must already be
// validated.
func (r *Renderer) drawTerritory(t Territory, c color.RGBA) Outline {
	var out Outline
	if len(t.Towns) == 0 {
		return out
	}

	all := r.layout.Anchors()
	anchors := make([]towns.Anchor, 0, len(t.Towns))
	for _, i := range t.Towns {
		anchors = append(anchors, all[i])
	}

	out.Hull = geom.ConvexHull(ringSamples(anchors))
	n := len(out.Hull)
	if n >= 2 {
		for i := 0; i < n; i++ {
			a, b := out.Hull[i], out.Hull[(i+1)%n]
			out.Edges = append(out.Edges, Segment{a, b})
			r.frame.DrawLine(a.X, a.Y, b.X, b.Y, c)
		}
	}

	capital := all[t.Capital]
	cp := geom.Pt{X: capital.X, Y: capital.Y}
	for _, a := range anchors {
		s := Segment{geom.Pt{X: a.X, Y: a.Y}, cp}
		out.Connectors = append(out.Connectors, s)
		r.frame.DrawLine(s.A.X, s.A.Y, s.B.X, s.B.Y, Connector)
	}
	return out
}
