// Package towns places the 16 board towns inside their grid cells.
package towns

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	GridSide = 4
	Count    = GridSide * GridSide

	// CellStride is the pixel pitch of the 4×4 board grid.
	CellStride = 250
	// Spread is the edge of the random placement window inside a cell.
	Spread = 150
	// Margin keeps anchors away from the cell's top-left border.
	Margin = 50
)

// ErrUnknownTown is returned for a town index outside [0, Count).
var ErrUnknownTown = errors.New("unknown town")

// Anchor is a town position in source grid pixels.
type Anchor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Layout is immutable after Generate.
type Layout struct {
	anchors [Count]Anchor
}

// NewSource returns a time-seeded random source for production layouts.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate draws one anchor per grid cell from rng.
func Generate(rng *rand.Rand) *Layout {
	l := &Layout{}
	for i := 0; i < Count; i++ {
		dx := int(rng.Float64() * Spread)
		dy := int(rng.Float64() * Spread)
		x0 := (i % GridSide) * CellStride
		y0 := (i / GridSide) * CellStride
		l.anchors[i] = Anchor{X: x0 + dx + Margin, Y: y0 + dy + Margin}
	}
	return l
}

// FromAnchors builds a layout from explicit positions.
func FromAnchors(anchors [Count]Anchor) *Layout {
	return &Layout{anchors: anchors}
}

// Valid reports whether i names a town.
func Valid(i int) bool { return i >= 0 && i < Count }

// Town returns the anchor of town i.
func (l *Layout) Town(i int) (Anchor, error) {
	if !Valid(i) {
		return Anchor{}, fmt.Errorf("town %d: %w", i, ErrUnknownTown)
	}
	return l.anchors[i], nil
}

// Anchors returns a copy of all anchors in index order.
func (l *Layout) Anchors() []Anchor {
	out := make([]Anchor, Count)
	copy(out, l.anchors[:])
	return out
}
