package towns

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateKeepsAnchorsInsideCells(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		l := Generate(rand.New(rand.NewSource(seed)))
		for i, a := range l.Anchors() {
			x0 := (i%GridSide)*CellStride + Margin
			y0 := (i/GridSide)*CellStride + Margin
			if a.X < x0 || a.X >= x0+Spread || a.Y < y0 || a.Y >= y0+Spread {
				t.Fatalf("seed %d town %d at %+v outside [%d,%d)x[%d,%d)",
					seed, i, a, x0, x0+Spread, y0, y0+Spread)
			}
		}
	}
}

func TestGenerateReproducibleWithInjectedSource(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(7)))
	b := Generate(rand.New(rand.NewSource(7)))
	if a.anchors != b.anchors {
		t.Fatal("same seed should give the same layout")
	}
}

func TestTownOutOfRange(t *testing.T) {
	l := Generate(rand.New(rand.NewSource(1)))
	for _, i := range []int{-1, Count, 100} {
		if _, err := l.Town(i); !errors.Is(err, ErrUnknownTown) {
			t.Fatalf("Town(%d) err = %v, want ErrUnknownTown", i, err)
		}
	}
	a, err := l.Town(Count - 1)
	if err != nil {
		t.Fatal(err)
	}
	if a != l.anchors[Count-1] {
		t.Fatal("Town returned the wrong anchor")
	}
}

func TestAnchorsReturnsCopy(t *testing.T) {
	l := Generate(rand.New(rand.NewSource(3)))
	got := l.Anchors()
	got[0] = Anchor{-1, -1}
	if a, _ := l.Town(0); a == (Anchor{-1, -1}) {
		t.Fatal("Anchors must not expose internal storage")
	}
}
