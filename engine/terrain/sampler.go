// Package terrain provides height fields sampled over continuous world
// coordinates.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Sampler returns the terrain height at a world coordinate.
// Implementations must be pure: the same input always gives the same output.
type Sampler interface {
	Height(x, y float64) float64
}

// Params configures fractal noise.
type Params struct {
	Seed        int64   `json:"seed"`
	Octaves     int     `json:"octaves"`
	Frequency   float64 `json:"frequency"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
	Amplitude   float64 `json:"amplitude"`
	Bias        float64 `json:"bias"`
}

// DefaultParams returns the production terrain: rolling hills over the
// [-5,5]² board with enough relief to show ~20 contour bands. The bias keeps
// the surface below zero so the whole board is banded.
func DefaultParams() Params {
	return Params{
		Seed:        101,
		Octaves:     8,
		Frequency:   0.5,
		Persistence: 0.5,
		Lacunarity:  2.05,
		Amplitude:   2.5,
		Bias:        -3,
	}
}

// Noise is multi-octave OpenSimplex noise with fixed parameters.
type Noise struct {
	params Params
	noise  opensimplex.Noise
}

// NewNoise creates a noise sampler. Non-positive octave counts are treated
// as a single octave.
func NewNoise(p Params) *Noise {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	return &Noise{
		params: p,
		noise:  opensimplex.New(p.Seed),
	}
}

// Params returns the parameters the sampler was built with.
func (n *Noise) Params() Params { return n.params }

// Height layers Octaves frequencies of noise; each octave multiplies the
// frequency by Lacunarity and the amplitude by Persistence.
func (n *Noise) Height(x, y float64) float64 {
	total := 0.0
	amp := n.params.Amplitude
	freq := n.params.Frequency
	for i := 0; i < n.params.Octaves; i++ {
		total += n.noise.Eval2(x*freq, y*freq) * amp
		amp *= n.params.Persistence
		freq *= n.params.Lacunarity
	}
	return total + n.params.Bias
}

// Flat is a constant height field.
type Flat float64

func (f Flat) Height(x, y float64) float64 { return float64(f) }

// Func adapts a plain function to a Sampler.
type Func func(x, y float64) float64

func (f Func) Height(x, y float64) float64 { return f(x, y) }
