package synth

import "math"

// Next returns the pseudo-random value for seed in [0,1) and the following
// seed. It is a pure sine hash: the same seed always yields the same value.
func Next(seed float64) (value, next float64) {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x), seed + 1
}

// Noise threads a seed through successive draws. The zero value is usable
// and starts at seed 0. Copying a Noise forks the sequence.
type Noise struct {
	seed float64
}

// NewNoise returns a source starting at seed.
func NewNoise(seed float64) Noise {
	return Noise{seed: seed}
}

// Float64 draws the next value and advances the seed.
func (n *Noise) Float64() float64 {
	v, next := Next(n.seed)
	n.seed = next
	return v
}

// Seed returns the seed the next draw will use.
func (n Noise) Seed() float64 { return n.seed }
