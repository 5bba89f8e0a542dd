package blog

import "math/rand/v2"

// StarCount is the number of stars drawn in dark mode.
const StarCount = 80

// Star is a decorative point. X and Y are percentages of the viewport, Size is
// in pixels and Delay in seconds.
type Star struct {
	ID      int
	X       float64
	Y       float64
	Size    float64
	Opacity float64
	Delay   float64
}

// GenerateStars draws n stars from rng.
func GenerateStars(rng *rand.Rand, n int) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			ID:      i,
			X:       rng.Float64() * 100,
			Y:       rng.Float64() * 100,
			Size:    rng.Float64()*2 + 1,
			Opacity: rng.Float64()*0.5 + 0.3,
			Delay:   rng.Float64() * 3,
		}
	}
	return stars
}

// NewStarRand returns the generator used for a given seed.
func NewStarRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
