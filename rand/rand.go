// Package rand provides every random draw the simulation makes, behind one
// seedable source so that identically seeded runs reproduce identical move
// sequences. Draws are consumed strictly in call order; callers must not
// reorder draws across an accept/reject decision point.
package rand

import (
	"math"
	mrand "math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cridley/ljmc/geom"
)

// expGuard bounds the exponent passed to math.Exp in Metropolis tests.
// Anything steeper is an automatic rejection.
const expGuard = 75.0

// Source is a deterministic random-number source for one run.
type Source struct {
	rng *mrand.Rand
}

// New returns a Source seeded with the given value.
func New(seed uint64) *Source {
	return &Source{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Int returns a uniform integer on the inclusive range [lo, hi].
func (s *Source) Int(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Uniform01 returns a uniform float on [0, 1).
func (s *Source) Uniform01() float64 {
	return s.rng.Float64()
}

// Normal returns a draw from the Gaussian with the given mean and
// standard deviation.
func (s *Source) Normal(mean, std float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: std, Src: s.rng}.Rand()
}

// UnitVector returns a uniformly distributed direction: three standard
// normals, normalized. The null draw has measure zero but is resampled
// anyway.
func (s *Source) UnitVector() geom.Vec {
	n := distuv.Normal{Mu: 0, Sigma: 1, Src: s.rng}
	for {
		v := geom.Vec{n.Rand(), n.Rand(), n.Rand()}
		r2 := v.Norm2()
		if r2 > 0 {
			v.ScaleSelf(1 / math.Sqrt(r2))
			return v
		}
	}
}

// Pick selects index k with probability ws[k] / sum(ws). The weights must
// be non-negative with a positive sum.
func (s *Source) Pick(ws []float64) int {
	total := 0.0
	for _, w := range ws {
		total += w
	}

	zeta := s.rng.Float64() * total
	last := 0
	for k, w := range ws {
		if w <= 0 {
			continue
		}
		last = k
		zeta -= w
		if zeta < 0 {
			return k
		}
	}
	// Rounding pushed zeta past the final positive weight.
	return last
}

// Jitter returns x displaced by a uniform vector from the cube
// [-dMax, dMax]^3, in the same units as x.
func (s *Source) Jitter(x geom.Vec, dMax float64) geom.Vec {
	for i := 0; i < 3; i++ {
		x[i] += (2*s.rng.Float64() - 1) * dMax
	}
	return x
}

// Metropolis accepts a trial with probability min(1, exp(-delta)), where
// delta is the energy change in units of kT.
func (s *Source) Metropolis(delta float64) bool {
	if delta <= 0 {
		return true
	}
	if delta > expGuard {
		return false
	}
	return s.rng.Float64() < math.Exp(-delta)
}
