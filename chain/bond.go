package chain

import (
	"fmt"

	"github.com/cridley/ljmc/rand"
)

// BondSampler draws trial bond lengths d from the density proportional to
// d^2 exp(-(d-Bond)^2 / 2 StdDev^2) restricted to [0, DMax], by von Neumann
// rejection: draw from the Gaussian, reject outside the window, then accept
// with probability (d/DMax)^2.
type BondSampler struct {
	Bond   float64 // nominal bond length, sigma units
	StdDev float64 // Gaussian spread, sqrt(kT / kSpring)
	DMax   float64 // hard upper bound on trial lengths
}

// NewBondSampler validates the sampler's geometry against the box. DMax
// must clear the bond length by at least three standard deviations, so the
// Gaussian is not meaningfully clipped, and may not exceed half the box
// edge, where minimum-image separations turn ambiguous. Violations are
// fatal configuration errors.
func NewBondSampler(bond, stdDev, dMax, box float64) (*BondSampler, error) {
	if bond <= 0 || stdDev <= 0 {
		return nil, fmt.Errorf(
			"chain: bond %g and spread %g must be positive", bond, stdDev,
		)
	}
	if dMax < bond+3*stdDev {
		return nil, fmt.Errorf(
			"chain: dMax %g below bond + 3 sigma = %g", dMax, bond+3*stdDev,
		)
	}
	if dMax > box/2 {
		return nil, fmt.Errorf(
			"chain: dMax %g exceeds half the box length %g", dMax, box,
		)
	}
	return &BondSampler{Bond: bond, StdDev: stdDev, DMax: dMax}, nil
}

// Sample returns one bond length in sigma units.
func (b *BondSampler) Sample(src *rand.Source) float64 {
	for {
		d := src.Normal(b.Bond, b.StdDev)
		if d < 0 || d > b.DMax {
			continue
		}
		ratio := d / b.DMax
		if src.Uniform01() < ratio*ratio {
			return d
		}
	}
}
