package potential

// Partners selects which particle indices count as interaction partners
// relative to the particle being evaluated.
type Partners int

const (
	All Partners = iota
	LessThan
	GreaterThan
)

// Interaction accumulates pairwise contributions to the potential energy,
// the virial, and the Laplacian of the potential. Overlap set means two
// particles came close enough that Energy cannot be trusted: it must never
// enter a running sum or a Boltzmann factor.
type Interaction struct {
	Energy, Virial, Laplacian float64
	Overlap                   bool
}

// Add combines two interaction results component-wise. Overlap propagates
// by logical OR.
func (a Interaction) Add(b Interaction) Interaction {
	return Interaction{
		Energy:    a.Energy + b.Energy,
		Virial:    a.Virial + b.Virial,
		Laplacian: a.Laplacian + b.Laplacian,
		Overlap:   a.Overlap || b.Overlap,
	}
}

// Sub subtracts b from a component-wise. Overlap still propagates by OR,
// matching Add, so a difference involving an untrusted term stays untrusted.
func (a Interaction) Sub(b Interaction) Interaction {
	return Interaction{
		Energy:    a.Energy - b.Energy,
		Virial:    a.Virial - b.Virial,
		Laplacian: a.Laplacian - b.Laplacian,
		Overlap:   a.Overlap || b.Overlap,
	}
}

// sr2Ovr is the squared inverse separation beyond which the raw potential
// is too large to exponentiate safely.
const sr2Ovr = 1.77

// LJ is a truncated Lennard-Jones pair potential in reduced units
// (sigma = 1, epsilon = 1). The potential is cut (not shifted) at Cutoff.
type LJ struct {
	Cutoff float64 // in sigma units
}

// Pair returns the contribution of a single pair at squared separation r2,
// in sigma units. Pairs beyond the cutoff contribute nothing. Pairs inside
// the overlap threshold return Overlap with no usable components.
func (lj LJ) Pair(r2 float64) Interaction {
	if r2 >= lj.Cutoff*lj.Cutoff {
		return Interaction{}
	}

	sr2 := 1 / r2
	if sr2 > sr2Ovr {
		return Interaction{Overlap: true}
	}

	sr6 := sr2 * sr2 * sr2
	sr12 := sr6 * sr6
	return Interaction{
		Energy:    4 * (sr12 - sr6),
		Virial:    (24.0 / 3.0) * (2*sr12 - sr6),
		Laplacian: (24.0 * 2.0) * (22*sr12 - 5*sr6) * sr2,
	}
}

// Harmonic returns the energy of one harmonic bond of length d with nominal
// length bond and spring constant k.
func Harmonic(d, bond, k float64) float64 {
	dd := d - bond
	return 0.5 * k * dd * dd
}
