package ljmc

import (
	"math"

	"github.com/cridley/ljmc/geom"
	"github.com/cridley/ljmc/potential"
)

// PairEnergy sums the pair potential between a position of interest and the
// existing configuration, using the cell grid to restrict candidates to the
// 27 cells around x. self is the index the position belongs to, or -1 for
// an insertion trial; it and (for chains) its bonded neighbors are skipped.
// partners restricts the partner indices relative to self.
//
// The sum short-circuits the instant any pair overlaps: no partial energy
// is trusted once the overlap flag is up.
func (s *System) PairEnergy(
	x *geom.Vec, self int, partners potential.Partners,
) potential.Interaction {
	s.cbuf, s.nbuf = s.grid.Neighbors(s.grid.CellOf(x), false, s.cbuf[:0], s.nbuf[:0])

	boxSq := s.Box * s.Box
	acc := potential.Interaction{}
	for _, j := range s.nbuf {
		switch partners {
		case potential.LessThan:
			if j >= self {
				continue
			}
		case potential.GreaterThan:
			if j <= self {
				continue
			}
		}
		if s.excluded(self, j) {
			continue
		}

		w := s.LJ.Pair(geom.Dist2(x, &s.xs[j]) * boxSq)
		if w.Overlap {
			return potential.Interaction{Overlap: true}
		}
		acc = acc.Add(w)
	}
	return acc
}

// TotalEnergy sums the pair potential over every unordered pair exactly
// once, scanning only the canonical half of each particle's adjacent cells:
// partners in the particle's own cell are restricted to greater indices,
// while partners in the half cells are taken whole, since the other half of
// each adjacent-cell pair is scanned from the partner's side.
//
// Returns Overlap immediately if any pair overlaps.
func (s *System) TotalEnergy() potential.Interaction {
	boxSq := s.Box * s.Box
	acc := potential.Interaction{}

	for i := range s.xs {
		c := s.grid.Cell(i)
		s.cbuf = s.grid.Adjacent(c, true, s.cbuf[:0])
		for _, cc := range s.cbuf {
			s.nbuf = s.grid.Members(cc, s.nbuf[:0])
			for _, j := range s.nbuf {
				if cc == c && j <= i {
					continue
				}
				if s.excluded(i, j) {
					continue
				}

				w := s.LJ.Pair(geom.Dist2(&s.xs[i], &s.xs[j]) * boxSq)
				if w.Overlap {
					return potential.Interaction{Overlap: true}
				}
				acc = acc.Add(w)
			}
		}
	}
	return acc
}

// SpringEnergy returns the harmonic bond energy of a chain with the given
// nominal bond length and spring constant: an independent sum over the n-1
// consecutive pairs, with no spatial index involved.
func (s *System) SpringEnergy(bond, kSpring float64) float64 {
	total := 0.0
	for i := 1; i < len(s.xs); i++ {
		d2 := geom.Dist2(&s.xs[i], &s.xs[i-1])
		total += potential.Harmonic(math.Sqrt(d2)*s.Box, bond, kSpring)
	}
	return total
}
