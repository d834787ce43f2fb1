// Package chain implements configurational-bias Monte Carlo regrowth of a
// linear chain: a random-length run of atoms at one end is deleted and
// regrown atom-by-atom from biased trial placements, and the move is
// accepted against the ratio of new to reconstructed-old Rosenbluth
// weights. The weights already embed every nonbonded Boltzmann factor and
// the bond-length sampling bias, so the plain weight ratio governs
// acceptance with no further Boltzmann factor.
package chain

import (
	"fmt"
	"math"

	"github.com/cridley/ljmc"
	"github.com/cridley/ljmc/geom"
	"github.com/cridley/ljmc/potential"
	"github.com/cridley/ljmc/rand"
)

// wTol is the tolerance below which a trial-weight sum means "no viable
// placement": the move is rejected outright rather than committed with a
// vanishing probability.
const wTol = 1e-10

// Growth options: which end of the chain is deleted and which end the
// retained segment regrows from.
const (
	endToEnd     = 1 // delete tail, regrow at the tail
	endToStart   = 2 // delete tail, regrow at the (reversed) head
	startToStart = 3 // delete head, regrow at the head
	startToEnd   = 4 // delete head, regrow at the tail
)

// Regrower performs CBMC regrowth moves on a chain System.
type Regrower struct {
	Temperature float64
	MMax        int // most atoms regrown per move
	KMax        int // trial placements per regrown atom
	Bonds       *BondSampler

	// Scratch, reused across moves.
	old, neu, arr []geom.Vec
	trials        []geom.Vec
	wts           []float64
}

// NewRegrower validates the move parameters.
func NewRegrower(
	temperature float64, mMax, kMax int, bonds *BondSampler,
) (*Regrower, error) {
	if temperature <= 0 {
		return nil, fmt.Errorf(
			"chain: temperature must be positive, got %g", temperature,
		)
	}
	if mMax < 1 || kMax < 1 {
		return nil, fmt.Errorf(
			"chain: need mMax >= 1 and kMax >= 1, got %d and %d", mMax, kMax,
		)
	}
	return &Regrower{
		Temperature: temperature,
		MMax:        mMax,
		KMax:        kMax,
		Bonds:       bonds,
		trials:      make([]geom.Vec, kMax),
		wts:         make([]float64, kMax),
	}, nil
}

// Regrow attempts one regrowth move on s, whose current total nonbonded
// energy is cur. It returns the updated energy and whether the move was
// accepted. A rejected move, including the frequent early exit when a
// trial-weight sum falls below tolerance, leaves s and the energy exactly
// as they were. A non-nil error is a fatal internal-consistency fault, not
// a rejection.
func (rg *Regrower) Regrow(
	s *ljmc.System, src *rand.Source, cur potential.Interaction,
) (potential.Interaction, bool, error) {
	n := s.Len()
	if rg.MMax >= n {
		return cur, false, fmt.Errorf(
			"chain: cannot regrow up to %d atoms of a %d-atom chain",
			rg.MMax, n,
		)
	}

	rg.old = s.Positions(rg.old[:0])
	m := src.Int(1, rg.MMax)
	c := src.Int(endToEnd, startToEnd)

	// Forward pass: rebuild the retained segment, then grow m atoms from
	// biased trials.
	rg.arr = arrangeNew(rg.old, m, c, rg.arr[:0])
	rg.apply(s, rg.arr)

	wNew := 1.0
	for g := 0; g < m; g++ {
		sumW := rg.forwardTrials(s, src)
		if sumW < wTol {
			// No viable placement for this atom. A valid, frequent outcome.
			rg.apply(s, rg.old)
			return cur, false, nil
		}
		s.Create(rg.trials[src.Pick(rg.wts)])
		wNew *= sumW
	}

	eNew := s.TotalEnergy()
	if eNew.Overlap {
		// The forward pass only commits overlap-free trials, so an overlap
		// here means the evaluator and the regrowth disagree.
		rg.apply(s, rg.old)
		return cur, false, ljmc.ErrOverlap
	}
	rg.neu = s.Positions(rg.neu[:0])

	// Reverse pass: reconstruct the original configuration, with each
	// regrown atom's original position as the kept trial and kMax-1 fresh
	// diagnostic trials alongside it.
	rg.arr = arrangeOld(rg.old, c, rg.arr[:0])
	rg.apply(s, rg.arr[:n-m])

	wOld := 1.0
	for g := 0; g < m; g++ {
		kept := rg.arr[s.Len()]
		wOld *= rg.reverseTrials(s, src, &kept)
		s.Create(kept)
	}
	if wOld < wTol {
		// The original configuration is valid by construction; its weight
		// cannot legitimately vanish.
		rg.apply(s, rg.old)
		return cur, false, ljmc.ErrWeight
	}

	if src.Uniform01() < wNew/wOld {
		rg.apply(s, rg.neu)
		return eNew, true, nil
	}
	rg.apply(s, rg.old)
	return cur, false, nil
}

// forwardTrials fills rg.trials and rg.wts with kMax biased placements for
// the next atom and returns the weight sum.
func (rg *Regrower) forwardTrials(s *ljmc.System, src *rand.Source) float64 {
	sumW := 0.0
	for k := 0; k < rg.KMax; k++ {
		rg.trials[k] = rg.place(s, src)
		rg.wts[k] = rg.weight(s, &rg.trials[k])
		sumW += rg.wts[k]
	}
	return sumW
}

// reverseTrials returns the weight sum the forward algorithm would have
// seen for the next atom of the old configuration: the kept original
// position plus kMax-1 freshly drawn trials.
func (rg *Regrower) reverseTrials(
	s *ljmc.System, src *rand.Source, kept *geom.Vec,
) float64 {
	sumW := rg.weight(s, kept)
	for k := 1; k < rg.KMax; k++ {
		trial := rg.place(s, src)
		sumW += rg.weight(s, &trial)
	}
	return sumW
}

// place draws one trial position: a constrained bond length along a random
// direction from the chain's current free end.
func (rg *Regrower) place(s *ljmc.System, src *rand.Source) geom.Vec {
	d := rg.Bonds.Sample(src)
	u := src.UnitVector()
	u.ScaleSelf(d / s.Box)

	x := s.Pos(s.Len() - 1)
	x.AddSelf(&u)
	x.WrapSelf()
	return x
}

// weight converts a trial atom's nonbonded energy against the
// already-placed, lower-index atoms into a Boltzmann weight. Overlapping
// trials weigh zero.
func (rg *Regrower) weight(s *ljmc.System, x *geom.Vec) float64 {
	w := s.PairEnergy(x, s.Len(), potential.LessThan)
	if w.Overlap {
		return 0
	}
	return math.Exp(-w.Energy / rg.Temperature)
}

// apply makes the system's configuration equal target, routing every
// structural change through the sanctioned mutators so the grid stays
// consistent.
func (rg *Regrower) apply(s *ljmc.System, target []geom.Vec) {
	for i := 0; i < s.Len() && i < len(target); i++ {
		s.Move(i, target[i])
	}
	for s.Len() > len(target) {
		s.Destroy(s.Len() - 1)
	}
	for i := s.Len(); i < len(target); i++ {
		s.Create(target[i])
	}
}

// arrangeNew builds the retained n-m atoms of the forward pass: a straight
// or index-reversed copy, ordered so the regrown atoms always append at
// the end of the working arrangement.
func arrangeNew(old []geom.Vec, m, c int, buf []geom.Vec) []geom.Vec {
	n := len(old)
	switch c {
	case endToEnd:
		buf = append(buf, old[:n-m]...)
	case endToStart:
		for i := n - m - 1; i >= 0; i-- {
			buf = append(buf, old[i])
		}
	case startToStart:
		for i := n - 1; i >= m; i-- {
			buf = append(buf, old[i])
		}
	case startToEnd:
		buf = append(buf, old[m:]...)
	default:
		panic("Internal ljmc growth-option error.")
	}
	return buf
}

// arrangeOld builds the full original configuration ordered so that the
// atoms deleted by option c sit at the end, in the order the forward
// algorithm would have grown them.
func arrangeOld(old []geom.Vec, c int, buf []geom.Vec) []geom.Vec {
	if c == endToEnd || c == endToStart {
		return append(buf, old...)
	}
	for i := len(old) - 1; i >= 0; i-- {
		buf = append(buf, old[i])
	}
	return buf
}
