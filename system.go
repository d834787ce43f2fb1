package ljmc

import (
	"fmt"

	"github.com/cridley/ljmc/geom"
	"github.com/cridley/ljmc/grid"
	"github.com/cridley/ljmc/potential"
)

// System is the simulation context: the particle positions, the periodic
// box, the cell grid, and the pair potential. All components operate on one
// System rather than on ambient globals, and all structural changes go
// through Move, Create, and Destroy so the grid invariants hold.
//
// Positions are stored in box-length units, wrapped to [-0.5, 0.5); the
// box edge length and the cutoff are in sigma units.
type System struct {
	Box float64
	LJ  potential.LJ

	xs    []geom.Vec
	grid  *grid.Grid
	chain bool

	// Scratch buffers for neighbor scans. The system is single-threaded,
	// so one set suffices.
	cbuf, nbuf []int
}

// New builds a System for a fluid of unconnected atoms.
func New(box, cutoff float64, xs []geom.Vec) (*System, error) {
	return newSystem(box, cutoff, xs, false)
}

// NewChain builds a System whose particles form a linear chain: particle i
// is bonded to i-1 and i+1, and nonbonded interactions exclude the bonded
// neighbors.
func NewChain(box, cutoff float64, xs []geom.Vec) (*System, error) {
	return newSystem(box, cutoff, xs, true)
}

func newSystem(box, cutoff float64, xs []geom.Vec, chain bool) (*System, error) {
	if box <= 0 {
		return nil, fmt.Errorf("ljmc: box length must be positive, got %g", box)
	}
	if cutoff/box > 0.5 {
		return nil, ErrCutoff
	}

	s := &System{
		Box:   box,
		LJ:    potential.LJ{Cutoff: cutoff},
		xs:    make([]geom.Vec, len(xs)),
		chain: chain,
	}
	copy(s.xs, xs)
	for i := range s.xs {
		s.xs[i].WrapSelf()
	}

	g, err := grid.New(box, cutoff, s.xs)
	if err != nil {
		return nil, err
	}
	s.grid = g

	return s, nil
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.xs) }

// Pos returns the position of particle i in box-length units.
func (s *System) Pos(i int) geom.Vec { return s.xs[i] }

// Chain reports whether the system carries chain topology.
func (s *System) Chain() bool { return s.chain }

// Positions appends a snapshot of every live position to buf.
func (s *System) Positions(buf []geom.Vec) []geom.Vec {
	return append(buf, s.xs...)
}

// excluded reports whether the pair (i, j) is excluded from nonbonded
// interactions: always the self pair, plus the chemically bonded neighbors
// when the system is a chain.
func (s *System) excluded(i, j int) bool {
	if i == j {
		return true
	}
	if !s.chain || i < 0 {
		return false
	}
	return i-j == 1 || j-i == 1
}

// Check verifies the grid invariants: every live particle's recorded cell
// is the cell geometrically containing its position, and every cell's
// membership matches the particles inside it. It is cheap enough to run in
// tests after every structural change.
func (s *System) Check() error {
	seen := make([]bool, s.Len())
	for c := 0; c < s.grid.Volume; c++ {
		for _, p := range s.grid.Members(c, nil) {
			if p < 0 || p >= s.Len() {
				return fmt.Errorf("%w: %d in cell %d", ErrIndex, p, c)
			}
			if seen[p] {
				return fmt.Errorf("ljmc: particle %d in two cells", p)
			}
			seen[p] = true
			if got := s.grid.CellOf(&s.xs[p]); got != c {
				return fmt.Errorf(
					"ljmc: particle %d listed in cell %d but located in %d",
					p, c, got,
				)
			}
		}
	}
	for p, ok := range seen {
		if !ok {
			return fmt.Errorf("ljmc: particle %d in no cell", p)
		}
	}
	return nil
}
