package ljmc

import (
	"github.com/cridley/ljmc/geom"
)

// Move writes a new position for particle i and relocates its grid
// membership when its cell changes.
func (s *System) Move(i int, x geom.Vec) {
	x.WrapSelf()
	s.xs[i] = x
	s.grid.Relocate(i, s.grid.CellOf(&x))
}

// Create appends a new particle at the next free index and registers it
// with the grid. Returns the new index.
func (s *System) Create(x geom.Vec) int {
	x.WrapSelf()
	s.xs = append(s.xs, x)
	s.grid.Append(s.grid.CellOf(&x))
	return len(s.xs) - 1
}

// Destroy removes particle i, compacting the particle array by moving the
// last live particle into slot i. Grid membership is updated for both the
// removed slot and the relocated particle.
func (s *System) Destroy(i int) {
	last := len(s.xs) - 1
	lastCell := s.grid.Cell(last)
	s.grid.Pop()
	if i != last {
		s.xs[i] = s.xs[last]
		s.grid.Relocate(i, lastCell)
	}
	s.xs = s.xs[:last]
}
