package ljmc

import "errors"

// Fatal configuration and invariant faults. A move that is merely rejected
// is not an error: callers see accepted == false and an unchanged system.
var (
	// ErrCutoff indicates a cutoff longer than half the box edge.
	ErrCutoff = errors.New("ljmc: cutoff exceeds half the box length")

	// ErrOverlap indicates an overlap in a configuration that should have
	// been overlap-free by construction.
	ErrOverlap = errors.New("ljmc: overlap in committed configuration")

	// ErrWeight indicates a reconstructed-old Rosenbluth weight near zero.
	// The old configuration is valid by construction, so its weight cannot
	// legitimately vanish.
	ErrWeight = errors.New("ljmc: reconstructed Rosenbluth weight vanished")

	// ErrIndex indicates a particle index outside the live range.
	ErrIndex = errors.New("ljmc: particle index out of range")
)
