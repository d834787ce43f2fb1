package potential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairClosedForm(t *testing.T) {
	lj := LJ{Cutoff: 2.5}

	// At r = 1 both terms cancel: energy 0, virial 8(2-1), Laplacian
	// 48(22-5).
	w := lj.Pair(1.0)
	assert.False(t, w.Overlap)
	assert.InDelta(t, 0.0, w.Energy, 1e-12)
	assert.InDelta(t, 8.0, w.Virial, 1e-12)
	assert.InDelta(t, 816.0, w.Laplacian, 1e-12)

	// At the minimum r = 2^(1/6): sr6 = 1/2, energy -1, virial 0.
	r2 := 1.2599210498948732 // 2^(1/3)
	w = lj.Pair(r2)
	assert.False(t, w.Overlap)
	assert.InDelta(t, -1.0, w.Energy, 1e-12)
	assert.InDelta(t, 0.0, w.Virial, 1e-12)
}

func TestPairCutoff(t *testing.T) {
	lj := LJ{Cutoff: 2.5}
	assert.Equal(t, Interaction{}, lj.Pair(6.25))
	assert.Equal(t, Interaction{}, lj.Pair(100.0))
	assert.NotEqual(t, Interaction{}, lj.Pair(6.2499))
}

func TestPairOverlap(t *testing.T) {
	lj := LJ{Cutoff: 2.5}

	w := lj.Pair(0.5) // sr2 = 2 > 1.77
	assert.True(t, w.Overlap)
	assert.Equal(t, 0.0, w.Energy)

	// Just outside the threshold: sr2 slightly below 1.77.
	w = lj.Pair(1/1.76 + 1e-9)
	assert.False(t, w.Overlap)
}

func TestInteractionAddSub(t *testing.T) {
	a := Interaction{Energy: 1, Virial: 2, Laplacian: 3}
	b := Interaction{Energy: 10, Virial: 20, Laplacian: 30, Overlap: true}

	sum := a.Add(b)
	assert.Equal(t, Interaction{Energy: 11, Virial: 22, Laplacian: 33,
		Overlap: true}, sum)

	// Overlap propagates by OR even under subtraction.
	diff := a.Sub(b)
	assert.Equal(t, Interaction{Energy: -9, Virial: -18, Laplacian: -27,
		Overlap: true}, diff)

	diff = a.Sub(a)
	assert.False(t, diff.Overlap)
	assert.Equal(t, 0.0, diff.Energy)
}

func TestHarmonic(t *testing.T) {
	assert.InDelta(t, 0.0, Harmonic(1, 1, 400), 1e-12)
	assert.InDelta(t, 2.0, Harmonic(1.1, 1, 400), 1e-10)
	assert.InDelta(t, 2.0, Harmonic(0.9, 1, 400), 1e-10)
}
