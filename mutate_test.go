package ljmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cridley/ljmc/geom"
	"github.com/cridley/ljmc/rand"
)

func randomVec(src *rand.Source) geom.Vec {
	return geom.Vec{
		src.Uniform01() - 0.5, src.Uniform01() - 0.5, src.Uniform01() - 0.5,
	}
}

// After any sequence of move/create/destroy, every particle's recorded
// cell must equal the cell containing its position and memberships must be
// bijective.
func TestMutatorsKeepGridConsistent(t *testing.T) {
	src := rand.New(99)
	xs := make([]geom.Vec, 30)
	for i := range xs {
		xs[i] = randomVec(src)
	}
	sys, err := New(8, 2.0, xs)
	require.NoError(t, err)
	require.NoError(t, sys.Check())

	for step := 0; step < 1000; step++ {
		switch src.Int(0, 2) {
		case 0:
			sys.Move(src.Int(0, sys.Len()-1), randomVec(src))
		case 1:
			sys.Create(randomVec(src))
		case 2:
			if sys.Len() > 1 {
				sys.Destroy(src.Int(0, sys.Len()-1))
			}
		}
		if step%50 == 0 {
			require.NoError(t, sys.Check(), "after step %d", step)
		}
	}
	require.NoError(t, sys.Check())
}

// Create immediately undone by destroying the last index restores the
// particle count, configuration, and grid state.
func TestCreateDestroyInverse(t *testing.T) {
	src := rand.New(7)
	xs := make([]geom.Vec, 20)
	for i := range xs {
		xs[i] = randomVec(src)
	}
	sys, err := New(8, 2.0, xs)
	require.NoError(t, err)

	before := sys.Positions(nil)
	eBefore := sys.TotalEnergy()

	idx := sys.Create(geom.Vec{0.1, 0.2, 0.3})
	assert.Equal(t, len(xs), idx)
	assert.Equal(t, len(xs)+1, sys.Len())
	require.NoError(t, sys.Check())

	sys.Destroy(idx)
	assert.Equal(t, len(xs), sys.Len())
	require.NoError(t, sys.Check())

	after := sys.Positions(nil)
	assert.Equal(t, before, after)
	assert.Equal(t, eBefore, sys.TotalEnergy())
}

// Destroying an interior index moves the last particle into its slot.
func TestDestroyCompaction(t *testing.T) {
	src := rand.New(21)
	xs := make([]geom.Vec, 10)
	for i := range xs {
		xs[i] = randomVec(src)
	}
	sys, err := New(8, 2.0, xs)
	require.NoError(t, err)

	lastPos := sys.Pos(9)
	sys.Destroy(3)
	assert.Equal(t, 9, sys.Len())
	assert.Equal(t, lastPos, sys.Pos(3))
	require.NoError(t, sys.Check())
}

func TestMoveRelocates(t *testing.T) {
	xs := []geom.Vec{{-0.4, -0.4, -0.4}, {0.4, 0.4, 0.4}}
	sys, err := New(10, 2.5, xs)
	require.NoError(t, err)

	// Across the periodic boundary and back.
	sys.Move(0, geom.Vec{0.6, 0, 0})
	assert.InDelta(t, -0.4, sys.Pos(0)[0], 1e-12)
	require.NoError(t, sys.Check())

	sys.Move(0, geom.Vec{-0.4, -0.4, -0.4})
	require.NoError(t, sys.Check())
}
