package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cridley/ljmc/geom"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0666))
	return path
}

func TestReadConfigAtom(t *testing.T) {
	path := writeTemp(t, "run.cfg", `[Run]
Mode = Atom
Temperature = 1.5
Box = 8.0
Cutoff = 2.5
Blocks = 4
Steps = 100
Atoms = 64
Seed = 7

[Atom]
DrMax = 0.15
Activity = 0.5
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Atom", cfg.Run.Mode)
	assert.Equal(t, 1.5, cfg.Run.Temperature)
	assert.Equal(t, 64, cfg.Run.Atoms)
	assert.Equal(t, uint64(7), cfg.Run.Seed)
	assert.Equal(t, 0.15, cfg.Atom.DrMax)
	assert.Equal(t, 0.5, cfg.Atom.Activity)
}

func TestReadConfigChainDefaults(t *testing.T) {
	path := writeTemp(t, "run.cfg", `[Run]
Mode = Chain
Temperature = 1.0
Box = 20.0
Cutoff = 2.5
Blocks = 10
Steps = 1000
Atoms = 8

[Chain]
Bond = 1.0
KSpring = 400
MMax = 3
KMax = 10
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), cfg.Run.Seed, "default seed")
	assert.InDelta(t, 0.05, cfg.StdDev(), 1e-12)
	assert.InDelta(t, 1.0+3.5*0.05, cfg.Chain.DMax, 1e-12, "default DMax")
}

func TestCheckInitRejections(t *testing.T) {
	bad := []string{
		// Unknown mode.
		"[Run]\nMode = NPT\nTemperature = 1\nBox = 8\nCutoff = 2.5\n" +
			"Blocks = 1\nSteps = 1\nAtoms = 8\n",
		// Cutoff beyond half the box.
		"[Run]\nMode = Atom\nTemperature = 1\nBox = 4\nCutoff = 2.5\n" +
			"Blocks = 1\nSteps = 1\nAtoms = 8\n[Atom]\nDrMax = 0.1\n",
		// Neither input snapshot nor atom count.
		"[Run]\nMode = Atom\nTemperature = 1\nBox = 8\nCutoff = 2.5\n" +
			"Blocks = 1\nSteps = 1\n[Atom]\nDrMax = 0.1\n",
		// Missing DrMax.
		"[Run]\nMode = Atom\nTemperature = 1\nBox = 8\nCutoff = 2.5\n" +
			"Blocks = 1\nSteps = 1\nAtoms = 8\n",
	}

	for i, body := range bad {
		path := writeTemp(t, "bad.cfg", body)
		_, err := ReadConfig(path)
		assert.Error(t, err, "case %d", i)
	}
}

// The shipped example must itself be a valid configuration.
func TestExampleRunFileParses(t *testing.T) {
	path := writeTemp(t, "example.cfg", ExampleRunFile)
	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Atom", cfg.Run.Mode)
	assert.Equal(t, 2.5, cfg.Run.Cutoff)
}

func TestSnapshotRoundTrip(t *testing.T) {
	xs := []geom.Vec{
		{-0.5, 0, 0.25},
		{0.125, -0.25, 0.4999},
		{0.1, 0.2, -0.3},
	}
	path := filepath.Join(t.TempDir(), "cnf.out")
	require.NoError(t, WriteSnapshot(path, xs))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, got, len(xs))
	for i := range xs {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, xs[i][j], got[i][j], 1e-11,
				"atom %d, coordinate %d", i, j)
		}
	}
}
