package io

import (
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"
)

const ExampleRunFile = `[Run]

#######################
# Required Parameters #
#######################

# Mode selects the kind of Monte Carlo run:
# [ Atom | Chain ]
# Atom runs translate single particles (and, with a positive Activity,
# insert and delete them). Chain runs regrow a linear chain with
# configurational bias.
Mode = Atom

# Temperature in reduced units (kT / epsilon).
Temperature = 1.0

# Box edge length in sigma units.
Box = 8.0

# Pair-potential cutoff in sigma units. Must not exceed half the box
# length, and the box must span at least three cells at this cutoff.
Cutoff = 2.5

# Number of blocks and steps per block. One step attempts one sweep of
# trial moves.
Blocks = 10
Steps  = 1000

# Number of particles (Atom mode) or chain atoms (Chain mode) when no
# input snapshot is given. Atom mode starts from a simple cubic lattice,
# Chain mode from a straight chain. Required unless Input is set.
Atoms = 256

#######################
# Optional Parameters #
#######################

# Input/output snapshots: one "x y z" row per atom, box-length units.
# Input  = cnf.inp
# Output = cnf.out

# Random-number seed. Identically seeded runs reproduce identical move
# sequences. Default is 1.
# Seed = 1

# Output files which are useful for profiling and debugging.
# LogFile = log.out
# ProfileFile = prof.out

[Atom]

# Maximum single-particle displacement per trial move, box-length units.
DrMax = 0.15

# Activity z for grand-canonical insertion/deletion trials. Zero (the
# default) disables them and the particle count stays fixed.
# Activity = 0.5

[Chain]

# Nominal bond length in sigma units and the harmonic spring constant.
Bond    = 1.0
KSpring = 400

# Most atoms regrown per move and trial placements per regrown atom.
MMax = 3
KMax = 10

# Hard upper bound on trial bond lengths. Must clear Bond by at least
# three Gaussian spreads sqrt(Temperature/KSpring) and stay under half
# the box. Default is Bond + 3.5 spreads.
# DMax = 1.2`

// RunConfig holds the parameters shared by every mode.
type RunConfig struct {
	// Required
	Mode        string
	Temperature float64
	Box         float64
	Cutoff      float64
	Blocks      int
	Steps       int

	// Optional
	Atoms       int
	Input       string
	Output      string
	Seed        uint64
	LogFile     string
	ProfileFile string
}

// AtomConfig holds Atom-mode parameters.
type AtomConfig struct {
	DrMax    float64
	Activity float64
}

// ChainConfig holds Chain-mode parameters.
type ChainConfig struct {
	Bond    float64
	KSpring float64
	MMax    int
	KMax    int

	// Optional
	DMax float64
}

type Config struct {
	Run   RunConfig
	Atom  AtomConfig
	Chain ChainConfig
}

// ReadConfig reads and validates a run configuration file.
func ReadConfig(fname string) (*Config, error) {
	c := &Config{}
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, err
	}
	if err := c.CheckInit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) CheckInit() error {
	r := &c.Run

	if r.Mode != "Atom" && r.Mode != "Chain" {
		return fmt.Errorf(
			"Mode must be 'Atom' or 'Chain', but is '%s'.", r.Mode,
		)
	}
	if r.Temperature <= 0 {
		return fmt.Errorf(
			"Need a positive Temperature, but got %g.", r.Temperature,
		)
	}
	if r.Box <= 0 {
		return fmt.Errorf("Need a positive Box length, but got %g.", r.Box)
	}
	if r.Cutoff <= 0 || r.Cutoff > r.Box/2 {
		return fmt.Errorf(
			"Cutoff must be in (0, %g] for Box = %g, but is %g.",
			r.Box/2, r.Box, r.Cutoff,
		)
	}
	if r.Blocks <= 0 || r.Steps <= 0 {
		return fmt.Errorf(
			"Need positive Blocks and Steps, but got %d and %d.",
			r.Blocks, r.Steps,
		)
	}
	if r.Input == "" && r.Atoms <= 0 {
		return fmt.Errorf("Need either an Input snapshot or a positive Atoms.")
	}
	if r.Seed == 0 {
		r.Seed = 1
	}

	if r.Mode == "Atom" {
		return c.checkAtom()
	}
	return c.checkChain()
}

func (c *Config) checkAtom() error {
	a := &c.Atom
	if a.DrMax <= 0 {
		return fmt.Errorf(
			"Need a positive DrMax in Atom mode, but got %g.", a.DrMax,
		)
	}
	if a.Activity < 0 {
		return fmt.Errorf(
			"Activity may not be negative, but is %g.", a.Activity,
		)
	}
	return nil
}

func (c *Config) checkChain() error {
	ch := &c.Chain
	if ch.Bond <= 0 {
		return fmt.Errorf(
			"Need a positive Bond in Chain mode, but got %g.", ch.Bond,
		)
	}
	if ch.KSpring <= 0 {
		return fmt.Errorf(
			"Need a positive KSpring in Chain mode, but got %g.", ch.KSpring,
		)
	}
	if ch.MMax < 1 || ch.KMax < 1 {
		return fmt.Errorf(
			"Need MMax >= 1 and KMax >= 1, but got %d and %d.",
			ch.MMax, ch.KMax,
		)
	}

	if ch.DMax == 0 {
		ch.DMax = ch.Bond + 3.5*c.StdDev()
	}
	// Full geometric validation happens in chain.NewBondSampler; this only
	// catches what is knowable without building the system.
	if ch.DMax < ch.Bond {
		return fmt.Errorf("DMax = %g is below Bond = %g.", ch.DMax, ch.Bond)
	}
	return nil
}

// StdDev returns the bond-length Gaussian spread sqrt(kT / kSpring).
func (c *Config) StdDev() float64 {
	return math.Sqrt(c.Run.Temperature / c.Chain.KSpring)
}
