package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime/pprof"

	"github.com/cridley/ljmc"
	"github.com/cridley/ljmc/averages"
	"github.com/cridley/ljmc/chain"
	"github.com/cridley/ljmc/geom"
	"github.com/cridley/ljmc/io"
	"github.com/cridley/ljmc/potential"
	"github.com/cridley/ljmc/rand"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		if err := fg.log.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
	if fg.prof != nil {
		pprof.StopCPUProfile()
		if err := fg.prof.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
}

func (fg *FileGroup) Init(cfg *io.RunConfig) {
	var err error
	if cfg.LogFile != "" {
		if fg.log, err = os.Create(cfg.LogFile); err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}
	if cfg.ProfileFile != "" {
		if fg.prof, err = os.Create(cfg.ProfileFile); err != nil {
			log.Fatal(err.Error())
		}
		pprof.StartCPUProfile(fg.prof)
	}
}

func main() {
	var (
		configPath    string
		exampleConfig bool
	)

	flag.StringVar(
		&configPath, "Config", "",
		"Configuration file for the run. Use -ExampleConfig for a template.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Prints an example configuration file to stdout.",
	)
	flag.Parse()

	if exampleConfig {
		fmt.Println(io.ExampleRunFile)
		return
	}
	if configPath == "" {
		log.Fatalf("Need a -Config file. Run with -ExampleConfig for a template.")
	}

	cfg, err := io.ReadConfig(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	fg := &FileGroup{}
	fg.Init(&cfg.Run)
	defer fg.Close()

	src := rand.New(cfg.Run.Seed)

	switch cfg.Run.Mode {
	case "Atom":
		atomMain(cfg, src)
	case "Chain":
		chainMain(cfg, src)
	}
}

// initialPositions reads the input snapshot, or generates a starting
// configuration: a simple cubic lattice for atoms, a straight chain for
// chains.
func initialPositions(cfg *io.Config) []geom.Vec {
	if cfg.Run.Input != "" {
		xs, err := io.ReadSnapshot(cfg.Run.Input)
		if err != nil {
			log.Fatal(err.Error())
		}
		return xs
	}
	if cfg.Run.Mode == "Chain" {
		return straightChain(cfg.Run.Atoms, cfg.Chain.Bond/cfg.Run.Box)
	}
	return cubicLattice(cfg.Run.Atoms)
}

// cubicLattice places n atoms on a simple cubic lattice filling the unit
// cube.
func cubicLattice(n int) []geom.Vec {
	side := int(math.Ceil(math.Cbrt(float64(n))))
	step := 1 / float64(side)

	xs := make([]geom.Vec, 0, n)
	for i := 0; i < side && len(xs) < n; i++ {
		for j := 0; j < side && len(xs) < n; j++ {
			for k := 0; k < side && len(xs) < n; k++ {
				xs = append(xs, geom.Vec{
					(float64(i)+0.5)*step - 0.5,
					(float64(j)+0.5)*step - 0.5,
					(float64(k)+0.5)*step - 0.5,
				})
			}
		}
	}
	return xs
}

// straightChain places n atoms in a line along x with the given spacing in
// box-length units.
func straightChain(n int, spacing float64) []geom.Vec {
	if float64(n)*spacing > 0.5 {
		log.Fatalf(
			"A straight %d-atom chain at spacing %g spans more than half "+
				"the box; provide an Input snapshot instead.", n, spacing,
		)
	}

	xs := make([]geom.Vec, n)
	for i := range xs {
		xs[i] = geom.Vec{float64(i) * spacing, 0, 0}
		xs[i].WrapSelf()
	}
	return xs
}

func finish(cfg *io.Config, sys *ljmc.System) {
	if cfg.Run.Output == "" {
		return
	}
	if err := io.WriteSnapshot(cfg.Run.Output, sys.Positions(nil)); err != nil {
		log.Fatal(err.Error())
	}
}

func atomMain(cfg *io.Config, src *rand.Source) {
	sys, err := ljmc.New(cfg.Run.Box, cfg.Run.Cutoff, initialPositions(cfg))
	if err != nil {
		log.Fatal(err.Error())
	}

	e := sys.TotalEnergy()
	if e.Overlap {
		log.Fatalf("Initial configuration contains an overlap.")
	}

	vol := cfg.Run.Box * cfg.Run.Box * cfg.Run.Box
	run := averages.Begin(
		os.Stdout, "Move ratio", "N", "E/N", "Pressure",
	)
	for blk := 1; blk <= cfg.Run.Blocks; blk++ {
		run.BlkBegin()
		for step := 0; step < cfg.Run.Steps; step++ {
			var ratio float64
			e, ratio = atomSweep(cfg, sys, src, e)
			if cfg.Atom.Activity > 0 {
				e = exchangeTrials(cfg, sys, src, e)
			}

			n := float64(sys.Len())
			rho := n / vol
			run.BlkAdd(
				ratio, n, e.Energy/n,
				rho*cfg.Run.Temperature+e.Virial/vol,
			)
		}
		run.BlkEnd(blk)
	}
	run.End()

	finish(cfg, sys)
}

// atomSweep attempts one translation move per particle and returns the
// updated energy and the acceptance ratio.
func atomSweep(
	cfg *io.Config, sys *ljmc.System, src *rand.Source,
	e potential.Interaction,
) (potential.Interaction, float64) {
	acc := 0
	for i := 0; i < sys.Len(); i++ {
		pos := sys.Pos(i)
		eOld := sys.PairEnergy(&pos, i, potential.All)
		if eOld.Overlap {
			log.Fatalf("Particle %d overlaps in the committed configuration.", i)
		}

		trial := src.Jitter(pos, cfg.Atom.DrMax)
		trial.WrapSelf()
		eNew := sys.PairEnergy(&trial, i, potential.All)
		if eNew.Overlap {
			continue
		}

		delta := (eNew.Energy - eOld.Energy) / cfg.Run.Temperature
		if src.Metropolis(delta) {
			sys.Move(i, trial)
			e = e.Add(eNew.Sub(eOld))
			acc++
		}
	}
	if sys.Len() == 0 {
		return e, 0
	}
	return e, float64(acc) / float64(sys.Len())
}

// exchangeTrials attempts one grand-canonical insertion and one deletion at
// activity z.
func exchangeTrials(
	cfg *io.Config, sys *ljmc.System, src *rand.Source,
	e potential.Interaction,
) potential.Interaction {
	z := cfg.Atom.Activity
	vol := cfg.Run.Box * cfg.Run.Box * cfg.Run.Box
	temp := cfg.Run.Temperature

	// Insertion: accept with probability z V / (N+1) exp(-dE/kT).
	trial := geom.Vec{
		src.Uniform01() - 0.5, src.Uniform01() - 0.5, src.Uniform01() - 0.5,
	}
	eNew := sys.PairEnergy(&trial, -1, potential.All)
	if !eNew.Overlap {
		delta := eNew.Energy/temp - math.Log(z*vol/float64(sys.Len()+1))
		if src.Metropolis(delta) {
			sys.Create(trial)
			e = e.Add(eNew)
		}
	}

	// Deletion: accept with probability N / (z V) exp(+dE/kT).
	if sys.Len() > 0 {
		i := src.Int(0, sys.Len()-1)
		pos := sys.Pos(i)
		eOld := sys.PairEnergy(&pos, i, potential.All)
		if eOld.Overlap {
			log.Fatalf("Particle %d overlaps in the committed configuration.", i)
		}
		delta := -eOld.Energy/temp - math.Log(float64(sys.Len())/(z*vol))
		if src.Metropolis(delta) {
			sys.Destroy(i)
			e = e.Sub(eOld)
		}
	}
	return e
}

func chainMain(cfg *io.Config, src *rand.Source) {
	sys, err := ljmc.NewChain(cfg.Run.Box, cfg.Run.Cutoff, initialPositions(cfg))
	if err != nil {
		log.Fatal(err.Error())
	}

	bonds, err := chain.NewBondSampler(
		cfg.Chain.Bond, cfg.StdDev(), cfg.Chain.DMax, cfg.Run.Box,
	)
	if err != nil {
		log.Fatal(err.Error())
	}
	rg, err := chain.NewRegrower(
		cfg.Run.Temperature, cfg.Chain.MMax, cfg.Chain.KMax, bonds,
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	e := sys.TotalEnergy()
	if e.Overlap {
		log.Fatalf("Initial chain configuration contains an overlap.")
	}

	run := averages.Begin(
		os.Stdout, "Regrow ratio", "E nonbond", "E spring",
	)
	for blk := 1; blk <= cfg.Run.Blocks; blk++ {
		run.BlkBegin()
		for step := 0; step < cfg.Run.Steps; step++ {
			var accepted bool
			e, accepted, err = rg.Regrow(sys, src, e)
			if err != nil {
				log.Fatal(err.Error())
			}

			ratio := 0.0
			if accepted {
				ratio = 1
			}
			run.BlkAdd(
				ratio, e.Energy,
				sys.SpringEnergy(cfg.Chain.Bond, cfg.Chain.KSpring),
			)
		}
		run.BlkEnd(blk)
	}
	run.End()

	finish(cfg, sys)
}
