// Package averages provides the block-averaging bookkeeping for a Monte
// Carlo run: per-block means of named variables, printed as the run
// proceeds, and run-level means and standard errors at the end.
package averages

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Run accumulates block averages for a fixed set of named variables.
type Run struct {
	w     io.Writer
	names []string

	blkSum []float64
	blkNrm float64

	// Per-variable block averages, one inner slice per variable.
	blocks [][]float64
}

// Begin starts a run over the given variables and writes the table heading.
func Begin(w io.Writer, names ...string) *Run {
	r := &Run{
		w:      w,
		names:  names,
		blkSum: make([]float64, len(names)),
		blocks: make([][]float64, len(names)),
	}

	fmt.Fprintf(w, "%8s", "Block")
	for _, name := range names {
		fmt.Fprintf(w, " %15s", name)
	}
	fmt.Fprintln(w)
	return r
}

// BlkBegin zeroes the accumulators for a new block.
func (r *Run) BlkBegin() {
	for i := range r.blkSum {
		r.blkSum[i] = 0
	}
	r.blkNrm = 0
}

// BlkAdd accumulates one step's instantaneous values, in the same order as
// the names passed to Begin.
func (r *Run) BlkAdd(vals ...float64) {
	if len(vals) != len(r.blkSum) {
		panic("averages: value count does not match variable count")
	}
	for i, v := range vals {
		r.blkSum[i] += v
	}
	r.blkNrm++
}

// BlkEnd computes this block's averages, records them for the run summary,
// and writes one table row.
func (r *Run) BlkEnd(blk int) {
	fmt.Fprintf(r.w, "%8d", blk)
	for i, sum := range r.blkSum {
		avg := sum / r.blkNrm
		r.blocks[i] = append(r.blocks[i], avg)
		fmt.Fprintf(r.w, " %15.6f", avg)
	}
	fmt.Fprintln(r.w)
}

// End writes the run averages and the standard errors estimated from the
// scatter of block averages.
func (r *Run) End() {
	fmt.Fprintf(r.w, "%8s", "Run")
	for i := range r.names {
		fmt.Fprintf(r.w, " %15.6f", stat.Mean(r.blocks[i], nil))
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "%8s", "Error")
	for i := range r.names {
		fmt.Fprintf(r.w, " %15.6f", r.stdErr(i))
	}
	fmt.Fprintln(r.w)
}

// Mean returns the run mean of variable i.
func (r *Run) Mean(i int) float64 { return stat.Mean(r.blocks[i], nil) }

// stdErr estimates the error of the run mean from the block scatter.
func (r *Run) stdErr(i int) float64 {
	nb := len(r.blocks[i])
	if nb < 2 {
		return 0
	}
	return stat.StdDev(r.blocks[i], nil) / math.Sqrt(float64(nb))
}
