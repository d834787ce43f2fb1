package io

import (
	"fmt"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/cridley/ljmc/geom"
)

// ReadSnapshot reads a configuration snapshot: one "x y z" row per atom,
// whitespace separated, in box-length units.
func ReadSnapshot(fname string) (xs []geom.Vec, err error) {
	// table reports failures by panicking; convert back to an error to keep
	// this function's contract.
	defer func() {
		if r := recover(); r != nil {
			xs, err = nil, fmt.Errorf("%v", r)
		}
	}()
	cols := table.TextFile(fname).ReadFloat64s([]int{0, 1, 2})

	xs = make([]geom.Vec, len(cols[0]))
	for i := range xs {
		xs[i] = geom.Vec{cols[0][i], cols[1][i], cols[2][i]}
		xs[i].WrapSelf()
	}
	return xs, nil
}

// WriteSnapshot writes a configuration snapshot in the format ReadSnapshot
// reads.
func WriteSnapshot(fname string, xs []geom.Vec) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	for i := range xs {
		_, err := fmt.Fprintf(
			f, "%18.12f %18.12f %18.12f\n", xs[i][0], xs[i][1], xs[i][2],
		)
		if err != nil {
			return err
		}
	}
	return nil
}
