package grid

import (
	"fmt"
	"math"

	"github.com/cridley/ljmc/geom"
)

// Grid is a cell-linked list over the periodic unit cube. The cube is
// partitioned into Cells^3 cubic cells, each at least as wide as the
// interaction cutoff, so only same-cell and adjacent-cell particles can
// interact. Particle membership is kept in intrusive doubly-linked lists,
// giving O(1) insertion, removal, and relocation.
//
// The grid is built once per run at a fixed box size and maintained
// incrementally afterwards; it is never re-tessellated.
type Grid struct {
	Cells  int // cells per dimension
	Length int // Cells
	Area   int // Cells^2
	Volume int // Cells^3

	head []int // first member of each cell, -1 when empty
	next []int // per-particle forward link, -1 terminated
	prev []int // per-particle backward link, -1 at the head
	cell []int // current cell of each particle
}

// New builds a grid for a periodic box of the given edge length and
// interaction cutoff (both in the same units) and registers the initial
// positions. Positions are in box-length units, wrapped to [-0.5, 0.5).
//
// The cutoff may not exceed half the box length, and the box must span at
// least three cells at that cutoff so that the 27-cell adjacency scan
// visits each cell at most once.
func New(box, cutoff float64, xs []geom.Vec) (*Grid, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("grid: cutoff must be positive, got %g", cutoff)
	}
	if cutoff/box > 0.5 {
		return nil, fmt.Errorf(
			"grid: cutoff %g exceeds half the box length %g", cutoff, box,
		)
	}

	sc := int(math.Floor(box / cutoff))
	if sc < 3 {
		return nil, fmt.Errorf(
			"grid: box of length %g spans only %d cells at cutoff %g, need 3",
			box, sc, cutoff,
		)
	}

	g := &Grid{
		Cells:  sc,
		Length: sc,
		Area:   sc * sc,
		Volume: sc * sc * sc,
	}
	g.head = make([]int, g.Volume)
	for i := range g.head {
		g.head[i] = -1
	}

	for i := range xs {
		g.Append(g.CellOf(&xs[i]))
	}
	return g, nil
}

// Len returns the number of registered particles.
func (g *Grid) Len() int { return len(g.cell) }

// Idx returns the flat cell index of cell coordinates (x, y, z).
func (g *Grid) Idx(x, y, z int) int {
	return x + y*g.Length + z*g.Area
}

// Coords returns the cell coordinates of a flat cell index.
func (g *Grid) Coords(c int) (x, y, z int) {
	x = c % g.Length
	y = (c % g.Area) / g.Length
	z = c / g.Area
	return x, y, z
}

// CellOf returns the flat index of the cell geometrically containing v.
func (g *Grid) CellOf(v *geom.Vec) int {
	var c [3]int
	for i := 0; i < 3; i++ {
		c[i] = int((v[i] + 0.5) * float64(g.Cells))
		// Guards against v[i] sitting exactly on a wrap boundary.
		if c[i] >= g.Cells {
			c[i] = g.Cells - 1
		} else if c[i] < 0 {
			c[i] = 0
		}
	}
	return g.Idx(c[0], c[1], c[2])
}

// Cell returns the cell currently recorded for particle p.
func (g *Grid) Cell(p int) int { return g.cell[p] }

// Append registers a new particle with index Len() as a member of cell c.
func (g *Grid) Append(c int) {
	g.cell = append(g.cell, c)
	g.next = append(g.next, -1)
	g.prev = append(g.prev, -1)
	g.link(len(g.cell)-1, c)
}

// Pop unregisters the particle with the highest index. Destroy compacts the
// particle array by moving the last particle into the freed slot, so the
// last index is the only one that ever leaves entirely.
func (g *Grid) Pop() {
	p := len(g.cell) - 1
	g.unlink(p)
	g.cell = g.cell[:p]
	g.next = g.next[:p]
	g.prev = g.prev[:p]
}

// Relocate moves particle p into cell c. A no-op when p is already there.
func (g *Grid) Relocate(p, c int) {
	if g.cell[p] == c {
		return
	}
	g.unlink(p)
	g.link(p, c)
}

func (g *Grid) link(p, c int) {
	g.cell[p] = c
	g.prev[p] = -1
	g.next[p] = g.head[c]
	if g.head[c] >= 0 {
		g.prev[g.head[c]] = p
	}
	g.head[c] = p
}

func (g *Grid) unlink(p int) {
	if g.prev[p] >= 0 {
		g.next[g.prev[p]] = g.next[p]
	} else {
		g.head[g.cell[p]] = g.next[p]
	}
	if g.next[p] >= 0 {
		g.prev[g.next[p]] = g.prev[p]
	}
	g.next[p], g.prev[p] = -1, -1
}

// Members appends the particle indices in cell c to buf and returns it.
func (g *Grid) Members(c int, buf []int) []int {
	for p := g.head[c]; p >= 0; p = g.next[p] {
		buf = append(buf, p)
	}
	return buf
}
