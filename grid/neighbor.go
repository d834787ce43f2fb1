package grid

// halfOffsets is the canonical half of the 26 neighbor directions: the
// strictly "positive" directions under (z, y, x) lexicographic order. Every
// unordered pair of adjacent cells appears in the half scan of exactly one
// of its two cells, which is what lets the full-system energy sweep visit
// each pair once.
var halfOffsets = [13][3]int{}

// fullOffsets is all 26 neighbor directions.
var fullOffsets = [26][3]int{}

func init() {
	h, f := 0, 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				fullOffsets[f] = [3]int{dx, dy, dz}
				f++
				if dz > 0 || (dz == 0 && dy > 0) ||
					(dz == 0 && dy == 0 && dx > 0) {
					halfOffsets[h] = [3]int{dx, dy, dz}
					h++
				}
			}
		}
	}
	if h != 13 || f != 26 {
		panic("Internal ljmc setup error.")
	}
}

// Adjacent appends to buf the flat indices of the cells adjacent to c under
// periodic wrap, starting with c itself: all 27 when half is false, the
// canonical 14 when half is true.
func (g *Grid) Adjacent(c int, half bool, buf []int) []int {
	x, y, z := g.Coords(c)
	buf = append(buf, c)

	offsets := fullOffsets[:]
	if half {
		offsets = halfOffsets[:]
	}
	for _, o := range offsets {
		buf = append(buf, g.Idx(
			pMod(x+o[0], g.Cells),
			pMod(y+o[1], g.Cells),
			pMod(z+o[2], g.Cells),
		))
	}
	return buf
}

// Neighbors appends to buf the indices of every particle in the cells
// adjacent to c (including c itself), under the same half convention as
// Adjacent. The caller is responsible for excluding its own index.
func (g *Grid) Neighbors(c int, half bool, cbuf []int, buf []int) ([]int, []int) {
	cbuf = g.Adjacent(c, half, cbuf)
	for _, cc := range cbuf {
		buf = g.Members(cc, buf)
	}
	return cbuf, buf
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}
