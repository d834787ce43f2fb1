package geom

import (
	"math"
)

// Vec is a position or displacement in box-length units. Positions live in
// the periodic unit cube, with every coordinate wrapped to [-0.5, 0.5).
type Vec [3]float64

// WrapSelf maps each coordinate of v into [-0.5, 0.5).
func (v *Vec) WrapSelf() {
	for i := 0; i < 3; i++ {
		v[i] -= math.Floor(v[i] + 0.5)
	}
}

// AddSelf adds u to v in place.
func (v *Vec) AddSelf(u *Vec) {
	v[0] += u[0]
	v[1] += u[1]
	v[2] += u[2]
}

// ScaleSelf multiplies every coordinate of v by s.
func (v *Vec) ScaleSelf(s float64) {
	v[0] *= s
	v[1] *= s
	v[2] *= s
}

// Norm2 returns the squared length of v.
func (v *Vec) Norm2() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// MinImage returns the minimum-image displacement from b to a. Both inputs
// must already be wrapped; the result has every coordinate in [-0.5, 0.5].
func MinImage(a, b *Vec) Vec {
	d := Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
	d.WrapSelf()
	return d
}

// Dist2 returns the squared minimum-image separation of a and b.
func Dist2(a, b *Vec) float64 {
	d := MinImage(a, b)
	return d.Norm2()
}
