package rand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestDeterminism(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Uniform01(), b.Uniform01())
		assert.Equal(t, a.Int(0, 99), b.Int(0, 99))
		assert.Equal(t, a.Normal(1, 0.5), b.Normal(1, 0.5))
		assert.Equal(t, a.UnitVector(), b.UnitVector())
	}

	c := New(8)
	same := true
	for i := 0; i < 10; i++ {
		same = same && a.Uniform01() == c.Uniform01()
	}
	assert.False(t, same, "Different seeds produced the same sequence.")
}

func TestIntBounds(t *testing.T) {
	src := New(3)
	seen := map[int]int{}
	for i := 0; i < 10000; i++ {
		k := src.Int(2, 5)
		if k < 2 || k > 5 {
			t.Fatalf("Int(2, 5) returned %d", k)
		}
		seen[k]++
	}
	for k := 2; k <= 5; k++ {
		if seen[k] == 0 {
			t.Errorf("Int(2, 5) never returned %d", k)
		}
	}

	assert.Equal(t, 4, src.Int(4, 4))
}

func TestUniform01(t *testing.T) {
	src := New(11)
	vals := make([]float64, 20000)
	for i := range vals {
		vals[i] = src.Uniform01()
		if vals[i] < 0 || vals[i] >= 1 {
			t.Fatalf("Uniform01 returned %g", vals[i])
		}
	}
	assert.InDelta(t, 0.5, stat.Mean(vals, nil), 0.01)
}

func TestNormal(t *testing.T) {
	src := New(13)
	vals := make([]float64, 50000)
	for i := range vals {
		vals[i] = src.Normal(2, 0.25)
	}
	assert.InDelta(t, 2.0, stat.Mean(vals, nil), 0.01)
	assert.InDelta(t, 0.25, stat.StdDev(vals, nil), 0.01)
}

func TestUnitVector(t *testing.T) {
	src := New(17)
	var mean [3]float64
	n := 20000
	for i := 0; i < n; i++ {
		v := src.UnitVector()
		assert.InDelta(t, 1.0, math.Sqrt(v.Norm2()), 1e-12)
		for j := 0; j < 3; j++ {
			mean[j] += v[j]
		}
	}
	for j := 0; j < 3; j++ {
		assert.InDelta(t, 0.0, mean[j]/float64(n), 0.02,
			"component %d is biased", j)
	}
}

func TestPick(t *testing.T) {
	src := New(19)
	ws := []float64{0, 1, 0, 3}
	counts := make([]int, len(ws))
	n := 40000
	for i := 0; i < n; i++ {
		counts[src.Pick(ws)]++
	}

	assert.Equal(t, 0, counts[0])
	assert.Equal(t, 0, counts[2])
	assert.InDelta(t, 0.25, float64(counts[1])/float64(n), 0.02)
	assert.InDelta(t, 0.75, float64(counts[3])/float64(n), 0.02)
}

func TestMetropolis(t *testing.T) {
	src := New(23)
	assert.True(t, src.Metropolis(-1))
	assert.True(t, src.Metropolis(0))
	assert.False(t, src.Metropolis(1000))

	acc := 0
	n := 50000
	for i := 0; i < n; i++ {
		if src.Metropolis(1) {
			acc++
		}
	}
	assert.InDelta(t, math.Exp(-1), float64(acc)/float64(n), 0.01)
}

func TestJitter(t *testing.T) {
	src := New(29)
	for i := 0; i < 1000; i++ {
		v := src.Jitter([3]float64{0.1, 0.2, 0.3}, 0.05)
		if math.Abs(v[0]-0.1) > 0.05 || math.Abs(v[1]-0.2) > 0.05 ||
			math.Abs(v[2]-0.3) > 0.05 {
			t.Fatalf("Jitter moved farther than dMax: %v", v)
		}
	}
}
