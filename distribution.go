package mt19937

import (
	"math"
	"math/rand/v2"
)

var _ rand.Source = (*Generator)(nil)

// Uint64 returns a 64-bit value built from two consecutive outputs, the first
// in the high half. It lets a Generator back a math/rand/v2 Rand.
func (g *Generator) Uint64() uint64 {
	hi := uint64(g.Uint32())
	lo := uint64(g.Uint32())
	return hi<<32 | lo
}

// Float64 generates a random float64 in [0, 1) with 53-bit resolution.
// This matches numpy's random_sample() and genrand_res53 of the reference code.
func (g *Generator) Float64() float64 {
	a := g.Uint32() >> 5
	b := g.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Float32 generates a random float32 in [0, 1) from the top 24 bits of one
// output. Rounding a Float64 draw instead can produce exactly 1.
func (g *Generator) Float32() float32 {
	return float32(g.Uint32()>>8) * (1.0 / (1 << 24))
}

// Uniform generates a random float64 in [low, high).
// This matches numpy.random.uniform(low, high).
func (g *Generator) Uniform(low, high float64) float64 {
	return low + (high-low)*g.Float64()
}

// UniformFloat32 generates a random float32 in [low, high). It consumes two
// outputs like Uniform; a draw that rounds up to high is replaced by the
// largest float32 below high.
func (g *Generator) UniformFloat32(low, high float32) float32 {
	v := float32(g.Uniform(float64(low), float64(high)))
	if v >= high && high > low {
		return math.Nextafter32(high, low)
	}
	return v
}

// Intn returns a random int in [0, n) by reducing the top 31 bits of one
// output modulo n. Unlike math/rand it returns 0 instead of panicking when
// n <= 0. This is not numpy's randint, which masks and redraws; the result is
// slightly biased for n that do not divide 2^31.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Uint32()>>1) % n
}

// RandInt32 generates a random int32 in the full int32 range.
// This matches numpy.random.RandomState.randint(INT32_MIN, INT32_MAX+1),
// which draws a uint32 and subtracts 2^31.
func (g *Generator) RandInt32() int32 {
	return int32(g.Uint32() - 0x80000000)
}

// ShuffleInt32 randomly permutes arr in place (Fisher-Yates).
func (g *Generator) ShuffleInt32(arr []int32) {
	for i := len(arr) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		arr[i], arr[j] = arr[j], arr[i]
	}
}
