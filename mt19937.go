// Package mt19937 implements the MT19937 Mersenne Twister pseudorandom number
// generator with output that is bit-for-bit identical to the reference
// algorithm of Matsumoto and Nishimura.
//
// Every generator is seeded at construction and owned by its caller; there is
// no package-level generator. The raw state can be exported and imported so
// that other implementations of the same algorithm (C++ std::mt19937,
// Python's random module, NumPy's RandomState) can be checked against this one.
//
// MT19937 is not a cryptographically secure generator. Its full state can be
// recovered from 624 consecutive outputs (see Recover).
//
// Basic usage:
//
//	g := mt19937.New(5489)
//	x := g.Uint32() // 3499211612
package mt19937

const (
	// N is the number of 32-bit words in the generator state.
	N = 624
	// M is the middle-word offset used by the twist.
	M = 397

	// DefaultSeed is the seed used by the reference implementation when none
	// is supplied.
	DefaultSeed = 5489

	// MatrixA is the twist matrix constant.
	MatrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000

	initMultiplier = 1812433253
)

// Generator is an MT19937 generator. It is not safe for concurrent use; see
// Locked.
type Generator struct {
	mt  [N]uint32
	mti int
}

// New creates a generator seeded with seed. All 32-bit values, including 0,
// are valid seeds. The first call to Uint32 regenerates the state.
func New(seed uint32) *Generator {
	g := &Generator{}
	g.mt[0] = seed
	for i := 1; i < N; i++ {
		g.mt[i] = initMultiplier*(g.mt[i-1]^(g.mt[i-1]>>30)) + uint32(i)
	}
	g.mti = N
	return g
}

// Uint32 returns the next pseudorandom 32-bit value.
func (g *Generator) Uint32() uint32 {
	if g.mti >= N {
		g.twist()
	}

	y := g.mt[g.mti]
	g.mti++

	return Temper(y)
}

// twist regenerates all N words in place. The loops run in index order;
// word kk reads kk+1 and kk+M before either has been rewritten in this pass,
// except where the index wraps, which must see the already rewritten words.
func (g *Generator) twist() {
	mag01 := [2]uint32{0, MatrixA}

	var y uint32
	var kk int
	for kk = 0; kk < N-M; kk++ {
		y = (g.mt[kk] & upperMask) | (g.mt[kk+1] & lowerMask)
		g.mt[kk] = g.mt[kk+M] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < N-1; kk++ {
		y = (g.mt[kk] & upperMask) | (g.mt[kk+1] & lowerMask)
		g.mt[kk] = g.mt[kk+(M-N)] ^ (y >> 1) ^ mag01[y&1]
	}
	y = (g.mt[N-1] & upperMask) | (g.mt[0] & lowerMask)
	g.mt[N-1] = g.mt[M-1] ^ (y >> 1) ^ mag01[y&1]

	g.mti = 0
}

// Temper applies the MT19937 output transform to a raw state word.
func Temper(y uint32) uint32 {
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return y
}

// Clone returns an independent copy of g.
func (g *Generator) Clone() *Generator {
	c := *g
	return &c
}
