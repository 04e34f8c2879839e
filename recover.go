package mt19937

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrIncompleteStream is returned by Recover when the stream ends before
	// the generator could be reconstructed.
	ErrIncompleteStream = errors.New("output stream ended before recovery")

	// ErrUnmatchedStream is returned by Recover when no alignment within one
	// full twist cycle reproduces the stream.
	ErrUnmatchedStream = errors.New("output stream does not match MT19937")
)

// Untemper inverts Temper.
func Untemper(y uint32) uint32 {
	y ^= y >> 18
	y ^= (y << 15) & temperingC

	x := y
	for range 5 {
		x = y ^ ((x << 7) & temperingB)
	}

	y = x
	for range 3 {
		x = y ^ (x >> 11)
	}
	return x
}

// Values returns an endless sequence of outputs drawn from g.
func (g *Generator) Values() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for {
			if !yield(g.Uint32()) {
				return
			}
		}
	}
}

// Recover reconstructs a generator from consecutive outputs of an MT19937
// stream that starts at an unknown offset. It reads N outputs, then slides
// the window one output at a time until the words in the window, twisted,
// predict the next output. At most N alignments are tried.
//
// The returned generator has consumed every value read from seq, so its next
// output equals the next value of the stream.
func Recover(seq iter.Seq[uint32]) (*Generator, error) {
	next, stop := iter.Pull(seq)
	defer stop()

	var window [N]uint32
	for i := range window {
		v, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: read %d of %d outputs", ErrIncompleteStream, i, N)
		}
		window[i] = Untemper(v)
	}

	// window is a ring; head is the oldest word.
	head := 0
	for shift := range N {
		g := &Generator{mti: N}
		copy(g.mt[:], window[head:])
		copy(g.mt[N-head:], window[:head])

		want, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: after %d alignments", ErrIncompleteStream, shift)
		}
		if g.Uint32() == want {
			return g, nil
		}

		window[head] = Untemper(want)
		head = (head + 1) % N
	}
	return nil, ErrUnmatchedStream
}
