// Package interop checks the mt19937 generator against an independent
// MT19937 implementation, gonum's mathext/prng.MT19937.
//
// Two checks are provided: seeding both generators identically and comparing
// their outputs, and transplanting an exported state into the reference
// generator and comparing the continuation.
package interop

import (
	"context"
	"encoding/binary"
	"fmt"

	"gonum.org/v1/gonum/mathext/prng"

	"github.com/nozzle/mt19937"
	"github.com/nozzle/mt19937/internal/parallel"
)

// binarySize is the length of the reference generator's binary state: N
// big-endian words followed by the big-endian index.
const binarySize = (mt19937.N + 1) * 4

// Result is the outcome of comparing two output streams.
type Result struct {
	Seed     uint32
	Compared int

	// Mismatch is the position of the first differing output, or -1.
	Mismatch int
	Got      uint32
	Want     uint32
}

// OK reports whether every compared output matched.
func (r Result) OK() bool {
	return r.Mismatch < 0
}

func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("seed %d: %d outputs match", r.Seed, r.Compared)
	}
	return fmt.Sprintf("seed %d: output %d differs (got %d, reference %d)",
		r.Seed, r.Mismatch, r.Got, r.Want)
}

// Reference returns the reference generator seeded with seed.
func Reference(seed uint32) *prng.MT19937 {
	ref := prng.NewMT19937()
	ref.Seed(uint64(seed))
	return ref
}

// Transplant loads s into a new reference generator.
func Transplant(s mt19937.State) (*prng.MT19937, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, binarySize)
	for i, w := range s.Words {
		binary.BigEndian.PutUint32(buf[i*4:], w)
	}
	binary.BigEndian.PutUint32(buf[mt19937.N*4:], uint32(s.Index))

	ref := prng.NewMT19937()
	if err := ref.UnmarshalBinary(buf); err != nil {
		return nil, fmt.Errorf("load reference state: %w", err)
	}
	return ref, nil
}

// Capture exports the state of a reference generator.
func Capture(ref *prng.MT19937) (mt19937.State, error) {
	buf, err := ref.MarshalBinary()
	if err != nil {
		return mt19937.State{}, fmt.Errorf("dump reference state: %w", err)
	}
	if len(buf) != binarySize {
		return mt19937.State{}, fmt.Errorf("%w: reference state is %d bytes, want %d",
			mt19937.ErrInvalidStateLength, len(buf), binarySize)
	}

	var s mt19937.State
	for i := range s.Words {
		s.Words[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	s.Index = int(binary.BigEndian.Uint32(buf[mt19937.N*4:]))
	if err := s.Validate(); err != nil {
		return mt19937.State{}, err
	}
	return s, nil
}

// CompareSeed seeds both implementations with seed and compares n outputs.
func CompareSeed(seed uint32, n int) Result {
	r := compare(mt19937.New(seed), Reference(seed), n)
	r.Seed = seed
	return r
}

// CompareState continues s in both implementations and compares n outputs.
func CompareState(s mt19937.State, n int) (Result, error) {
	ours, err := mt19937.Import(s)
	if err != nil {
		return Result{}, err
	}
	ref, err := Transplant(s)
	if err != nil {
		return Result{}, err
	}
	return compare(ours, ref, n), nil
}

// CompareSeeds runs CompareSeed for every seed, using at most workers
// goroutines. Each goroutine owns its generators.
func CompareSeeds(ctx context.Context, seeds []uint32, n, workers int) ([]Result, error) {
	return parallel.Map(ctx, len(seeds), workers, func(ctx context.Context, i int) (Result, error) {
		r := CompareSeed(seeds[i], n)
		if r.OK() {
			log.Debugf("%v", r)
		} else {
			log.Warnf("%v", r)
		}
		return r, nil
	})
}

func compare(ours *mt19937.Generator, ref *prng.MT19937, n int) Result {
	for i := range n {
		got, want := ours.Uint32(), ref.Uint32()
		if got != want {
			return Result{Compared: i + 1, Mismatch: i, Got: got, Want: want}
		}
	}
	return Result{Compared: n, Mismatch: -1}
}
