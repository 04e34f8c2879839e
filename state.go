package mt19937

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStateLength is returned when a state imported from an untyped
	// source does not hold exactly N words.
	ErrInvalidStateLength = errors.New("invalid state length")

	// ErrInvalidIndex is returned when a state cursor is outside [0, N].
	ErrInvalidIndex = errors.New("invalid state index")
)

// State is the raw, untempered generator state. Index is the number of words
// consumed since the last twist; Index == N means the next output twists.
//
// The layout matches the tuple returned by Python's random.getstate()[1]:
// the N words followed by the index.
type State struct {
	Words [N]uint32
	Index int
}

// Validate reports whether s can be loaded into a generator.
func (s *State) Validate() error {
	if s.Index < 0 || s.Index > N {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidIndex, s.Index, N)
	}
	return nil
}

// Export returns a copy of the generator state.
func (g *Generator) Export() State {
	return State{Words: g.mt, Index: g.mti}
}

// Import creates a generator that continues from s exactly as the generator
// s was exported from would.
func Import(s State) (*Generator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Generator{mt: s.Words, mti: s.Index}, nil
}

// FromSlice creates a generator from words and index read from an external
// source. words must hold exactly N values; nothing is truncated or padded.
func FromSlice(words []uint32, index int) (*Generator, error) {
	if len(words) != N {
		return nil, fmt.Errorf("%w: got %d words, want %d", ErrInvalidStateLength, len(words), N)
	}
	s := State{Index: index}
	copy(s.Words[:], words)
	return Import(s)
}
