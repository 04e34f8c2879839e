package mt19937_test

import (
	"errors"
	"testing"

	"github.com/nozzle/mt19937"
)

func TestExportImportRoundTrip(t *testing.T) {
	for _, consumed := range []int{0, 1, 623, 624, 625, 1000, 1248} {
		g := mt19937.New(mt19937.DefaultSeed)
		for range consumed {
			g.Uint32()
		}

		restored, err := mt19937.Import(g.Export())
		if err != nil {
			t.Fatalf("after %d outputs: %v", consumed, err)
		}

		for i := range 1000 {
			if want, got := g.Uint32(), restored.Uint32(); got != want {
				t.Fatalf("after %d outputs, continuation %d: got %d, expected %d", consumed, i, got, want)
			}
		}
	}
}

func TestExportIsACopy(t *testing.T) {
	g := mt19937.New(1)
	s := g.Export()
	s.Words[0] ^= 0xffffffff
	s.Index = 0
	if g.Export() == s {
		t.Error("mutating an exported state changed the generator")
	}
}

func TestImportRejectsIndex(t *testing.T) {
	s := mt19937.New(1).Export()
	for _, index := range []int{-1, mt19937.N + 1} {
		s.Index = index
		if _, err := mt19937.Import(s); !errors.Is(err, mt19937.ErrInvalidIndex) {
			t.Errorf("index %d: got %v, expected ErrInvalidIndex", index, err)
		}
	}
}

func TestFromSlice(t *testing.T) {
	g := mt19937.New(mt19937.DefaultSeed)
	for range 10 {
		g.Uint32()
	}
	s := g.Export()

	restored, err := mt19937.FromSlice(s.Words[:], s.Index)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Export() != s {
		t.Error("FromSlice did not reproduce the exported state")
	}

	for _, n := range []int{0, 623, 625} {
		words := make([]uint32, n)
		if _, err := mt19937.FromSlice(words, 0); !errors.Is(err, mt19937.ErrInvalidStateLength) {
			t.Errorf("%d words: got %v, expected ErrInvalidStateLength", n, err)
		}
	}

	if _, err := mt19937.FromSlice(s.Words[:], mt19937.N+1); !errors.Is(err, mt19937.ErrInvalidIndex) {
		t.Errorf("got %v, expected ErrInvalidIndex", err)
	}
}
