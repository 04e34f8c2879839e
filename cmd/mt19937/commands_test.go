package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nozzle/mt19937"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func parseLines(t *testing.T, s string) []uint32 {
	t.Helper()
	var values []uint32
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			t.Fatalf("bad output %q: %v", f, err)
		}
		values = append(values, uint32(v))
	}
	return values
}

func TestGenerateCmd(t *testing.T) {
	out := capture(t)
	cmd := &generateCmd{Seed: mt19937.DefaultSeed, Count: 3, Skip: 1}
	if err := cmd.Execute(nil); err != nil {
		t.Fatal(err)
	}
	got := parseLines(t, out.String())
	want := []uint32{581869302, 3890346734, 3586334585}
	if len(got) != len(want) {
		t.Fatalf("got %d values, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got %d, expected %d", i, got[i], want[i])
		}
	}

	if err := (&generateCmd{Count: -1}).Execute(nil); err == nil {
		t.Error("negative count: expected an error")
	}
}

func TestGenerateModes(t *testing.T) {
	out := capture(t)
	cmd := &generateCmd{Seed: 42, Count: 3, Mode: "uniform", Low: -10, High: 10}
	if err := cmd.Execute(nil); err != nil {
		t.Fatal(err)
	}
	// numpy.random.RandomState(42).uniform(-10, 10, 3)
	want := []float64{-2.509197623052750, 9.014286128198323, 4.639878836228101}
	fields := strings.Fields(out.String())
	if len(fields) != len(want) {
		t.Fatalf("got %d values, expected %d", len(fields), len(want))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("uniform value %d: got %v, expected %v", i, v, want[i])
		}
	}

	for _, mode := range []string{"uint64", "float64", "float32", "uniform32", "int32", "intn"} {
		out.Reset()
		cmd := &generateCmd{Seed: 9, Count: 100, Mode: mode, Low: -1, High: 1, Below: 6}
		if err := cmd.Execute(nil); err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		lines := strings.Fields(out.String())
		if len(lines) != 100 {
			t.Fatalf("%s: got %d values, expected 100", mode, len(lines))
		}
		g := mt19937.New(9)
		for i, line := range lines {
			var want string
			switch mode {
			case "uint64":
				want = strconv.FormatUint(g.Uint64(), 10)
			case "float64":
				want = strconv.FormatFloat(g.Float64(), 'g', -1, 64)
			case "float32":
				want = strconv.FormatFloat(float64(g.Float32()), 'g', -1, 32)
			case "uniform32":
				want = strconv.FormatFloat(float64(g.UniformFloat32(-1, 1)), 'g', -1, 32)
			case "int32":
				want = strconv.FormatInt(int64(g.RandInt32()), 10)
			case "intn":
				want = strconv.Itoa(g.Intn(6))
			}
			if line != want {
				t.Fatalf("%s value %d: got %s, expected %s", mode, i, line, want)
			}
		}
	}

	if err := (&generateCmd{Count: 1, Mode: "intn"}).Execute(nil); err == nil {
		t.Error("intn without a positive bound: expected an error")
	}
}

func TestGenerateShuffle(t *testing.T) {
	out := capture(t)
	if err := (&generateCmd{Seed: 11, Count: 50, Mode: "shuffle"}).Execute(nil); err != nil {
		t.Fatal(err)
	}
	seen := make(map[uint32]bool)
	for _, v := range parseLines(t, out.String()) {
		if v >= 50 || seen[v] {
			t.Fatalf("not a permutation of [0, 50): %v", out)
		}
		seen[v] = true
	}
	if len(seen) != 50 {
		t.Errorf("got %d distinct values, expected 50", len(seen))
	}
}

func TestDumpResumeCmd(t *testing.T) {
	for _, format := range []string{"text", "proto"} {
		path := filepath.Join(t.TempDir(), "state")
		dump := &dumpCmd{Seed: 77, Skip: 900, Out: path, Format: format}
		if err := dump.Execute(nil); err != nil {
			t.Fatalf("%s: %v", format, err)
		}

		out := capture(t)
		resume := &resumeCmd{In: path, Format: format, Count: 50}
		if err := resume.Execute(nil); err != nil {
			t.Fatalf("%s: %v", format, err)
		}

		g := mt19937.New(77)
		discard(g, 900)
		for i, v := range parseLines(t, out.String()) {
			if want := g.Uint32(); v != want {
				t.Fatalf("%s value %d: got %d, expected %d", format, i, v, want)
			}
		}
	}
}

func TestVerifyCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	if err := (&dumpCmd{Seed: 5, Skip: 10, Out: path, Format: "text"}).Execute(nil); err != nil {
		t.Fatal(err)
	}

	out := capture(t)
	cmd := &verifyCmd{Random: 3, RandomSeed: 1, State: path, Format: "text", Count: 2000, Workers: 2}
	if err := cmd.Execute(nil); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "PASS"); n != len(defaultVerifySeeds)+3+1 {
		t.Errorf("got %d passing checks:\n%s", n, out)
	}
	if strings.Contains(out.String(), "FAIL") {
		t.Errorf("unexpected failure:\n%s", out)
	}
}

func TestRecoverCmd(t *testing.T) {
	g := mt19937.New(31337)
	discard(g, 300)

	var in bytes.Buffer
	for range 2 * mt19937.N {
		in.WriteString(strconv.FormatUint(uint64(g.Uint32()), 10))
		in.WriteByte(' ')
	}
	old := stdin
	stdin = &in
	t.Cleanup(func() { stdin = old })

	out := capture(t)
	if err := (&recoverCmd{Count: 20}).Execute(nil); err != nil {
		t.Fatal(err)
	}
	for i, v := range parseLines(t, out.String()) {
		if want := g.Uint32(); v != want {
			t.Fatalf("prediction %d: got %d, expected %d", i, v, want)
		}
	}
}

func TestStatsCmd(t *testing.T) {
	out := capture(t)
	cmd := &statsCmd{Seed: 1, Samples: 100000, Buckets: 64, MinP: 1e-4}
	if err := cmd.Execute(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "seed 1:") {
		t.Errorf("unexpected report %q", out)
	}
}
