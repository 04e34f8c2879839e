package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"

	"github.com/fatih/color"

	"github.com/nozzle/mt19937"
	"github.com/nozzle/mt19937/interop"
	"github.com/nozzle/mt19937/internal/stats"
	"github.com/nozzle/mt19937/statefile"
)

// Generated values go to stdout and state input comes from stdin; tests
// replace them.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

var defaultVerifySeeds = []uint32{0, 1, 42, mt19937.DefaultSeed, 0xffffffff}

type generateCmd struct {
	Seed  uint32  `short:"s" long:"seed" default:"5489" description:"Seed value"`
	Count int     `short:"n" long:"count" default:"10" description:"Number of values to print"`
	Skip  int     `long:"skip" description:"Number of raw outputs to discard first"`
	Mode  string  `short:"m" long:"mode" default:"uint32" choice:"uint32" choice:"uint64" choice:"float64" choice:"float32" choice:"uniform" choice:"uniform32" choice:"int32" choice:"intn" choice:"shuffle" description:"Kind of value to draw"`
	Low   float64 `long:"low" default:"0" description:"Lower bound for uniform modes"`
	High  float64 `long:"high" default:"1" description:"Upper bound for uniform modes"`
	Below int     `long:"below" default:"100" description:"Exclusive bound for intn mode"`
}

func (c *generateCmd) Execute([]string) error {
	if c.Count < 0 || c.Skip < 0 {
		return errors.New("count and skip must not be negative")
	}
	g := mt19937.New(c.Seed)
	discard(g, c.Skip)
	log.Debugf("Generating %d %s values for seed %d after %d skipped", c.Count, c.Mode, c.Seed, c.Skip)

	switch c.Mode {
	case "", "uint32":
		return writeValues(stdout, g, c.Count)
	case "shuffle":
		perm := make([]int32, c.Count)
		for i := range perm {
			perm[i] = int32(i)
		}
		g.ShuffleInt32(perm)
		return writeDraws(stdout, c.Count, func(buf []byte, i int) []byte {
			return strconv.AppendInt(buf, int64(perm[i]), 10)
		})
	}

	var draw func(buf []byte) []byte
	switch c.Mode {
	case "uint64":
		draw = func(buf []byte) []byte { return strconv.AppendUint(buf, g.Uint64(), 10) }
	case "float64":
		draw = func(buf []byte) []byte { return strconv.AppendFloat(buf, g.Float64(), 'g', -1, 64) }
	case "float32":
		draw = func(buf []byte) []byte { return strconv.AppendFloat(buf, float64(g.Float32()), 'g', -1, 32) }
	case "uniform":
		draw = func(buf []byte) []byte {
			return strconv.AppendFloat(buf, g.Uniform(c.Low, c.High), 'g', -1, 64)
		}
	case "uniform32":
		draw = func(buf []byte) []byte {
			v := g.UniformFloat32(float32(c.Low), float32(c.High))
			return strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
		}
	case "int32":
		draw = func(buf []byte) []byte { return strconv.AppendInt(buf, int64(g.RandInt32()), 10) }
	case "intn":
		if c.Below <= 0 {
			return errors.New("below must be positive")
		}
		draw = func(buf []byte) []byte { return strconv.AppendInt(buf, int64(g.Intn(c.Below)), 10) }
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	return writeDraws(stdout, c.Count, func(buf []byte, _ int) []byte { return draw(buf) })
}

type dumpCmd struct {
	Seed   uint32 `short:"s" long:"seed" default:"5489" description:"Seed value"`
	Skip   int    `long:"skip" description:"Number of outputs to consume before dumping"`
	Out    string `short:"o" long:"out" required:"true" description:"State file to write"`
	Format string `short:"f" long:"format" default:"text" description:"State encoding {text, proto}"`
}

func (c *dumpCmd) Execute([]string) error {
	if c.Skip < 0 {
		return errors.New("skip must not be negative")
	}
	f, err := statefile.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	g := mt19937.New(c.Seed)
	discard(g, c.Skip)
	s := g.Export()

	path := cleanPath(c.Out)
	if err := statefile.Save(path, s, f); err != nil {
		return err
	}
	log.Infof("Wrote %v state of seed %d at index %d to %s", f, c.Seed, s.Index, path)
	return nil
}

type resumeCmd struct {
	In     string `short:"i" long:"in" required:"true" description:"State file to read"`
	Format string `short:"f" long:"format" default:"text" description:"State encoding {text, proto}"`
	Count  int    `short:"n" long:"count" default:"10" description:"Number of outputs to print"`
}

func (c *resumeCmd) Execute([]string) error {
	if c.Count < 0 {
		return errors.New("count must not be negative")
	}
	f, err := statefile.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	s, err := statefile.Load(cleanPath(c.In), f)
	if err != nil {
		return err
	}
	g, err := mt19937.Import(s)
	if err != nil {
		return err
	}
	log.Debugf("Resuming from index %d", s.Index)
	return writeValues(stdout, g, c.Count)
}

type verifyCmd struct {
	Seeds      []uint32 `short:"s" long:"seed" description:"Seed to check (repeatable; defaults to a fixed set)"`
	Random     int      `long:"random" description:"Also check this many seeds drawn from --randomseed"`
	RandomSeed uint32   `long:"randomseed" default:"5489" description:"Seed of the generator that draws --random seeds"`
	State      string   `long:"state" description:"Also check the continuation of this state file"`
	Format     string   `short:"f" long:"format" default:"text" description:"Encoding of --state {text, proto}"`
	Count      int      `short:"n" long:"count" default:"10000" description:"Outputs compared per check"`
	Workers    int      `short:"w" long:"workers" description:"Parallel checks (0 uses every CPU)"`
}

func (c *verifyCmd) Execute([]string) error {
	if c.Count <= 0 {
		return errors.New("count must be positive")
	}

	seeds := slices.Clone(c.Seeds)
	if len(seeds) == 0 {
		seeds = slices.Clone(defaultVerifySeeds)
	}
	if c.Random > 0 {
		src := mt19937.New(c.RandomSeed)
		for range c.Random {
			seeds = append(seeds, src.Uint32())
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := interop.CompareSeeds(ctx, seeds, c.Count, c.Workers)
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	failed := 0
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(stdout, "%s %v\n", pass("PASS"), r)
			continue
		}
		failed++
		fmt.Fprintf(stdout, "%s %v\n", fail("FAIL"), r)
	}
	checks := len(results)

	if c.State != "" {
		f, err := statefile.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		s, err := statefile.Load(cleanPath(c.State), f)
		if err != nil {
			return err
		}
		r, err := interop.CompareState(s, c.Count)
		if err != nil {
			return err
		}
		checks++
		if r.OK() {
			fmt.Fprintf(stdout, "%s state %s: %d outputs match\n", pass("PASS"), c.State, r.Compared)
		} else {
			failed++
			fmt.Fprintf(stdout, "%s state %s: output %d differs (got %d, reference %d)\n",
				fail("FAIL"), c.State, r.Mismatch, r.Got, r.Want)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, checks)
	}
	log.Infof("All %d checks passed", checks)
	return nil
}

type statsCmd struct {
	Seed    uint32  `short:"s" long:"seed" default:"5489" description:"Seed value"`
	Samples int     `long:"samples" default:"1000000" description:"Number of outputs to draw"`
	Buckets int     `long:"buckets" default:"256" description:"Number of equal-width buckets"`
	MinP    float64 `long:"minp" default:"0.0001" description:"Fail when the p-value is below this"`
}

func (c *statsCmd) Execute([]string) error {
	r, err := stats.Uniformity(mt19937.New(c.Seed), c.Samples, c.Buckets)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "seed %d: %v\n", c.Seed, r)
	if r.PValue < c.MinP {
		return fmt.Errorf("p-value %g below %g", r.PValue, c.MinP)
	}
	return nil
}

type recoverCmd struct {
	Count int `short:"n" long:"count" default:"10" description:"Number of predicted outputs to print"`
}

func (c *recoverCmd) Execute([]string) error {
	if c.Count < 0 {
		return errors.New("count must not be negative")
	}
	values, err := readValues(stdin)
	if err != nil {
		return err
	}
	log.Debugf("Read %d outputs", len(values))

	// Count what Recover reads so the values after its alignment point can
	// be replayed; predictions then start after the last value on stdin.
	read := 0
	seq := func(yield func(uint32) bool) {
		for _, v := range values {
			read++
			if !yield(v) {
				return
			}
		}
	}

	g, err := mt19937.Recover(seq)
	if err != nil {
		return err
	}
	log.Infof("Recovered generator after %d of %d outputs", read, len(values))

	discard(g, len(values)-read)
	return writeValues(stdout, g, c.Count)
}

func discard(g *mt19937.Generator, n int) {
	for range n {
		g.Uint32()
	}
}

func writeValues(w io.Writer, g *mt19937.Generator, n int) error {
	return writeDraws(w, n, func(buf []byte, _ int) []byte {
		return strconv.AppendUint(buf, uint64(g.Uint32()), 10)
	})
}

// writeDraws writes n lines, the i-th formed by appending to an empty buffer.
func writeDraws(w io.Writer, n int, appendValue func(buf []byte, i int) []byte) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for i := range n {
		buf = appendValue(buf[:0], i)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func readValues(r io.Reader) ([]uint32, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var values []uint32
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(values)+1, err)
		}
		values = append(values, uint32(v))
	}
	return values, sc.Err()
}
