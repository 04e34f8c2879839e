// Package stats runs statistical sanity checks on 32-bit generators.
//
// These checks catch gross implementation errors (stuck bits, a seed that is
// ignored, truncated arithmetic). Passing them says nothing about suitability
// for cryptographic use.
package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minPerBucket is the smallest expected bucket count for which the
// chi-square approximation is used.
const minPerBucket = 5

// Source is a stream of 32-bit values that can also draw floats in [0, 1).
type Source interface {
	Uint32() uint32
	Float64() float64
}

// Report summarizes a uniformity check.
type Report struct {
	Samples int
	Buckets int

	// ChiSquare is the goodness-of-fit statistic of the bucket counts and
	// PValue the probability of a statistic at least as large under a
	// uniform source.
	ChiSquare float64
	PValue    float64

	// Mean and Variance of Float64 draws; a uniform source gives 1/2 and
	// 1/12.
	Mean     float64
	Variance float64
}

func (r Report) String() string {
	return fmt.Sprintf("samples=%d buckets=%d chi2=%.3f p=%.4f mean=%.5f var=%.5f",
		r.Samples, r.Buckets, r.ChiSquare, r.PValue, r.Mean, r.Variance)
}

// Uniformity draws samples values from src, sorts them into buckets equal
// ranges by their high bits and tests the counts against a uniform
// distribution. It then draws samples more values with Float64 for the mean
// and variance.
func Uniformity(src Source, samples, buckets int) (Report, error) {
	if buckets < 2 {
		return Report{}, errors.New("need at least 2 buckets")
	}
	if samples < buckets*minPerBucket {
		return Report{}, fmt.Errorf("need at least %d samples for %d buckets", buckets*minPerBucket, buckets)
	}

	obs := make([]float64, buckets)
	for range samples {
		v := uint64(src.Uint32())
		obs[(v*uint64(buckets))>>32]++
	}
	floats := make([]float64, samples)
	for i := range floats {
		floats[i] = src.Float64()
	}

	exp := make([]float64, buckets)
	for i := range exp {
		exp[i] = float64(samples) / float64(buckets)
	}

	chi2 := stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(buckets - 1)}
	mean, variance := stat.MeanVariance(floats, nil)

	return Report{
		Samples:   samples,
		Buckets:   buckets,
		ChiSquare: chi2,
		PValue:    dist.Survival(chi2),
		Mean:      mean,
		Variance:  variance,
	}, nil
}
