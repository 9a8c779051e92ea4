// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package uncertainty

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/scram-core/scram/internal/bdd"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/probability"
	"github.com/scram-core/scram/internal/zbdd"
)

// Inputs bundles the compiled engine output Monte Carlo trials
// evaluate against, mirroring internal/probability.Inputs.
type Inputs struct {
	Model *model.Model
	Mode  probability.Mode

	BDD     *bdd.Manager
	BDDEdge bdd.Edge

	ZBDD     *zbdd.Manager
	ZBDDEdge zbdd.Edge

	MissionTime float64
}

// Report is the statistical summary of one Monte Carlo run.
type Report struct {
	NumTrials int
	Seed      uint64
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	// Quantiles maps a requested quantile (e.g. 0.05, 0.5, 0.95) to the
	// trial value at that position in the sorted sample.
	Quantiles map[float64]float64
	Histogram Histogram
}

// Histogram is a fixed-width count of trial outcomes over [Min, Max].
type Histogram struct {
	Min, Max float64
	Counts   []int
}

var defaultQuantiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// Run farms numTrials independent samples to a worker pool bounded by
// workers (SPEC_FULL.md §5), each worker drawing from its own
// math/rand/v2 stream seeded deterministically from (seed, trial
// index) so results are bit-identical across runs regardless of which
// goroutine happens to process which trial — the embarrassingly
// parallel step is the expensive per-trial evaluation, not the
// reduction, which runs sequentially over the trial-indexed results
// slice afterward so goroutine completion order never perturbs the
// floating-point accumulation order.
func Run(ctx context.Context, in Inputs, numTrials int, seed uint64, workers int, log zerolog.Logger) (Report, error) {
	if numTrials <= 0 {
		return Report{}, model.NewValidityError("num trials must be > 0, got %d", numTrials)
	}
	values := make([]float64, numTrials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < numTrials; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &model.Cancelled{}
			}
			v, err := trial(in, seed, i)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	log.Debug().Int("trials", numTrials).Msg("monte carlo run complete")
	return summarize(values, numTrials, seed), nil
}

// trial draws one sample of every basic event's distribution at the
// mission time and evaluates the top event probability against it,
// using a cache private to this trial so concurrent trials over the
// same shared BDD/ZBDD never clobber each other's memoized values
// (SPEC_FULL.md §4.H: "probability cache invalidated between trials").
func trial(in Inputs, seed uint64, index int) (float64, error) {
	rng := rand.New(rand.NewPCG(seed, uint64(index)))
	p := model.SampleVector(in.Model, in.MissionTime, rng)

	switch {
	case in.BDD != nil:
		cache := make(map[bdd.Edge]float64)
		return in.BDD.ProbabilityWithCache(in.BDDEdge, p, cache), nil
	case in.ZBDD != nil:
		v, warnings, err := probability.Evaluate(in.Mode, probability.Inputs{ZBDD: in.ZBDD, ZBDDEdge: in.ZBDDEdge}, p)
		_ = warnings
		return v, err
	default:
		return 0, model.NewAnalysisError("monte carlo trial requires a compiled BDD or ZBDD")
	}
}

func summarize(values []float64, numTrials int, seed uint64) Report {
	mean, variance := welford(values)
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	quantiles := make(map[float64]float64, len(defaultQuantiles))
	for _, q := range defaultQuantiles {
		quantiles[q] = quantileOf(sorted, q)
	}

	return Report{
		NumTrials: numTrials,
		Seed:      seed,
		Mean:      mean,
		StdDev:    math.Sqrt(variance),
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Quantiles: quantiles,
		Histogram: histogram(sorted, 20),
	}
}

// welford computes the mean and (population) variance of values in one
// pass, the standard streaming-moments algorithm (no statistics
// library appears anywhere in the retrieved pack, see DESIGN.md).
func welford(values []float64) (mean, variance float64) {
	var m, s float64
	for i, v := range values {
		n := float64(i + 1)
		delta := v - m
		m += delta / n
		s += delta * (v - m)
	}
	if len(values) == 0 {
		return 0, 0
	}
	return m, s / float64(len(values))
}

func quantileOf(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func histogram(sorted []float64, bins int) Histogram {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		hi = lo + 1e-9
	}
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return Histogram{Min: lo, Max: hi, Counts: counts}
}
