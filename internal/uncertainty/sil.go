// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package uncertainty

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/probability"
)

// Class is a Safety Integrity Level band, per [IEC_61508]'s low-demand
// PFD ranges (SPEC_FULL.md §4.H / GLOSSARY).
type Class int

const (
	ClassNone   Class = iota // PFD >= 1e-1: outside every SIL band
	ClassSIL1                // [1e-2, 1e-1)
	ClassSIL2                // [1e-3, 1e-2)
	ClassSIL3                // [1e-4, 1e-3)
	ClassSIL4                // [1e-5, 1e-4)
	ClassBeyond4             // PFD < 1e-5: better than SIL4's own band
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassSIL1:
		return "sil1"
	case ClassSIL2:
		return "sil2"
	case ClassSIL3:
		return "sil3"
	case ClassSIL4:
		return "sil4"
	case ClassBeyond4:
		return "beyond-sil4"
	}
	return "unknown"
}

// Classify maps an instantaneous PFD to its SIL band.
func Classify(pfd float64) Class {
	switch {
	case pfd >= 1e-1:
		return ClassNone
	case pfd >= 1e-2:
		return ClassSIL1
	case pfd >= 1e-3:
		return ClassSIL2
	case pfd >= 1e-4:
		return ClassSIL3
	case pfd >= 1e-5:
		return ClassSIL4
	default:
		return ClassBeyond4
	}
}

// SILReport is the per-bucket PFD trace and the resulting SIL-band time
// fractions over the mission window.
type SILReport struct {
	Buckets        int
	MissionTime    float64
	BucketPFD      []float64
	ClassFraction  map[Class]float64
	PFH            float64
	PFHApproximate bool // always true, per SPEC_FULL.md §9's open question
}

// RunSIL partitions [0, in.MissionTime] into buckets equal-width
// buckets, evaluates the instantaneous PFD at each bucket's midpoint
// via a probability.TimeSeries, and reports the fraction of buckets (a
// proxy for the fraction of mission time, since buckets are equal
// width) spent in each SIL class. PFH is reported as the mean absolute
// finite-difference slope of the PFD trace — a magnitude-accurate-only
// approximation, per the source's own acknowledged limitation
// (SPEC_FULL.md §9).
func RunSIL(ctx context.Context, in Inputs, buckets int, log zerolog.Logger) (SILReport, error) {
	if buckets <= 0 {
		return SILReport{}, model.NewValidityError("sil buckets must be > 0, got %d", buckets)
	}
	width := in.MissionTime / float64(buckets)

	// NewTimeSeries samples n+1 equally spaced points over
	// [0, missionTime-width]; shifting every sample by width/2 below
	// turns those into the buckets' midpoints, since
	// width*i + width/2 == width*(i+0.5) for i = 0..buckets-1.
	var evalErr error
	ts := probability.NewTimeSeries(buckets-1, in.MissionTime-width, func(t float64) float64 {
		if evalErr != nil {
			return 0
		}
		if err := ctx.Err(); err != nil {
			evalErr = &model.Cancelled{}
			return 0
		}
		mid := t + width/2
		p := model.ProbabilityVector(in.Model, mid)
		v, _, err := evaluateAt(in, p)
		if err != nil {
			evalErr = err
			return 0
		}
		return v
	})
	samples := probability.Collect(ts)
	if evalErr != nil {
		return SILReport{}, evalErr
	}

	pfd := make([]float64, len(samples))
	for i, s := range samples {
		pfd[i] = s.P
	}

	fraction := make(map[Class]float64, 6)
	for _, v := range pfd {
		fraction[Classify(v)] += 1.0 / float64(buckets)
	}

	log.Debug().Int("buckets", buckets).Msg("sil histogram computed")

	return SILReport{
		Buckets:        buckets,
		MissionTime:    in.MissionTime,
		BucketPFD:      pfd,
		ClassFraction:  fraction,
		PFH:            approximatePFH(pfd, width),
		PFHApproximate: true,
	}, nil
}

func evaluateAt(in Inputs, p []float64) (float64, []model.Warning, error) {
	if in.BDD != nil {
		in.BDD.InvalidateProbabilityCache()
		return in.BDD.Probability(in.BDDEdge, p), nil, nil
	}
	return probability.Evaluate(in.Mode, probability.Inputs{ZBDD: in.ZBDD, ZBDDEdge: in.ZBDDEdge}, p)
}

// approximatePFH averages the absolute slope between consecutive bucket
// PFD samples: a repairable component's failure *frequency* is not
// recoverable exactly from an unavailability trace alone, so this is
// order-of-magnitude guidance only, never a value callers should
// compare bit-for-bit across implementations (SPEC_FULL.md §9).
func approximatePFH(pfd []float64, width float64) float64 {
	if len(pfd) < 2 || width <= 0 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(pfd); i++ {
		sum += math.Abs(pfd[i]-pfd[i-1]) / width
	}
	return sum / float64(len(pfd)-1)
}
