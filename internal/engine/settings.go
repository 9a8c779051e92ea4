// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package engine

import (
	"runtime"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/probability"
)

// Kind selects which cut-set engine compiles the preprocessed PDAG.
type Kind int

const (
	KindBDD Kind = iota
	KindZBDD
	KindMOCUS
)

func (k Kind) String() string {
	switch k {
	case KindBDD:
		return "bdd"
	case KindZBDD:
		return "zbdd"
	case KindMOCUS:
		return "mocus"
	}
	return "unknown"
}

// ParseEngineKind maps a CLI/config string to a Kind, defaulting to
// KindBDD for an unrecognized value.
func ParseEngineKind(s string) Kind {
	switch s {
	case "zbdd":
		return KindZBDD
	case "mocus":
		return KindMOCUS
	default:
		return KindBDD
	}
}

// ParseMode maps a CLI/config string to a probability.Mode, defaulting
// to probability.Exact for an unrecognized value.
func ParseMode(s string) probability.Mode {
	switch s {
	case "rare-event":
		return probability.RareEvent
	case "mcub":
		return probability.MCUB
	default:
		return probability.Exact
	}
}

// Settings is the single value threaded through every engine call for
// one analysis (SPEC_FULL.md §3): it is built once from defaults, CLI
// flags, and the config file, and never mutated after an analysis
// starts.
type Settings struct {
	Engine Kind
	Mode   probability.Mode

	MissionTime       float64
	LimitOrder        int     // product-size cutoff; 0 means unlimited
	ProbabilityCutoff float64 // products below this probability are omitted from the report

	NumTrials int
	Seed      uint64

	SILBuckets int
	Workers    int

	ComputeProbability  bool
	ComputeImportance   bool
	ComputeUncertainty  bool
	EnableDistribution  bool
	MinModuleSize       int
}

// Default returns the documented default Settings: exact BDD analysis
// over a 1-unit mission time, no cutoffs, 1000 Monte Carlo trials
// seeded deterministically, 10 SIL buckets, probability and importance
// enabled, and uncertainty (Monte Carlo and SIL) disabled.
func Default() Settings {
	return Settings{
		Engine:             KindBDD,
		Mode:               probability.Exact,
		MissionTime:        1.0,
		LimitOrder:         0,
		ProbabilityCutoff:  0,
		NumTrials:          1000,
		Seed:               42,
		SILBuckets:         10,
		Workers:            runtime.GOMAXPROCS(0),
		ComputeProbability: true,
		ComputeImportance:  true,
		ComputeUncertainty: false,
		MinModuleSize:      1,
	}
}

// Validate checks the invariants SPEC_FULL.md §3 requires before any
// engine may run: mission time > 0, limit order >= 0, workers > 0, and,
// when ComputeUncertainty is set, trial count > 0 and bucket count > 0.
func (s Settings) Validate() error {
	if s.MissionTime <= 0 {
		return model.NewValidityError("mission time must be > 0, got %g", s.MissionTime)
	}
	if s.ComputeUncertainty && s.NumTrials <= 0 {
		return model.NewValidityError("num trials must be > 0, got %d", s.NumTrials)
	}
	if s.ComputeUncertainty && s.SILBuckets <= 0 {
		return model.NewValidityError("sil buckets must be > 0, got %d", s.SILBuckets)
	}
	if s.LimitOrder < 0 {
		return model.NewValidityError("limit order must be >= 0, got %d", s.LimitOrder)
	}
	if s.Workers <= 0 {
		return model.NewValidityError("workers must be > 0, got %d", s.Workers)
	}
	return nil
}
