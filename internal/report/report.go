// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package report

import (
	"sort"

	"github.com/scram-core/scram/internal/engine"
	"github.com/scram-core/scram/internal/importance"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/probability"
	"github.com/scram-core/scram/internal/uncertainty"
)

// Product is one minimal cut set, rendered with basic event IDs
// instead of internal indices and carrying its own probability, plus
// its contribution P(product)/P(top) to the top event, so report
// consumers never need the model or the rest of the product list back.
type Product struct {
	Literals     []string // e.g. "a", "!b"
	Probability  float64
	Contribution float64
}

// TopEvent summarizes the analyzed system's top event.
type TopEvent struct {
	Constant    bool
	Value       bool
	Probability float64
}

// Report is the flattened, self-contained result of one analysis run,
// independent of the engine and model types it was built from.
type Report struct {
	ModelName   string
	RunID       string
	Engine      string
	Mode        string
	MissionTime float64

	TopEvent TopEvent
	Products []Product

	// Importance maps basic event ID to its computed measures; absent
	// when the run did not request importance.
	Importance map[string]importance.Measures

	Uncertainty *uncertainty.Report
	SIL         *uncertainty.SILReport

	// TimeSeries is the optional time-dependent probability curve
	// (SPEC_FULL.md §4.F), populated by AssembleTimeSeries when the
	// caller additionally asks for it; nil for a plain report.
	TimeSeries []probability.Sample

	Warnings []model.Warning
}

// Assemble copies an.Analysis' raw results into a Report, resolving
// basic-event indices to IDs against m and dropping any product whose
// probability falls below cutoff (0 disables filtering, matching
// engine.Settings.ProbabilityCutoff's default). Products are sorted by
// descending probability, the conventional presentation order for a
// cut-set report.
func Assemble(m *model.Model, an engine.Analysis, cutoff float64) Report {
	r := Report{
		ModelName:   m.Name,
		RunID:       an.RunID.String(),
		Engine:      an.Engine.String(),
		Mode:        an.Mode.String(),
		MissionTime: an.MissionTime,
		TopEvent: TopEvent{
			Constant:    an.TopConstant,
			Value:       an.TopValue,
			Probability: an.TopProbability,
		},
		Warnings: an.Warnings,
	}

	if len(an.Products) > 0 {
		p := model.ProbabilityVector(m, an.MissionTime)
		r.Products = make([]Product, 0, len(an.Products))
		for _, prod := range an.Products {
			prob := 1.0
			literals := make([]string, 0, len(prod))
			for _, lit := range prod {
				id := m.BasicEvents[lit.BasicEvent].ID
				lp := p[lit.BasicEvent]
				if lit.Complement {
					id = "!" + id
					lp = 1 - lp
				}
				literals = append(literals, id)
				prob *= lp
			}
			if prob < cutoff {
				continue
			}
			// Contribution is only meaningful against a positive, non-constant
			// top probability; a constant top event has no minimal cut sets
			// to begin with, so this guard only ever matters for a top
			// probability that rounds to zero.
			var contribution float64
			if !an.TopConstant && an.TopProbability > 0 {
				contribution = prob / an.TopProbability
			}
			r.Products = append(r.Products, Product{Literals: literals, Probability: prob, Contribution: contribution})
		}
		sort.Slice(r.Products, func(i, j int) bool { return r.Products[i].Probability > r.Products[j].Probability })
	}

	if an.Importance != nil {
		r.Importance = make(map[string]importance.Measures, len(an.Importance))
		for idx, measures := range an.Importance {
			r.Importance[m.BasicEvents[idx].ID] = measures
		}
	}

	r.Uncertainty = an.Uncertainty
	r.SIL = an.SIL
	return r
}

// AssembleTimeSeries samples eng's top event probability at n+1
// equally spaced points over [0, missionTime] via a
// probability.TimeSeries, reusing the already-compiled BDD/ZBDD so no
// recompilation happens per sample. This is the CLI report command's
// half of SPEC_FULL.md §4.F's commitment that TimeSeries is "consumed
// by both the CLI report command and the SIL histogram"; the other
// half is internal/uncertainty.RunSIL. Valid any time after eng has
// reached engine.Compiled.
func AssembleTimeSeries(eng *engine.Engine, n int, missionTime float64) ([]probability.Sample, error) {
	var evalErr error
	ts := probability.NewTimeSeries(n, missionTime, func(t float64) float64 {
		if evalErr != nil {
			return 0
		}
		v, err := eng.ProbabilityAt(t)
		if err != nil {
			evalErr = err
			return 0
		}
		return v
	})
	samples := probability.Collect(ts)
	if evalErr != nil {
		return nil, evalErr
	}
	return samples, nil
}
