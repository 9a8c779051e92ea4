// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package probability

import (
	"github.com/scram-core/scram/internal/bdd"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/zbdd"
)

// Inputs bundles whichever compiled engine outputs are available for
// one analysis: Exact needs BDD/BDDEdge, RareEvent/MCUB need
// ZBDD/ZBDDEdge. A nil manager means that representation was not
// compiled.
type Inputs struct {
	BDD     *bdd.Manager
	BDDEdge bdd.Edge

	ZBDD     *zbdd.Manager
	ZBDDEdge zbdd.Edge
}

// Evaluate computes the top event probability under p (p[i] is the
// probability that basic event i holds) in the given mode, returning
// any warnings the mode's approximation raised (SPEC_FULL.md §4.F).
func Evaluate(mode Mode, in Inputs, p []float64) (float64, []model.Warning, error) {
	switch mode {
	case Exact:
		if in.BDD == nil {
			return 0, nil, model.NewAnalysisError("exact probability requires a compiled BDD")
		}
		return in.BDD.Probability(in.BDDEdge, p), nil, nil

	case RareEvent:
		if in.ZBDD == nil {
			return 0, nil, model.NewAnalysisError("rare-event probability requires a compiled ZBDD")
		}
		sum := sumProductProbabilities(in.ZBDD, in.ZBDDEdge, p, make(map[zbdd.Edge]float64))
		var warnings []model.Warning
		if sum > 1 {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnClampedProbability,
				Message: "rare-event sum exceeded 1, clamped",
			})
			sum = 1
		}
		return sum, warnings, nil

	case MCUB:
		if in.ZBDD == nil {
			return 0, nil, model.NewAnalysisError("mcub probability requires a compiled ZBDD")
		}
		return mcub(in.ZBDD, in.ZBDDEdge, p), nil, nil

	default:
		return 0, nil, model.NewLogicError("unknown probability mode %d", mode)
	}
}

// RareEventSum is the exported form of the rare-event summation,
// unclamped, for callers (internal/importance's ZBDD-approximate path)
// that need the raw cut-set probability sum rather than a clamped top
// event probability.
func RareEventSum(m *zbdd.Manager, e zbdd.Edge, p []float64) float64 {
	return sumProductProbabilities(m, e, p, make(map[zbdd.Edge]float64))
}

// sumProductProbabilities computes Σ_{cut set s in e} Π_{literal l in s}
// P(l), using the same zero-suppression recursion as zbdd.Size but
// weighting the then-branch by the included literal's probability:
// every product under "then" shares that one literal, so its
// probability factors out of the sum over that subfamily, while the
// else-branch's products (which never include the literal) carry no
// such factor.
func sumProductProbabilities(m *zbdd.Manager, e zbdd.Edge, p []float64, memo map[zbdd.Edge]float64) float64 {
	if e == zbdd.Empty {
		return 0
	}
	if e == zbdd.Base {
		return 1
	}
	if res, ok := memo[e]; ok {
		return res
	}
	then, els := m.Branch(e)
	be, complement := m.EventOf(m.LevelOf(e))
	lp := p[be]
	if complement {
		lp = 1 - lp
	}
	res := lp*sumProductProbabilities(m, then, p, memo) + sumProductProbabilities(m, els, p, memo)
	memo[e] = res
	return res
}

// mcub enumerates every minimal cut set and computes
// 1 - Π(1 - P(cut set)), requiring explicit enumeration (unlike
// sumProductProbabilities, the product over cut sets does not
// decompose through the zero-suppression recursion the way the sum
// does).
func mcub(m *zbdd.Manager, e zbdd.Edge, p []float64) float64 {
	complement := 1.0
	for _, product := range m.Products(e) {
		pp := 1.0
		for _, lit := range product {
			lp := p[lit.BasicEvent]
			if lit.Complement {
				lp = 1 - lp
			}
			pp *= lp
		}
		complement *= 1 - pp
	}
	return 1 - complement
}
