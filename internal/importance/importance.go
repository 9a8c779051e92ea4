// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package importance

import (
	"math"

	"github.com/scram-core/scram/internal/bdd"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/probability"
	"github.com/scram-core/scram/internal/zbdd"
)

// Measures holds the five per-basic-event sensitivity values of §4.G.
type Measures struct {
	MIF float64 // P(top|b=1) - P(top|b=0)
	CIF float64 // MIF * q / P(top)
	DIF float64 // Fussell-Vesely: P(top ∧ b) / P(top)
	RRW float64 // P(top) / P(top|b=0); +Inf when P(top|b=0) is 0
	RAW float64 // P(top|b=1) / P(top)
}

// Compute is the exact path: it cofactors the compiled BDD at basic
// event be (index in the probability vector p) with bdd.Restrict, an
// O(|BDD|) operation with its own memoization, following the teacher's
// cofactor-style recursion for quantities derived from a BDD rather
// than read off it directly.
func Compute(m *bdd.Manager, top bdd.Edge, be int, p []float64) (Measures, error) {
	topProb := m.Probability(top, p)
	if topProb <= 0 {
		return Measures{}, model.NewAnalysisError("importance measures undefined: top event probability is 0")
	}

	restrictedOn := m.Restrict(top, be, true)
	restrictedOff := m.Restrict(top, be, false)
	pOn := m.Probability(restrictedOn, p)
	pOff := m.Probability(restrictedOff, p)
	rrw := math.Inf(1)
	if pOff > 0 {
		rrw = topProb / pOff
	}

	q := p[be]
	topAndB := m.Probability(m.And(top, m.Var(be)), p)

	return Measures{
		MIF: pOn - pOff,
		CIF: (pOn - pOff) * q / topProb,
		DIF: topAndB / topProb,
		RRW: rrw,
		RAW: pOn / topProb,
	}, nil
}

// ComputeApprox is the ZBDD-only path (SPEC_FULL.md §4.G: "the same
// approximation" for every measure, not just Fussell-Vesely): instead
// of structurally cofactoring a diagram that was never built, it
// forces p[be] to 1 or 0 in the probability vector and re-evaluates
// probability.RareEventSum over the same cut-set family — numerically
// restricting the probability rather than structurally restricting the
// diagram, which is the natural ZBDD-shaped analogue of bdd.Restrict
// when all that's available is a family of products.
func ComputeApprox(m *zbdd.Manager, top zbdd.Edge, be int, p []float64) (Measures, error) {
	topProb := probability.RareEventSum(m, top, p)
	if topProb <= 0 {
		return Measures{}, model.NewAnalysisError("importance measures undefined: top event probability is 0")
	}

	pOn := forcedSum(m, top, be, p, 1)
	pOff := forcedSum(m, top, be, p, 0)
	rrw := math.Inf(1)
	if pOff > 0 {
		rrw = topProb / pOff
	}

	q := p[be]

	return Measures{
		MIF: pOn - pOff,
		CIF: (pOn - pOff) * q / topProb,
		DIF: fussellVesely(m, top, be, p, topProb),
		RRW: rrw,
		RAW: pOn / topProb,
	}, nil
}

func forcedSum(m *zbdd.Manager, top zbdd.Edge, be int, p []float64, forced float64) float64 {
	forcedP := append([]float64{}, p...)
	forcedP[be] = forced
	return probability.RareEventSum(m, top, forcedP)
}

// fussellVesely sums the probability of every cut set containing be's
// positive literal (the standard "b contributes to this cut set's
// failure" reading) and divides by the top event probability.
func fussellVesely(m *zbdd.Manager, top zbdd.Edge, be int, p []float64, topProb float64) float64 {
	sum := 0.0
	for _, product := range m.Products(top) {
		contains := false
		pp := 1.0
		for _, lit := range product {
			lv := p[lit.BasicEvent]
			if lit.Complement {
				lv = 1 - lv
			}
			pp *= lv
			if lit.BasicEvent == be && !lit.Complement {
				contains = true
			}
		}
		if contains {
			sum += pp
		}
	}
	return sum / topProb
}
