// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package model

import "math/rand/v2"

// ProbabilityVector evaluates every basic event's Prob expression at
// mission time t, in basic-event index order, producing the p slice
// every engine (internal/bdd, internal/zbdd, internal/probability) is
// parameterized by. Out-of-range values are a LogicError in the
// offending Expr, not a concern ProbabilityVector itself guards
// against beyond the point of failing loudly via the caller's own
// invariant checks downstream.
func ProbabilityVector(m *Model, t float64) []float64 {
	p := make([]float64, len(m.BasicEvents))
	for i, be := range m.BasicEvents {
		p[i] = be.Prob.Value(t)
	}
	return p
}

// SampleVector is ProbabilityVector but draws one Monte Carlo sample
// per basic event instead of the point estimate, used by
// internal/uncertainty's trial loop.
func SampleVector(m *Model, t float64, rng *rand.Rand) []float64 {
	p := make([]float64, len(m.BasicEvents))
	for i, be := range m.BasicEvents {
		p[i] = be.Prob.Sample(t, rng)
	}
	return p
}
