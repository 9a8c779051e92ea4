// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package importance

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/bdd"
	"github.com/scram-core/scram/internal/zbdd"
)

func TestComputeTwoOfTwoOr(t *testing.T) {
	m := bdd.NewManager(2, zerolog.Nop())
	a, b := m.Var(0), m.Var(1)
	top := m.Or(a, b)
	p := []float64{0.1, 0.2}

	meas, err := Compute(m, top, 0, p)
	require.NoError(t, err)

	topProb := m.Probability(top, p)
	pOn := m.Probability(m.Restrict(top, 0, true), p)
	pOff := m.Probability(m.Restrict(top, 0, false), p)

	assert.InDelta(t, pOn-pOff, meas.MIF, 1e-12)
	assert.InDelta(t, (pOn-pOff)*0.1/topProb, meas.CIF, 1e-12)
	assert.InDelta(t, topProb/pOff, meas.RRW, 1e-12)
	assert.InDelta(t, pOn/topProb, meas.RAW, 1e-12)
	assert.Greater(t, meas.DIF, 0.0)
}

func TestComputeRejectsZeroTopProbability(t *testing.T) {
	m := bdd.NewManager(1, zerolog.Nop())
	_, err := Compute(m, bdd.False, 0, []float64{0.5})
	require.Error(t, err)
}

func TestComputeApproxDerivesFromForcedRareEventSums(t *testing.T) {
	m := zbdd.NewManager(2, 0, zerolog.Nop())
	a, b := m.Unit(0, false), m.Unit(1, false)
	top := m.Union(a, b) // two disjoint single-literal cut sets
	p := []float64{0.1, 0.2}

	meas, err := ComputeApprox(m, top, 0, p)
	require.NoError(t, err)

	// ComputeApprox works on rare-event sums throughout, so the expected
	// values are those sums (P(top) = 0.1 + 0.2), not the exact
	// probabilities (exact P(top) would be 1 - 0.9*0.8 = 0.28).
	topProb := 0.1 + 0.2
	pOn := 1.0 + 0.2  // forcing p[0]=1
	pOff := 0.0 + 0.2 // forcing p[0]=0
	assert.InDelta(t, pOn-pOff, meas.MIF, 1e-12)
	assert.InDelta(t, (pOn-pOff)*0.1/topProb, meas.CIF, 1e-12)
	assert.InDelta(t, topProb/pOff, meas.RRW, 1e-12)
	assert.InDelta(t, pOn/topProb, meas.RAW, 1e-12)
	assert.InDelta(t, 0.1/topProb, meas.DIF, 1e-12) // only {a} contains event 0
}

func TestComputeApproxRejectsZeroTopProbability(t *testing.T) {
	m := zbdd.NewManager(1, 0, zerolog.Nop())
	_, err := ComputeApprox(m, zbdd.Empty, 0, []float64{0.5})
	require.Error(t, err)
}
