// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package eventtree

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/model/sample"
)

func TestEvaluateBarePathProbabilities(t *testing.T) {
	m := &model.Model{Name: "empty"}
	tree := Tree{
		Name: "init",
		Events: []FunctionalEvent{
			{Name: "initiator", Probability: 0.1},
			{Name: "mitigation", Probability: 0.2},
		},
		Paths: []Path{
			{EndState: "ok", Branches: []bool{false, false}},
			{EndState: "ok", Branches: []bool{false, true}},
			{EndState: "damage", Branches: []bool{true, false}},
			{EndState: "severe", Branches: []bool{true, true}},
		},
	}

	res, err := Evaluate(context.Background(), m, 1, tree, zerolog.Nop())
	require.NoError(t, err)

	assert.InDelta(t, 0.9*0.8+0.9*0.2, res.EndStateProbability["ok"], 1e-12)
	assert.InDelta(t, 0.1*0.8, res.EndStateProbability["damage"], 1e-12)
	assert.InDelta(t, 0.1*0.2, res.EndStateProbability["severe"], 1e-12)
}

func TestEvaluateResolvesGateReference(t *testing.T) {
	m, err := sample.TwoOfTwoAnd(0.1) // AND(a,b), exact probability 0.01
	require.NoError(t, err)

	tree := Tree{
		Name:   "gate-ref",
		Events: []FunctionalEvent{{Name: "top-fails", GateID: "G"}},
		Paths: []Path{
			{EndState: "safe", Branches: []bool{false}},
			{EndState: "fail", Branches: []bool{true}},
		},
	}

	res, err := Evaluate(context.Background(), m, 1, tree, zerolog.Nop())
	require.NoError(t, err)
	assert.InDelta(t, 0.01, res.EndStateProbability["fail"], 1e-9)
	assert.InDelta(t, 0.99, res.EndStateProbability["safe"], 1e-9)
}

func TestEvaluateRejectsMismatchedBranchCount(t *testing.T) {
	m := &model.Model{}
	tree := Tree{
		Events: []FunctionalEvent{{Name: "a", Probability: 0.5}},
		Paths:  []Path{{EndState: "x", Branches: []bool{true, false}}},
	}
	_, err := Evaluate(context.Background(), m, 1, tree, zerolog.Nop())
	assert.Error(t, err)
}
