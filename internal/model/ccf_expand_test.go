// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/model/sample"
)

// TestCCFGroupExpandBeta checks the beta-factor formula in isolation,
// independent of gate substitution: n independent replacements at
// q*(1-beta) plus one shared event at q*beta, per spec.md:176 scenario
// 6's documented approximation.
func TestCCFGroupExpandBeta(t *testing.T) {
	g := model.CCFGroup{
		ID:      "abc",
		Model:   model.CCFBeta,
		Members: []string{"a", "b", "c"},
		Factors: []float64{0.1},
	}
	expanded, err := g.Expand(0.01)
	require.NoError(t, err)
	require.Len(t, expanded, 4)

	var indep, shared int
	for _, ev := range expanded {
		switch ev.CCFLevel {
		case 0:
			indep++
			assert.InDelta(t, 0.009, ev.BasicEvent.Prob.Value(0), 1e-12)
		case 3:
			shared++
			assert.Equal(t, "CCF_abc", ev.BasicEvent.ID)
			assert.InDelta(t, 0.001, ev.BasicEvent.Prob.Value(0), 1e-12)
		default:
			t.Fatalf("unexpected CCFLevel %d", ev.CCFLevel)
		}
	}
	assert.Equal(t, 3, indep)
	assert.Equal(t, 1, shared)
}

// TestCCFGroupExpandRejectsSingleMember checks the documented minimum
// group size of two members.
func TestCCFGroupExpandRejectsSingleMember(t *testing.T) {
	g := model.CCFGroup{ID: "solo", Model: model.CCFBeta, Members: []string{"a"}, Factors: []float64{0.1}}
	_, err := g.Expand(0.01)
	assert.Error(t, err)
}

// TestExpandCCFGroupsRewritesMembersToORGates checks that
// ExpandCCFGroups rewrites every group member's reference into an OR
// gate of its independent replacement and the shared CCF event, and
// clears the model's CCFGroups so a second pass is a no-op.
func TestExpandCCFGroupsRewritesMembersToORGates(t *testing.T) {
	m, err := sample.BetaCCFOfAnd(0.01, 0.1)
	require.NoError(t, err)
	require.Len(t, m.CCFGroups, 1)

	require.NoError(t, model.ExpandCCFGroups(m, 0))
	assert.Empty(t, m.CCFGroups)

	rootIdx := m.RootIndex()
	root := m.Gates[rootIdx]
	require.Len(t, root.Args, 3)

	for _, arg := range root.Args {
		require.Equal(t, model.ArgGate, arg.Kind)
		g := m.Gates[arg.Index]
		assert.Equal(t, model.OR, g.Connective)
		require.Len(t, g.Args, 2)

		var indepIdx, sharedIdx = -1, -1
		for _, a := range g.Args {
			require.Equal(t, model.ArgBasicEvent, a.Kind)
			if m.BasicEvents[a.Index].ID == "CCF_abc" {
				sharedIdx = a.Index
			} else {
				indepIdx = a.Index
			}
		}
		require.NotEqual(t, -1, indepIdx)
		require.NotEqual(t, -1, sharedIdx)
		assert.InDelta(t, 0.009, m.BasicEvents[indepIdx].Prob.Value(0), 1e-12)
		assert.InDelta(t, 0.001, m.BasicEvents[sharedIdx].Prob.Value(0), 1e-12)
	}

	require.NoError(t, m.Index())
}

// TestExpandCCFGroupsIsNoopWithoutGroups checks the early return for a
// model with no CCF groups at all.
func TestExpandCCFGroupsIsNoopWithoutGroups(t *testing.T) {
	m, err := sample.TwoOfTwoAnd(0.1)
	require.NoError(t, err)
	before := len(m.BasicEvents)
	require.NoError(t, model.ExpandCCFGroups(m, 0))
	assert.Len(t, m.BasicEvents, before)
}
