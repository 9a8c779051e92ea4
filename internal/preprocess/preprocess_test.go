// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

func buildAndFreeze(t *testing.T, m *model.Model) *pdag.PDAG {
	t.Helper()
	require.NoError(t, m.Index())
	p, err := pdag.Build(m)
	require.NoError(t, err)
	_, err = p.Freeze()
	require.NoError(t, err)
	return p
}

func TestNormalizeEliminatesNandAndForwardsNull(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.NULL, Args: []model.Arg{{Kind: model.ArgGate, Index: 1}}},
			{ID: "G1", Connective: model.NAND, Args: []model.Arg{
				{Kind: model.ArgBasicEvent, Index: 0},
				{Kind: model.ArgBasicEvent, Index: 1},
			}},
		},
		BasicEvents: []model.BasicEvent{
			{ID: "A", Prob: model.Constant{P: 0.1}},
			{ID: "B", Prob: model.Constant{P: 0.2}},
		},
	}
	p := buildAndFreeze(t, m)

	_, err := Run(context.Background(), p, Options{})
	require.NoError(t, err)

	root := p.Nodes[p.Root.Index]
	require.Equal(t, pdag.KindGate, root.Kind)
	assert.Equal(t, model.OR, root.Connective)
	assert.False(t, p.Root.Complement, "NAND forwarded through a NULL root is sunk into OR(!A, !B)")
	for _, a := range root.Args {
		assert.True(t, a.Complement, "each argument of the sunk NAND must be negated")
	}
}

func TestConstantPropagationFoldsAndToFalse(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.AND, Args: []model.Arg{
				{Kind: model.ArgHouseEvent, Index: 0},
				{Kind: model.ArgBasicEvent, Index: 0},
			}},
		},
		BasicEvents: []model.BasicEvent{{ID: "A", Prob: model.Constant{P: 0.1}}},
		HouseEvents: []model.HouseEvent{{ID: "H", State: false}},
	}
	p := buildAndFreeze(t, m)

	res, err := Run(context.Background(), p, Options{})
	require.NoError(t, err)

	assert.True(t, res.TopConstant)
	assert.False(t, res.TopValue)
}

func TestConstantPropagationForwardsSingleSurvivor(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.OR, Args: []model.Arg{
				{Kind: model.ArgHouseEvent, Index: 0},
				{Kind: model.ArgBasicEvent, Index: 0},
			}},
		},
		BasicEvents: []model.BasicEvent{{ID: "A", Prob: model.Constant{P: 0.1}}},
		HouseEvents: []model.HouseEvent{{ID: "H", State: false}},
	}
	p := buildAndFreeze(t, m)

	res, err := Run(context.Background(), p, Options{})
	require.NoError(t, err)
	require.False(t, res.TopConstant)

	root := p.Nodes[p.Root.Index]
	assert.Equal(t, pdag.KindVariable, root.Kind, "OR(FALSE,A) must fold to A directly")
}

func TestCoalesceFlattensNestedAnd(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.AND, Args: []model.Arg{
				{Kind: model.ArgGate, Index: 1},
				{Kind: model.ArgBasicEvent, Index: 2},
			}},
			{ID: "G1", Connective: model.AND, Args: []model.Arg{
				{Kind: model.ArgBasicEvent, Index: 0},
				{Kind: model.ArgBasicEvent, Index: 1},
			}},
		},
		BasicEvents: []model.BasicEvent{
			{ID: "A", Prob: model.Constant{P: 0.1}},
			{ID: "B", Prob: model.Constant{P: 0.2}},
			{ID: "C", Prob: model.Constant{P: 0.3}},
		},
	}
	p := buildAndFreeze(t, m)

	_, err := Run(context.Background(), p, Options{})
	require.NoError(t, err)

	root := p.Nodes[p.Root.Index]
	require.Equal(t, pdag.KindGate, root.Kind)
	assert.Equal(t, model.AND, root.Connective)
	assert.Len(t, root.Args, 3, "AND(AND(A,B),C) must flatten to a single 3-argument AND")
}

func TestContradictionFoldsAndToFalse(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.AND, Args: []model.Arg{
				{Kind: model.ArgBasicEvent, Index: 0},
				{Kind: model.ArgBasicEvent, Index: 0, Complement: true},
			}},
		},
		BasicEvents: []model.BasicEvent{{ID: "A", Prob: model.Constant{P: 0.1}}},
	}
	p := buildAndFreeze(t, m)

	res, err := Run(context.Background(), p, Options{})
	require.NoError(t, err)
	assert.True(t, res.TopConstant)
	assert.False(t, res.TopValue)
}

func TestModuleExtractionTagsDisjointSubtree(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.AND, Args: []model.Arg{
				{Kind: model.ArgGate, Index: 1},
				{Kind: model.ArgBasicEvent, Index: 2},
			}},
			{ID: "G1", Connective: model.OR, Args: []model.Arg{
				{Kind: model.ArgBasicEvent, Index: 0},
				{Kind: model.ArgBasicEvent, Index: 1},
			}},
		},
		BasicEvents: []model.BasicEvent{
			{ID: "A", Prob: model.Constant{P: 0.1}},
			{ID: "B", Prob: model.Constant{P: 0.2}},
			{ID: "C", Prob: model.Constant{P: 0.3}},
		},
	}
	p := buildAndFreeze(t, m)

	_, err := Run(context.Background(), p, Options{})
	require.NoError(t, err)

	root := p.Nodes[p.Root.Index]
	var g1 *pdag.Node
	for _, a := range root.Args {
		if n := p.Nodes[a.Index]; n.Kind == pdag.KindGate {
			g1 = n
		}
	}
	require.NotNil(t, g1)
	assert.True(t, g1.Module, "G1's support {A,B} is disjoint from sibling C, with a single parent G0")
}

func TestRunHonorsCancellation(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.AND, Args: []model.Arg{{Kind: model.ArgBasicEvent, Index: 0}}},
		},
		BasicEvents: []model.BasicEvent{{ID: "A", Prob: model.Constant{P: 0.1}}},
	}
	p := buildAndFreeze(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, p, Options{})
	assert.ErrorAs(t, err, new(*model.Cancelled))
}
