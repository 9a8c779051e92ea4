// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package pdag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/model"
)

func TestStructuralHashingDedupesEquivalentGates(t *testing.T) {
	p := New()
	a := p.Variable(0)
	b := p.Variable(1)

	g1, err := p.NewGate(model.AND, 0, []Lit{a, b})
	require.NoError(t, err)
	g2, err := p.NewGate(model.AND, 0, []Lit{b, a})
	require.NoError(t, err)

	assert.Equal(t, g1, g2, "AND(a,b) and AND(b,a) must strash to the same node")
}

func TestDuplicateArgumentsAreAbsorbed(t *testing.T) {
	p := New()
	a := p.Variable(0)

	g, err := p.NewGate(model.OR, 0, []Lit{a, a, a})
	require.NoError(t, err)

	require.Equal(t, KindGate, p.Nodes[g.Index].Kind)
	assert.Len(t, p.Nodes[g.Index].Args, 1)
}

func TestVariableReferencesAreDeduplicated(t *testing.T) {
	p := New()
	a1 := p.Variable(3)
	a2 := p.Variable(3)
	assert.Equal(t, a1, a2)
}

func TestAtLeastRejectsBadThreshold(t *testing.T) {
	p := New()
	a := p.Variable(0)
	b := p.Variable(1)

	_, err := p.NewGate(model.ATLEAST, 0, []Lit{a, b})
	assert.Error(t, err)

	_, err = p.NewGate(model.ATLEAST, 3, []Lit{a, b})
	assert.Error(t, err)

	_, err = p.NewGate(model.ATLEAST, 1, []Lit{a, b})
	assert.NoError(t, err)
}

func TestFreezeDetectsCycle(t *testing.T) {
	p := New()
	// Hand-construct a cycle: not reachable through the normal builder
	// (which only appends), so we poke at the arena directly.
	n0 := &Node{Kind: KindGate, Connective: model.AND, Args: []Lit{{Index: 2}}}
	n1 := &Node{Kind: KindGate, Connective: model.AND, Args: []Lit{{Index: 0}}}
	p.Nodes = append(p.Nodes, n0, n1)
	n0.Index = len(p.Nodes) - 2
	n1.Index = len(p.Nodes) - 1
	p.Root = Lit{Index: n0.Index}
	n0.Args = []Lit{{Index: n1.Index}}
	n1.Args = []Lit{{Index: n0.Index}}

	_, err := p.Freeze()
	assert.Error(t, err)
}

func TestFreezeProducesLeavesBeforeRoot(t *testing.T) {
	m := &model.Model{
		Name: "t",
		Root: "G0",
		Gates: []model.Gate{
			{ID: "G0", Connective: model.AND, Args: []model.Arg{
				{Kind: model.ArgGate, Index: 1},
				{Kind: model.ArgBasicEvent, Index: 0},
			}},
			{ID: "G1", Connective: model.OR, Args: []model.Arg{
				{Kind: model.ArgBasicEvent, Index: 1},
				{Kind: model.ArgBasicEvent, Index: 2},
			}},
		},
		BasicEvents: []model.BasicEvent{
			{ID: "A", Prob: model.Constant{P: 0.1}},
			{ID: "B", Prob: model.Constant{P: 0.2}},
			{ID: "C", Prob: model.Constant{P: 0.3}},
		},
	}
	require.NoError(t, m.Index())

	p, err := Build(m)
	require.NoError(t, err)

	order, err := p.Freeze()
	require.NoError(t, err)
	require.NotEmpty(t, order)
	assert.Equal(t, p.Root.Index, order[len(order)-1], "root must be last in a leaves-first topological order")
}

func TestHouseEventsAreFoldedToConstants(t *testing.T) {
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
		HouseEvents: []model.HouseEvent{{ID: "H", State: true}},
	}
	require.NoError(t, m.Index())

	p, err := Build(m)
	require.NoError(t, err)

	g := p.Nodes[p.Root.Index]
	require.Equal(t, KindGate, g.Kind)
	var sawConstTrue bool
	for _, a := range g.Args {
		if ok, v := p.IsConstant(a); ok {
			sawConstTrue = sawConstTrue || v
		}
	}
	assert.True(t, sawConstTrue)
}

func TestComplementBitRoundTrips(t *testing.T) {
	p := New()
	a := p.Variable(0)
	na := a.Not()
	assert.NotEqual(t, a, na)
	assert.Equal(t, a, na.Not())
}
