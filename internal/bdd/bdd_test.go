// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package bdd

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

func newTestManager(nvars int) *Manager {
	return NewManager(nvars, zerolog.Nop())
}

func TestBuildIsCanonical(t *testing.T) {
	m := newTestManager(3)
	a, b := m.Var(0), m.Var(1)

	f1 := m.And(a, b)
	f2 := m.And(a, b)
	assert.Equal(t, f1, f2, "building the same function twice must yield the same edge")

	g1 := m.And(a, b)
	g2 := m.And(b, a)
	assert.Equal(t, g1, g2, "AND is commutative at the representation level too")
}

func TestNotIsBitFlipAndInvolutive(t *testing.T) {
	m := newTestManager(2)
	a := m.Var(0)
	before := m.NodeCount()
	na := m.Not(a)
	assert.NotEqual(t, a, na)
	assert.Equal(t, a, m.Not(na))
	assert.Equal(t, before, m.NodeCount(), "Not must never allocate a node")
}

func TestApplyTruthTable(t *testing.T) {
	m := newTestManager(2)
	a, b := m.Var(0), m.Var(1)
	p := []float64{1, 1} // both true: evaluate the constructed function directly via probability at the all-true point

	cases := []struct {
		name string
		e    Edge
		want float64
	}{
		{"and", m.And(a, b), 1},
		{"or", m.Or(a, b), 1},
		{"xor", m.Apply(OpXor, a, b), 0},
		{"nand", m.Apply(OpNand, a, b), 0},
		{"nor", m.Apply(OpNor, a, b), 0},
		{"imp", m.Apply(OpImp, a, b), 1},
		{"biimp", m.Apply(OpBiimp, a, b), 1},
		{"and-not", m.Apply(OpAndNot, a, b), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, m.Probability(c.e, p))
		})
	}
}

func TestApplyTruthTableAllFalse(t *testing.T) {
	m := newTestManager(2)
	a, b := m.Var(0), m.Var(1)
	p := []float64{0, 0}

	assert.Equal(t, 0.0, m.Probability(m.And(a, b), p))
	assert.Equal(t, 0.0, m.Probability(m.Or(a, b), p))
	assert.Equal(t, 1.0, m.Probability(m.Apply(OpImp, a, b), p))
	assert.Equal(t, 1.0, m.Probability(m.Apply(OpBiimp, a, b), p))
}

func TestIteMatchesAndOrForm(t *testing.T) {
	m := newTestManager(3)
	f, g, h := m.Var(0), m.Var(1), m.Var(2)

	ite := m.Ite(f, g, h)
	expect := m.Or(m.And(f, g), m.And(m.Not(f), h))
	assert.Equal(t, expect, ite)
}

func TestAndManyOrManyIdentities(t *testing.T) {
	m := newTestManager(1)
	assert.Equal(t, True, m.AndMany())
	assert.Equal(t, False, m.OrMany())
}

func TestProbabilityExactTwoOfTwoAnd(t *testing.T) {
	m := newTestManager(2)
	a, b := m.Var(0), m.Var(1)
	f := m.And(a, b)
	p := []float64{0.1, 0.2}
	assert.InDelta(t, 0.02, m.Probability(f, p), 1e-12)
}

func TestProbabilityComplementedEdge(t *testing.T) {
	m := newTestManager(1)
	a := m.Var(0)
	p := []float64{0.3}
	assert.InDelta(t, 0.7, m.Probability(m.Not(a), p), 1e-12)
}

func TestRestrictCofactor(t *testing.T) {
	m := newTestManager(2)
	a, b := m.Var(0), m.Var(1)
	f := m.And(a, b)

	restrictedTrue := m.Restrict(f, 0, true)
	assert.Equal(t, b, restrictedTrue)

	restrictedFalse := m.Restrict(f, 0, false)
	assert.Equal(t, False, restrictedFalse)
}

func TestSatcountTwoOfTwoAnd(t *testing.T) {
	m := newTestManager(2)
	a, b := m.Var(0), m.Var(1)
	f := m.And(a, b)
	require.Equal(t, int64(1), m.Satcount(f).Int64())
}

func TestSatcountComplementedOr(t *testing.T) {
	m := newTestManager(2)
	a, b := m.Var(0), m.Var(1)
	f := m.Or(a, b) // satisfied by 3 of 4 assignments
	require.Equal(t, int64(3), m.Satcount(f).Int64())
	require.Equal(t, int64(1), m.Satcount(m.Not(f)).Int64())
}

func TestSatcountUnusedVariablesDoubleCount(t *testing.T) {
	m := newTestManager(3)
	a := m.Var(0)
	// f depends only on variable 0, but the manager has 3 variables: the
	// two free variables double the count twice over (x4).
	require.Equal(t, int64(4), m.Satcount(a).Int64())
}

func buildFrozenPDAG(t *testing.T, build func(p *pdag.PDAG) pdag.Lit) (*pdag.PDAG, []int) {
	t.Helper()
	p := pdag.New()
	p.Root = build(p)
	order, err := p.Freeze()
	require.NoError(t, err)
	return p, order
}

func TestCompileAndGateMatchesAnd(t *testing.T) {
	p, order := buildFrozenPDAG(t, func(p *pdag.PDAG) pdag.Lit {
		a, b := p.Variable(0), p.Variable(1)
		lit, err := p.NewGate(model.AND, 0, []pdag.Lit{a, b})
		require.NoError(t, err)
		return lit
	})
	m := newTestManager(2)
	e, err := Compile(context.Background(), p, order, m)
	require.NoError(t, err)
	assert.Equal(t, m.And(m.Var(0), m.Var(1)), e)
}

func TestCompileOrGateMatchesOr(t *testing.T) {
	p, order := buildFrozenPDAG(t, func(p *pdag.PDAG) pdag.Lit {
		a, b := p.Variable(0), p.Variable(1)
		lit, err := p.NewGate(model.OR, 0, []pdag.Lit{a, b})
		require.NoError(t, err)
		return lit
	})
	m := newTestManager(2)
	e, err := Compile(context.Background(), p, order, m)
	require.NoError(t, err)
	assert.Equal(t, m.Or(m.Var(0), m.Var(1)), e)
}

func TestCompileAtLeastTwoOfThreeMatchesSatcount(t *testing.T) {
	p, order := buildFrozenPDAG(t, func(p *pdag.PDAG) pdag.Lit {
		a, b, c := p.Variable(0), p.Variable(1), p.Variable(2)
		lit, err := p.NewGate(model.ATLEAST, 2, []pdag.Lit{a, b, c})
		require.NoError(t, err)
		return lit
	})
	m := newTestManager(3)
	e, err := Compile(context.Background(), p, order, m)
	require.NoError(t, err)
	// 4 of the 8 assignments have two or more of three variables true.
	require.Equal(t, int64(4), m.Satcount(e).Int64())
}

func TestCompileComplementedLeafNegates(t *testing.T) {
	p, order := buildFrozenPDAG(t, func(p *pdag.PDAG) pdag.Lit {
		return p.Variable(0).Not()
	})
	m := newTestManager(1)
	e, err := Compile(context.Background(), p, order, m)
	require.NoError(t, err)
	assert.Equal(t, m.NVar(0), e)
}
