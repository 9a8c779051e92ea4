// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package zbdd

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

func newTestManager(numEvents, cutoff int) *Manager {
	return NewManager(numEvents, cutoff, zerolog.Nop())
}

func TestUnionIntersectDifference(t *testing.T) {
	m := newTestManager(3, 0)
	a := m.Unit(0, false)
	b := m.Unit(1, false)
	ab := m.Union(a, b)

	assert.ElementsMatch(t, []Product{{{0, false}}, {{1, false}}}, m.Products(ab))
	assert.Equal(t, a, m.Intersect(ab, a))
	assert.Equal(t, b, m.Difference(ab, a))
	assert.Equal(t, Empty, m.Difference(a, a))
}

func TestProductIsCartesianUnion(t *testing.T) {
	m := newTestManager(3, 0)
	a := m.Unit(0, false)
	bc := m.Union(m.Unit(1, false), m.Unit(2, false))

	got := m.Products(m.Product(a, bc))
	assert.ElementsMatch(t, []Product{
		{{0, false}, {1, false}},
		{{0, false}, {2, false}},
	}, got)
}

func TestProductOfBaseIsIdentity(t *testing.T) {
	m := newTestManager(2, 0)
	a := m.Unit(0, false)
	assert.Equal(t, a, m.Product(a, Base))
	assert.Equal(t, Empty, m.Product(a, Empty))
}

func TestProductCutoffTruncatesAndWarns(t *testing.T) {
	m := newTestManager(4, 1) // only single-literal products allowed
	a := m.Unit(0, false)
	b := m.Unit(1, false)
	res := m.Product(a, b) // would need 2 literals, over the cutoff
	assert.Equal(t, Empty, res)
	require.Len(t, m.Warnings(), 1)
	assert.Equal(t, model.WarnCutoffTruncated, m.Warnings()[0].Kind)
}

func TestMinimizeRemovesSupersetProducts(t *testing.T) {
	m := newTestManager(3, 0)
	a, b, c := m.Unit(0, false), m.Unit(1, false), m.Unit(2, false)
	ab := m.Product(a, b) // {a,b}
	fam := m.Union(a, ab) // {a}, {a,b}: {a,b} is a superset of {a} and must be dropped
	fam = m.Union(fam, c) // {a}, {a,b}, {c}

	min := m.Minimize(fam)
	assert.ElementsMatch(t, []Product{
		{{0, false}},
		{{2, false}},
	}, m.Products(min))
}

func TestSizeMatchesProductsCount(t *testing.T) {
	m := newTestManager(3, 0)
	a, b, c := m.Unit(0, false), m.Unit(1, false), m.Unit(2, false)
	fam := m.Union(m.Union(a, b), c)
	assert.Equal(t, int64(3), m.Size(fam).Int64())
	assert.Len(t, m.Products(fam), 3)
}

func TestContainsEmptyDistinguishesBaseFromUnit(t *testing.T) {
	m := newTestManager(2, 0)
	a := m.Unit(0, false)
	assert.True(t, m.containsEmpty(m.Union(a, Base)))
	assert.False(t, m.containsEmpty(a))
}

func buildAndCompile(t *testing.T, build func(p *pdag.PDAG) pdag.Lit, numEvents int) (*Manager, Edge) {
	t.Helper()
	p := pdag.New()
	root := build(p)
	p.Root = root
	order, err := p.Freeze()
	require.NoError(t, err)
	m := newTestManager(numEvents, 0)
	e, err := Compile(context.Background(), p, order, m)
	require.NoError(t, err)
	return m, e
}

func TestCompileAndGateIsSingleProduct(t *testing.T) {
	m, e := buildAndCompile(t, func(p *pdag.PDAG) pdag.Lit {
		a, b := p.Variable(0), p.Variable(1)
		lit, err := p.NewGate(model.AND, 0, []pdag.Lit{a, b})
		require.NoError(t, err)
		return lit
	}, 2)
	assert.ElementsMatch(t, []Product{{{0, false}, {1, false}}}, m.Products(e))
}

func TestCompileOrGateIsUnion(t *testing.T) {
	m, e := buildAndCompile(t, func(p *pdag.PDAG) pdag.Lit {
		a, b := p.Variable(0), p.Variable(1)
		lit, err := p.NewGate(model.OR, 0, []pdag.Lit{a, b})
		require.NoError(t, err)
		return lit
	}, 2)
	assert.ElementsMatch(t, []Product{{{0, false}}, {{1, false}}}, m.Products(e))
}

func TestCompileAtLeastTwoOfThree(t *testing.T) {
	m, e := buildAndCompile(t, func(p *pdag.PDAG) pdag.Lit {
		a, b, c := p.Variable(0), p.Variable(1), p.Variable(2)
		lit, err := p.NewGate(model.ATLEAST, 2, []pdag.Lit{a, b, c})
		require.NoError(t, err)
		return lit
	}, 3)
	// Compile unions the products of every subset of size k or more;
	// the non-minimal {a,b,c} is only removed by a later Minimize.
	assert.ElementsMatch(t, []Product{
		{{0, false}, {1, false}},
		{{0, false}, {2, false}},
		{{1, false}, {2, false}},
		{{0, false}, {1, false}, {2, false}},
	}, m.Products(e))
}

func TestCompileComplementedLeafUsesNegativeSlot(t *testing.T) {
	m, e := buildAndCompile(t, func(p *pdag.PDAG) pdag.Lit {
		a := p.Variable(0)
		return a.Not()
	}, 1)
	assert.ElementsMatch(t, []Product{{{0, true}}}, m.Products(e))
}
