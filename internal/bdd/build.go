// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package bdd

import (
	"context"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// Compile translates a preprocessed, frozen PDAG into a BDD edge,
// walking order (the leaves-first topological order preprocess.Run
// already computed) and combining each gate's already-built argument
// edges with Apply: And for AND, Or for OR, repeated Apply(OpXor, ...)
// for XOR, and atLeast's vote-counting recursion for ATLEAST(k,n),
// following the teacher's bottom-up Shannon-expansion construction
// style (dalzilio-rudd/bdd.go's build-from-formula walk) generalized
// from a two-operand formula tree to this PDAG's n-ary gates.
func Compile(ctx context.Context, p *pdag.PDAG, order []int, m *Manager) (Edge, error) {
	edges := make(map[int]Edge, len(order))
	for _, idx := range order {
		if err := ctx.Err(); err != nil {
			return False, &model.Cancelled{}
		}
		n := p.Nodes[idx]
		var e Edge
		switch n.Kind {
		case pdag.KindConstant:
			e = m.constEdge(n.Value)
		case pdag.KindVariable:
			e = m.Var(n.Var)
		case pdag.KindGate:
			e = compileGate(m, n, edges)
		}
		edges[idx] = e
	}
	return argEdge(edges, p.Root), nil
}

func (m *Manager) constEdge(v bool) Edge {
	if v {
		return True
	}
	return False
}

func argEdge(edges map[int]Edge, l pdag.Lit) Edge {
	e := edges[l.Index]
	if l.Complement {
		return e.Not()
	}
	return e
}

func compileGate(m *Manager, n *pdag.Node, edges map[int]Edge) Edge {
	switch n.Connective {
	case model.AND:
		res := True
		for _, a := range n.Args {
			res = m.And(res, argEdge(edges, a))
		}
		return res
	case model.OR:
		res := False
		for _, a := range n.Args {
			res = m.Or(res, argEdge(edges, a))
		}
		return res
	case model.XOR:
		res := False
		for _, a := range n.Args {
			res = m.Apply(OpXor, res, argEdge(edges, a))
		}
		return res
	default: // ATLEAST
		children := make([]Edge, len(n.Args))
		for i, a := range n.Args {
			children[i] = argEdge(edges, a)
		}
		return m.atLeast(children, n.K)
	}
}

// atLeast builds the BDD for "at least k of children hold", via the
// standard vote-counting recursion f(i,k) = ite(children[i], f(i+1,
// k-1), f(i+1,k)), memoized on (i,k) so the result is O(len(children)*k)
// nodes rather than the C(n,k)-sized sum-of-products a naive expansion
// would produce.
func (m *Manager) atLeast(children []Edge, k int) Edge {
	memo := make(map[[2]int]Edge)
	var f func(i, k int) Edge
	f = func(i, k int) Edge {
		if k <= 0 {
			return True
		}
		if i >= len(children) {
			return False
		}
		key := [2]int{i, k}
		if res, ok := memo[key]; ok {
			return res
		}
		res := m.Ite(children[i], f(i+1, k-1), f(i+1, k))
		memo[key] = res
		return res
	}
	return f(0, k)
}
