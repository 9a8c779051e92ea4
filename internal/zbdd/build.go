// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package zbdd

import (
	"context"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// Compile translates a preprocessed, frozen PDAG into a ZBDD family of
// minimal-cut-set candidates directly, bottom-up over order (the
// leaves-first topological order preprocess.Run already computed),
// mirroring internal/bdd's Apply-per-gate construction but combining
// children with Union (OR), Product (AND), or a combinatorial union of
// Products over k-subsets (ATLEAST) instead of Apply. Every argument
// literal reaching this function is guaranteed complement-free except
// at variable leaves, by preprocess.Run's literal-sinking pass, so
// there is never a need to negate a ZBDD family here.
//
// This is the "--zbdd" CLI path; "--mocus" instead builds the same
// kind of family through internal/mocus's top-down rule expansion,
// sharing this package's Manager as its node arena.
func Compile(ctx context.Context, p *pdag.PDAG, order []int, m *Manager) (Edge, error) {
	edges := make(map[int]Edge, len(order))
	for _, idx := range order {
		if err := ctx.Err(); err != nil {
			return Empty, &model.Cancelled{}
		}
		n := p.Nodes[idx]
		var e Edge
		switch n.Kind {
		case pdag.KindConstant:
			if n.Value {
				e = Base
			} else {
				e = Empty
			}
		case pdag.KindVariable:
			e = m.Unit(n.Var, false)
		case pdag.KindGate:
			e = compileGate(m, n, edges)
		}
		edges[idx] = e
	}
	return argEdge(m, edges, p.Root), nil
}

// argEdge resolves one literal's ZBDD edge, applying its complement
// bit if set. Literal sinking guarantees a complemented literal here
// targets at most a variable or constant leaf, never a gate, so the
// only case requiring care is a complemented reference straight to a
// variable: that swaps the literal's polarity slot rather than
// negating the family.
func argEdge(m *Manager, edges map[int]Edge, l pdag.Lit) Edge {
	e := edges[l.Index]
	if !l.Complement {
		return e
	}
	if e == Base {
		return Empty
	}
	if e == Empty {
		return Base
	}
	n := m.nodes[e]
	be, complement := m.EventOf(n.level)
	return m.Unit(be, !complement)
}

func compileGate(m *Manager, n *pdag.Node, edges map[int]Edge) Edge {
	switch n.Connective {
	case model.AND:
		res := Base
		for _, a := range n.Args {
			res = m.Product(res, argEdge(m, edges, a))
		}
		return res
	case model.OR:
		res := Empty
		for _, a := range n.Args {
			res = m.Union(res, argEdge(m, edges, a))
		}
		return res
	case model.ATLEAST:
		children := make([]Edge, len(n.Args))
		for i, a := range n.Args {
			children[i] = argEdge(m, edges, a)
		}
		return atLeastUnion(m, children, n.K)
	default:
		// XOR over literal-sunk arguments still has a well-defined,
		// coherent-combination expansion: at any odd subset size the
		// gate is true, so the family is the union of Products over
		// every odd-sized subset of children, exactly like ATLEAST but
		// restricted to odd cardinalities rather than "k or more".
		return xorUnion(m, argEdgesOf(m, edges, n.Args))
	}
}

func argEdgesOf(m *Manager, edges map[int]Edge, args []pdag.Lit) []Edge {
	out := make([]Edge, len(args))
	for i, a := range args {
		out[i] = argEdge(m, edges, a)
	}
	return out
}

// atLeastUnion unions Product(subset) over every k-or-more-sized
// subset of children — the direct combinatorial reading of ATLEAST(k,
// n): at least k of the n children hold simultaneously.
func atLeastUnion(m *Manager, children []Edge, k int) Edge {
	res := Empty
	n := len(children)
	var combine func(start, chosen int, acc Edge)
	combine = func(start, chosen int, acc Edge) {
		if chosen >= k {
			res = m.Union(res, acc)
		}
		for i := start; i < n; i++ {
			combine(i+1, chosen+1, m.Product(acc, children[i]))
		}
	}
	combine(0, 0, Base)
	return res
}

// xorUnion unions Product(subset) over every odd-sized subset of
// children, the cut-set reading of an N-ary XOR (true iff an odd
// number of its children are true).
func xorUnion(m *Manager, children []Edge) Edge {
	res := Empty
	n := len(children)
	var combine func(start, chosen int, acc Edge)
	combine = func(start, chosen int, acc Edge) {
		if start == n {
			if chosen%2 == 1 {
				res = m.Union(res, acc)
			}
			return
		}
		combine(start+1, chosen, acc)
		combine(start+1, chosen+1, m.Product(acc, children[start]))
	}
	combine(0, 0, Base)
	return res
}
