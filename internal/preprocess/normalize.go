// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// normalizeConnectives is pass 1: eliminate every connective outside
// {AND, OR, ATLEAST, XOR} by expressing it in terms of those plus
// complement edges, then forwards NULL gates to their sole argument.
// ATLEAST is never eliminated here (it survives as first-class,
// matching "retained as first-class when favorable").
func normalizeConnectives(p *pdag.PDAG) bool {
	subs := make(map[int]pdag.Lit)
	for idx, n := range snapshot(p) {
		if n.Kind != pdag.KindGate {
			continue
		}
		switch n.Connective {
		case model.NOT:
			subs[idx] = n.Args[0].Not()
		case model.NULL:
			subs[idx] = n.Args[0]
		case model.NAND:
			and, _ := p.NewGate(model.AND, 0, n.Args)
			subs[idx] = and.Not()
		case model.NOR:
			or, _ := p.NewGate(model.OR, 0, n.Args)
			subs[idx] = or.Not()
		case model.IMPLY:
			// a -> b  ==  NOT(a) OR b
			or, _ := p.NewGate(model.OR, 0, []pdag.Lit{n.Args[0].Not(), n.Args[1]})
			subs[idx] = or
		case model.IFF:
			// a <-> b  ==  NOT(a XOR b)
			xor, _ := p.NewGate(model.XOR, 0, n.Args)
			subs[idx] = xor.Not()
		case model.CONSTANT:
			subs[idx] = p.Constant(n.K != 0)
		}
	}
	if len(subs) == 0 {
		return false
	}
	p.Substitute(subs)
	return true
}

// checkNoInteriorNot verifies pass 1's post-condition: no model.NOT
// gate is reachable from the root. normalizeConnectives replaces each
// NOT through Substitute by its complemented argument, which leaves the
// NOT node itself in p.Nodes with nothing pointing at it, so only nodes
// reachable from the root are checked. A reachable model.NOT node here
// means normalizeConnectives was skipped or a pass reintroduced one,
// which is a programming error in the core, not malformed input.
func checkNoInteriorNot(p *pdag.PDAG) error {
	reach := p.Reachable(p.Root)
	for _, n := range p.Nodes {
		if reach[n.Index] && n.Kind == pdag.KindGate && n.Connective == model.NOT {
			return model.NewLogicError("interior NOT gate survived normalization at node %d", n.Index)
		}
	}
	return nil
}

// snapshot copies the current node list so callers can iterate while
// normalizeConnectives calls NewGate, which appends to p.Nodes.
func snapshot(p *pdag.PDAG) []*pdag.Node {
	out := make([]*pdag.Node, len(p.Nodes))
	copy(out, p.Nodes)
	return out
}
