// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// sinkComplements is pass 3: push every complement bit down to the
// literals (variable and constant leaves), via De Morgan, so that no
// argument edge pointing at a gate node ever carries Complement==true.
// This is what internal/zbdd and internal/mocus rely on — a family of
// products can represent a negative literal at a leaf, but it cannot
// represent the negation of an arbitrary sub-formula — and it is also
// what §3's BDD node definition means by "complement-edge flip on
// high": every internal BDD node still needs this same guarantee so
// that Apply never has to reconstruct a dual subgraph mid-recursion.
//
// normalizeConnectives's NAND/NOR/IMPLY/IFF rewrites are exactly the
// kind of thing that (re)introduces a complemented reference to a
// gate, so this pass always runs immediately after it in the fixpoint
// loop.
func sinkComplements(p *pdag.PDAG) bool {
	dualCache := make(map[int]int)
	var dualGate func(idx int) int
	var dualArg func(l pdag.Lit) pdag.Lit

	dualArg = func(l pdag.Lit) pdag.Lit {
		if l.Complement {
			return pdag.Lit{Index: l.Index, Complement: false}
		}
		n := p.Nodes[l.Index]
		if n.Kind != pdag.KindGate {
			return l.Not()
		}
		return pdag.Lit{Index: dualGate(n.Index), Complement: false}
	}

	dualGate = func(idx int) int {
		if cached, ok := dualCache[idx]; ok {
			return cached
		}
		n := p.Nodes[idx]
		var newLit pdag.Lit
		switch n.Connective {
		case model.AND:
			args := mapArgs(n.Args, dualArg)
			newLit, _ = p.NewGate(model.OR, 0, args)
		case model.OR:
			args := mapArgs(n.Args, dualArg)
			newLit, _ = p.NewGate(model.AND, 0, args)
		case model.XOR:
			args := make([]pdag.Lit, len(n.Args))
			copy(args, n.Args)
			args[0] = args[0].Not() // negating exactly one XOR input negates the output
			newLit, _ = p.NewGate(model.XOR, 0, args)
		case model.ATLEAST:
			args := mapArgs(n.Args, dualArg)
			newK := len(n.Args) - n.K + 1 // ¬ATLEAST(k,n) == ATLEAST(n-k+1,n) over negated args
			newLit, _ = p.NewGate(model.ATLEAST, newK, args)
		default:
			// normalizeConnectives always runs first in the same round,
			// so no other connective should reach here.
			newLit = pdag.Lit{Index: idx}
		}
		dualCache[idx] = newLit.Index
		return newLit.Index
	}

	changed := false
	for _, n := range snapshot(p) {
		if n.Kind != pdag.KindGate {
			continue
		}
		for i, a := range n.Args {
			if a.Complement && p.Nodes[a.Index].Kind == pdag.KindGate {
				n.Args[i] = pdag.Lit{Index: dualGate(a.Index), Complement: false}
				changed = true
			}
		}
	}
	if p.Root.Complement && p.Nodes[p.Root.Index].Kind == pdag.KindGate {
		p.Root = pdag.Lit{Index: dualGate(p.Root.Index), Complement: false}
		changed = true
	}
	return changed
}

func mapArgs(args []pdag.Lit, f func(pdag.Lit) pdag.Lit) []pdag.Lit {
	out := make([]pdag.Lit, len(args))
	for i, a := range args {
		out[i] = f(a)
	}
	return out
}
