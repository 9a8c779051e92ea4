// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import "github.com/scram-core/scram/internal/pdag"

// extractModules is pass 5's module-detection half, run once after the
// fixpoint loop settles (module status is a property of the final
// shape, not something intermediate rewrites need to track). A node
// qualifies as a module when it has exactly one parent and its variable
// support is disjoint from every one of its parent's other direct
// arguments — the Open Question decision recorded in the grounding
// ledger: no additional size threshold beyond minSize.
//
// Module status is advisory: internal/bdd, internal/zbdd, and
// internal/mocus may use pdag.Node.Module to order a module's variables
// as a contiguous block or to cache its BDD once and reuse it at every
// occurrence, but the PDAG shape itself is not restructured.
func extractModules(p *pdag.PDAG, minSize int) {
	if minSize < 1 {
		minSize = 1
	}
	support := make(map[int]map[int]bool)
	for _, n := range p.Nodes {
		n.Module = false
	}
	for _, parent := range p.Nodes {
		if parent.Kind != pdag.KindGate {
			continue
		}
		for i, a := range parent.Args {
			child := p.Nodes[a.Index]
			if child.Kind != pdag.KindGate {
				continue
			}
			if p.Parents(pdag.Lit{Index: a.Index}) != 1 {
				continue
			}
			own := p.VarSupport(a.Index, support)
			if len(own) < minSize {
				continue
			}
			isolated := true
			for j, sib := range parent.Args {
				if j == i {
					continue
				}
				if sibSupportDisjoint(p, support, sib, own) {
					continue
				}
				isolated = false
				break
			}
			if isolated {
				child.Module = true
			}
		}
	}
}

func sibSupportDisjoint(p *pdag.PDAG, cache map[int]map[int]bool, sib pdag.Lit, own map[int]bool) bool {
	sibSupport := p.VarSupport(sib.Index, cache)
	for v := range own {
		if sibSupport[v] {
			return false
		}
	}
	return true
}
