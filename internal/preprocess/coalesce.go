// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// coalesce is pass 4: flatten chains of the same connective (AND of AND
// -> AND). A child is only spliced into its parent when the edge to it
// carries no complement — a complemented AND child is, by De Morgan, an
// OR over complemented grandchildren, not something this flattening can
// fold without redistributing, so it is left alone. Also dedups the
// resulting argument list, since flattening can introduce the
// duplicates NewGate's dedupArgs only ever saw at construction time.
func coalesce(p *pdag.PDAG) bool {
	changed := false
	for _, n := range p.Nodes {
		if n.Kind != pdag.KindGate {
			continue
		}
		if n.Connective != model.AND && n.Connective != model.OR && n.Connective != model.XOR {
			continue
		}
		flat := make([]pdag.Lit, 0, len(n.Args))
		didFlatten := false
		for _, a := range n.Args {
			child := p.Nodes[a.Index]
			if !a.Complement && child.Kind == pdag.KindGate && child.Connective == n.Connective {
				flat = append(flat, child.Args...)
				didFlatten = true
				continue
			}
			flat = append(flat, a)
		}
		if !didFlatten {
			continue
		}
		deduped := dedupPreserving(flat)
		n.Args = deduped
		changed = true
	}
	return changed
}

func dedupPreserving(args []pdag.Lit) []pdag.Lit {
	seen := make(map[pdag.Lit]bool, len(args))
	out := make([]pdag.Lit, 0, len(args))
	for _, a := range args {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// reconcileStructuralHash is pass 6: passes that mutate Args in place
// (coalesce, booleanOptimize) bypass NewGate's hash-consing, so their
// output can leave two distinct node indices with identical (connective,
// K, sorted signed args) keys. This pass rebuilds the strash index from
// the current state of every gate and substitutes newer duplicates onto
// whichever node already held that key, restoring the §4.A invariant
// that no two structurally equivalent subgraphs survive.
func reconcileStructuralHash(p *pdag.PDAG) bool {
	seen := make(map[string]int)
	subs := make(map[int]pdag.Lit)
	for _, n := range p.Nodes {
		if n.Kind != pdag.KindGate {
			continue
		}
		key := p.GateKeyFor(n)
		if existing, ok := seen[key]; ok && existing != n.Index {
			subs[n.Index] = pdag.Lit{Index: existing}
			continue
		}
		seen[key] = n.Index
	}
	if len(subs) == 0 {
		return false
	}
	p.Substitute(subs)
	return true
}
