// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// booleanOptimize is pass 5: contradiction/tautology detection and a
// bounded one-level absorption rewrite (A AND (A OR X) -> A, and the
// dual), applied per gate without recursing into grandchildren — the
// same "bounded... to avoid blow-up" philosophy the distilled spec
// calls for in gate decomposition applies here too.
func booleanOptimize(p *pdag.PDAG) bool {
	subs := make(map[int]pdag.Lit)
	changed := false
	for _, n := range p.Nodes {
		if n.Kind != pdag.KindGate {
			continue
		}
		switch n.Connective {
		case model.AND, model.OR, model.XOR:
			if hasComplementaryPair(n.Args) && (n.Connective != model.XOR || len(n.Args) == 2) {
				// AND with a literal and its complement is FALSE; OR with
				// one is TRUE, and so is a two-argument XOR of a literal
				// and its complement. A wider XOR is left as it is: the
				// pair adds exactly one true argument, so the gate is the
				// negated XOR of the remaining arguments, not a constant.
				subs[n.Index] = p.Constant(n.Connective != model.AND)
				changed = true
				continue
			}
		}
		if n.Connective == model.AND || n.Connective == model.OR {
			if absorbed := absorb(p, n); absorbed {
				changed = true
			}
		}
	}
	if len(subs) > 0 {
		p.Substitute(subs)
	}
	return changed
}

// hasComplementaryPair reports whether args contains two entries that
// reference the same node with opposite complement bits.
func hasComplementaryPair(args []pdag.Lit) bool {
	byIndex := make(map[int]bool, len(args))
	for _, a := range args {
		if have, ok := byIndex[a.Index]; ok && have != a.Complement {
			return true
		}
		byIndex[a.Index] = a.Complement
	}
	return false
}

// absorb drops any argument of n that is itself a same-polarity gate of
// the dual connective containing, among its own direct arguments, a
// literal equal to one of n's other direct arguments: AND(a, OR(a,x))
// -> AND(a) (i.e. the OR(a,x) argument is dropped), and the dual for OR.
// Only direct (one-level) children are inspected.
func absorb(p *pdag.PDAG, n *pdag.Node) bool {
	dual := model.OR
	if n.Connective == model.OR {
		dual = model.AND
	}
	siblings := make(map[pdag.Lit]bool, len(n.Args))
	for _, a := range n.Args {
		siblings[a] = true
	}
	kept := make([]pdag.Lit, 0, len(n.Args))
	changed := false
	for _, a := range n.Args {
		child := p.Nodes[a.Index]
		if !a.Complement && child.Kind == pdag.KindGate && child.Connective == dual {
			absorbedAway := false
			for _, ca := range child.Args {
				if siblings[ca] {
					absorbedAway = true
					break
				}
			}
			if absorbedAway {
				changed = true
				continue
			}
		}
		kept = append(kept, a)
	}
	if !changed {
		return false
	}
	if len(kept) == 0 {
		// every argument absorbed away is impossible for a well-formed
		// gate (n itself is one of its own siblings' terms only if n
		// self-referenced, which Build/NewGate never produces), but
		// guard anyway rather than leave an empty gate.
		return false
	}
	n.Args = kept
	return true
}
