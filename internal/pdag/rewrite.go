// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package pdag

// Substitute rewrites every argument list and the root literal,
// replacing any reference to a node index present in subs with its
// mapped literal, composing complement bits along the way. It follows
// chains (a substitution target that itself got substituted) to their
// end on every lookup, without compressing them, and stops after
// len(p.Nodes)+1 steps if subs contains a cycle.
//
// Connective normalization, constant propagation, boolean optimization
// and structural-hash reconciliation (§4.B) record whole-gate
// replacements in a subs map and apply it with Substitute; coalescing
// rewrites argument lists in place instead.
func (p *PDAG) Substitute(subs map[int]Lit) {
	if len(subs) == 0 {
		return
	}
	resolve := func(l Lit) Lit {
		visited := 0
		for {
			r, ok := subs[l.Index]
			if !ok {
				return l
			}
			l = Lit{Index: r.Index, Complement: l.Complement != r.Complement}
			visited++
			if visited > len(p.Nodes)+1 {
				// Defensive: a cycle in the substitution map itself is a
				// programming error in the calling pass, not user input.
				return l
			}
		}
	}
	for _, n := range p.Nodes {
		if n.Kind != KindGate {
			continue
		}
		for i, a := range n.Args {
			n.Args[i] = resolve(a)
		}
	}
	p.Root = resolve(p.Root)
}

// VarSupport returns the set of basic-event model indices reachable
// from the node at idx, memoized in cache across calls (callers own the
// cache so it can be reused across a whole pass instead of recomputed
// per node). Used by the module-detection pass (§4.B pass 5) to test
// whether sibling arguments have disjoint variable support.
func (p *PDAG) VarSupport(idx int, cache map[int]map[int]bool) map[int]bool {
	if s, ok := cache[idx]; ok {
		return s
	}
	n := p.Nodes[idx]
	support := make(map[int]bool)
	switch n.Kind {
	case KindVariable:
		support[n.Var] = true
	case KindGate:
		for _, a := range n.Args {
			for v := range p.VarSupport(a.Index, cache) {
				support[v] = true
			}
		}
	}
	cache[idx] = support
	return support
}

// disjoint reports whether a and b share no element.
func disjoint(a, b map[int]bool) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for v := range small {
		if big[v] {
			return false
		}
	}
	return true
}
