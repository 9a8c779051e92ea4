// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// constantPropagation is pass 2: fold constant children per connective
// identity, short-circuiting the whole gate when its identity element
// demands it. Whole-gate folds are collected in subs and applied by one
// Substitute at the end of the pass, so a parent sees a child folded in
// this round as a constant only on the next round of Run's loop.
func constantPropagation(p *pdag.PDAG) bool {
	subs := make(map[int]pdag.Lit)
	changed := false
	for _, n := range p.Nodes {
		if n.Kind != pdag.KindGate {
			continue
		}
		switch n.Connective {
		case model.AND:
			if fold, res := foldAndOr(p, n.Args, true); fold {
				if res.isConst {
					subs[n.Index] = p.Constant(res.value)
				} else if res.forward != nil {
					subs[n.Index] = *res.forward
				} else {
					n.Args = res.args
				}
				changed = true
			}
		case model.OR:
			if fold, res := foldAndOr(p, n.Args, false); fold {
				if res.isConst {
					subs[n.Index] = p.Constant(res.value)
				} else if res.forward != nil {
					subs[n.Index] = *res.forward
				} else {
					n.Args = res.args
				}
				changed = true
			}
		case model.XOR:
			if fold, res := foldXor(p, n.Args); fold {
				if res.isConst {
					subs[n.Index] = p.Constant(res.value)
				} else if res.forward != nil {
					subs[n.Index] = *res.forward
				} else {
					n.Args = res.args
				}
				changed = true
			}
		case model.ATLEAST:
			if fold, res, k := foldAtLeast(p, n.Args, n.K); fold {
				if res.isConst {
					subs[n.Index] = p.Constant(res.value)
				} else if res.forward != nil {
					subs[n.Index] = *res.forward
				} else {
					n.Args = res.args
					n.K = k
				}
				changed = true
			}
		}
	}
	if len(subs) > 0 {
		p.Substitute(subs)
	}
	return changed
}

type foldResult struct {
	isConst bool
	value   bool
	forward *pdag.Lit
	args    []pdag.Lit
}

// foldAndOr evaluates constant children of an AND (isAnd) or OR gate.
// The absorbing element (FALSE for AND, TRUE for OR) short-circuits the
// whole gate; the identity element (TRUE for AND, FALSE for OR) is
// simply dropped from the argument list.
func foldAndOr(p *pdag.PDAG, args []pdag.Lit, isAnd bool) (bool, foldResult) {
	absorbing := !isAnd // AND absorbs on FALSE, OR absorbs on TRUE
	kept := make([]pdag.Lit, 0, len(args))
	anyConst := false
	for _, a := range args {
		ok, v := p.IsConstant(a)
		if !ok {
			kept = append(kept, a)
			continue
		}
		anyConst = true
		if v == absorbing {
			return true, foldResult{isConst: true, value: absorbing}
		}
		// otherwise v is the identity element: drop it
	}
	if !anyConst {
		return false, foldResult{}
	}
	switch len(kept) {
	case 0:
		return true, foldResult{isConst: true, value: !absorbing}
	case 1:
		l := kept[0]
		return true, foldResult{forward: &l}
	default:
		return true, foldResult{args: kept}
	}
}

// foldXor evaluates constant children of an XOR gate (N-ary parity: the
// result is true iff an odd number of arguments are true). Each
// constant-true argument flips the running parity and is dropped; each
// constant-false argument is simply dropped.
func foldXor(p *pdag.PDAG, args []pdag.Lit) (bool, foldResult) {
	kept := make([]pdag.Lit, 0, len(args))
	flip := false
	anyConst := false
	for _, a := range args {
		ok, v := p.IsConstant(a)
		if !ok {
			kept = append(kept, a)
			continue
		}
		anyConst = true
		if v {
			flip = !flip
		}
	}
	if !anyConst {
		return false, foldResult{}
	}
	switch len(kept) {
	case 0:
		return true, foldResult{isConst: true, value: flip}
	case 1:
		l := kept[0]
		if flip {
			l = l.Not()
		}
		return true, foldResult{forward: &l}
	default:
		if flip {
			// fold the parity flip into the first surviving argument's
			// complement bit rather than carrying a separate flag
			kept[0] = kept[0].Not()
		}
		return true, foldResult{args: kept}
	}
}

// foldAtLeast evaluates constant children of an ATLEAST(k) gate: each
// constant-true argument satisfies one unit of the threshold and is
// dropped; each constant-false argument is dropped outright.
func foldAtLeast(p *pdag.PDAG, args []pdag.Lit, k int) (bool, foldResult, int) {
	kept := make([]pdag.Lit, 0, len(args))
	satisfied := 0
	anyConst := false
	for _, a := range args {
		ok, v := p.IsConstant(a)
		if !ok {
			kept = append(kept, a)
			continue
		}
		anyConst = true
		if v {
			satisfied++
		}
	}
	if !anyConst {
		return false, foldResult{}, k
	}
	k2 := k - satisfied
	if k2 <= 0 {
		return true, foldResult{isConst: true, value: true}, 0
	}
	if k2 > len(kept) {
		return true, foldResult{isConst: true, value: false}, 0
	}
	if k2 == len(kept) {
		// ATLEAST(n,n) == AND
		return true, foldResult{args: kept}, k2 // caller keeps ATLEAST connective; n==k is equivalent to AND and the BDD/ZBDD engines handle it identically
	}
	if len(kept) == 1 {
		l := kept[0]
		return true, foldResult{forward: &l}, 0
	}
	return true, foldResult{args: kept}, k2
}
