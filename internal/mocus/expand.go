// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package mocus

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
	"github.com/scram-core/scram/internal/zbdd"
)

// Options configures Expand. Zero value is the documented default: a
// minimization sweep every 64 completed products.
type Options struct {
	// MinimizeInterval is how many completed products accumulate in the
	// result family before Expand runs a Minimize sweep over it. 0 means
	// the default of 64; a tighter interval spends more time minimizing
	// but keeps the family — and therefore every later Union/Product
	// against it — smaller.
	MinimizeInterval int
	Log              zerolog.Logger
}

const defaultMinimizeInterval = 64

// frontier is one item of the expansion worklist: partial is the ZBDD
// product of every literal already resolved along this path, pending
// is the list of not-yet-expanded literals still owed by the gates
// chosen so far.
type frontier struct {
	partial zbdd.Edge
	pending []pdag.Lit
}

// Expand runs the top-down worklist expansion described in doc.go,
// returning the resulting (not yet final-minimized beyond the last
// periodic sweep plus one closing sweep) family of minimal cut sets.
// p must already be preprocessed and frozen: Expand relies on
// preprocess.Run's literal-sinking invariant that no pending literal's
// complement bit ever targets a gate.
func Expand(ctx context.Context, p *pdag.PDAG, m *zbdd.Manager, opts Options) (zbdd.Edge, error) {
	interval := opts.MinimizeInterval
	if interval <= 0 {
		interval = defaultMinimizeInterval
	}

	stack := []frontier{{partial: zbdd.Base, pending: []pdag.Lit{p.Root}}}
	result := zbdd.Empty
	completed := 0

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return zbdd.Empty, &model.Cancelled{}
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.pending) == 0 {
			result = m.Union(result, f.partial)
			completed++
			if completed%interval == 0 {
				result = m.Minimize(result)
				opts.Log.Debug().Int("completed", completed).Msg("mocus periodic minimization")
			}
			continue
		}

		lit := f.pending[0]
		rest := f.pending[1:]
		n := p.Nodes[lit.Index]

		switch n.Kind {
		case pdag.KindConstant:
			if n.Value != lit.Complement { // true under this literal's sign: drop it, AND-identity
				stack = append(stack, frontier{partial: f.partial, pending: rest})
			}
			// false under this literal's sign kills the whole branch.

		case pdag.KindVariable:
			next := m.Product(f.partial, m.Unit(n.Var, lit.Complement))
			if next == zbdd.Empty {
				// Either the cutoff truncated this branch (Product already
				// recorded the warning), or this literal contradicts one
				// already in f.partial — Product prunes both the same way.
				continue
			}
			stack = append(stack, frontier{partial: next, pending: rest})

		case pdag.KindGate:
			stack = expandGate(stack, n, f.partial, rest)
		}
	}

	return m.Minimize(result), nil
}

func expandGate(stack []frontier, n *pdag.Node, partial zbdd.Edge, rest []pdag.Lit) []frontier {
	switch n.Connective {
	case model.AND:
		pending := make([]pdag.Lit, 0, len(n.Args)+len(rest))
		pending = append(pending, n.Args...)
		pending = append(pending, rest...)
		return append(stack, frontier{partial: partial, pending: pending})

	case model.OR:
		for _, a := range n.Args {
			pending := make([]pdag.Lit, 0, 1+len(rest))
			pending = append(pending, a)
			pending = append(pending, rest...)
			stack = append(stack, frontier{partial: partial, pending: pending})
		}
		return stack

	case model.ATLEAST:
		for _, subset := range kOrMoreSubsets(n.Args, n.K) {
			pending := make([]pdag.Lit, 0, len(subset)+len(rest))
			pending = append(pending, subset...)
			pending = append(pending, rest...)
			stack = append(stack, frontier{partial: partial, pending: pending})
		}
		return stack

	default: // XOR: true iff an odd number of its children hold
		for _, subset := range oddSubsets(n.Args) {
			pending := make([]pdag.Lit, 0, len(subset)+len(rest))
			pending = append(pending, subset...)
			pending = append(pending, rest...)
			stack = append(stack, frontier{partial: partial, pending: pending})
		}
		return stack
	}
}

// kOrMoreSubsets returns every size-exactly-k subset of args: the
// minimal cut sets for ATLEAST(k,n) are exactly its k-satisfied
// arguments, and any larger satisfying subset is a non-minimal
// superset that Minimize would remove anyway, so generating only the
// k-combinations avoids the combinatorial blow-up of also emitting
// every size >k subset for large n and small k.
func kOrMoreSubsets(args []pdag.Lit, k int) [][]pdag.Lit {
	if k <= 0 || k > len(args) {
		return nil
	}
	var out [][]pdag.Lit
	n := len(args)
	var combine func(start int, chosen []pdag.Lit)
	combine = func(start int, chosen []pdag.Lit) {
		if len(chosen) == k {
			out = append(out, append([]pdag.Lit{}, chosen...))
			return
		}
		for i := start; i <= n-(k-len(chosen)); i++ {
			combine(i+1, append(chosen, args[i]))
		}
	}
	combine(0, nil)
	return out
}

// oddSubsets returns every odd-cardinality subset of args.
func oddSubsets(args []pdag.Lit) [][]pdag.Lit {
	var out [][]pdag.Lit
	n := len(args)
	var combine func(start int, chosen []pdag.Lit)
	combine = func(start int, chosen []pdag.Lit) {
		if start == n {
			if len(chosen)%2 == 1 {
				out = append(out, append([]pdag.Lit{}, chosen...))
			}
			return
		}
		combine(start+1, chosen)
		combine(start+1, append(chosen, args[start]))
	}
	combine(0, nil)
	return out
}
