// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package pdag

import "github.com/scram-core/scram/internal/model"

// Freeze validates the §4.A post-build invariants and computes a
// topological order of the gates reachable from Root (leaves first,
// root last), grounded on the DFS finish-order topological sort in
// go-air-gini/logic/c.go's Circuit.Validate/order. The order is what
// internal/preprocess and internal/zbdd walk bottom-up.
//
// Freeze must run once, after Build and before any preprocessing pass;
// NewGate refuses further mutation once it has run.
func (p *PDAG) Freeze() ([]int, error) {
	if p.frozen {
		return nil, model.NewLogicError("Freeze called twice")
	}
	order := make([]int, 0, len(p.Nodes))
	state := make([]int8, len(p.Nodes)) // 0 unvisited, 1 in-progress, 2 done
	var visit func(idx int) error
	visit = func(idx int) error {
		switch state[idx] {
		case 2:
			return nil
		case 1:
			return model.NewLogicError("cycle detected at node %d", idx)
		}
		state[idx] = 1
		n := p.Nodes[idx]
		if n.Kind == KindGate {
			if len(n.Args) == 0 {
				return model.NewValidityError("gate node %d has no arguments", idx)
			}
			if n.Connective == model.ATLEAST && (n.K < 1 || n.K > len(n.Args)) {
				return model.NewValidityError("ATLEAST(%d) node %d has %d arguments", n.K, idx, len(n.Args))
			}
			for _, a := range n.Args {
				if a.Index < 0 || a.Index >= len(p.Nodes) {
					return model.NewLogicError("node %d references out-of-range index %d", idx, a.Index)
				}
				if err := visit(a.Index); err != nil {
					return err
				}
			}
		}
		state[idx] = 2
		order = append(order, idx)
		return nil
	}
	if err := visit(p.Root.Index); err != nil {
		return nil, err
	}
	p.frozen = true
	return order, nil
}

// Frozen reports whether Freeze has already run.
func (p *PDAG) Frozen() bool { return p.frozen }

// Unfreeze clears the frozen flag so a preprocessing pass may rewrite
// the graph in place, and the caller must call Freeze again before
// handing the PDAG to a downstream engine. Preprocessing passes that
// only rewire existing literals (never allocate through NewGate) do
// not need this.
func (p *PDAG) Unfreeze() { p.frozen = false }

// Reachable returns the set of node indices reachable from root,
// including root itself, used by the module-extraction pass (§4.B
// pass 5) to test whether a candidate subgraph has any escaping edges.
func (p *PDAG) Reachable(root Lit) map[int]bool {
	seen := map[int]bool{root.Index: true}
	var walk func(idx int)
	walk = func(idx int) {
		n := p.Nodes[idx]
		if n.Kind != KindGate {
			return
		}
		for _, a := range n.Args {
			if !seen[a.Index] {
				seen[a.Index] = true
				walk(a.Index)
			}
		}
	}
	walk(root.Index)
	return seen
}
