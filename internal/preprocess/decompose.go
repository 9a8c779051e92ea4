// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package preprocess

import (
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// distribute is pass 7: a bounded AND-over-OR distribution heuristic,
// AND(a, OR(b,c), rest...) -> OR(AND(a,b,rest...), AND(a,c,rest...)),
// applied only when the resulting term count stays within maxFanout.
// Disabled by default (Options.EnableDistribution) since it trades
// graph size for a different downstream shape with no cost model
// telling it when that trade is worthwhile; exposed for callers who
// want to try it on a specific model.
func distribute(p *pdag.PDAG, maxFanout int) bool {
	if maxFanout <= 0 {
		maxFanout = 4
	}
	subs := make(map[int]pdag.Lit)
	for _, n := range snapshot(p) {
		if n.Kind != pdag.KindGate || n.Connective != model.AND {
			continue
		}
		orIdx := -1
		for i, a := range n.Args {
			child := p.Nodes[a.Index]
			if !a.Complement && child.Kind == pdag.KindGate && child.Connective == model.OR {
				orIdx = i
				break
			}
		}
		if orIdx < 0 {
			continue
		}
		orNode := p.Nodes[n.Args[orIdx].Index]
		if len(orNode.Args) > maxFanout {
			continue
		}
		rest := make([]pdag.Lit, 0, len(n.Args)-1)
		for i, a := range n.Args {
			if i != orIdx {
				rest = append(rest, a)
			}
		}
		terms := make([]pdag.Lit, 0, len(orNode.Args))
		ok := true
		for _, orArg := range orNode.Args {
			args := append(append([]pdag.Lit{}, rest...), orArg)
			andLit, err := p.NewGate(model.AND, 0, args)
			if err != nil {
				ok = false
				break
			}
			terms = append(terms, andLit)
		}
		if !ok {
			continue
		}
		orLit, err := p.NewGate(model.OR, 0, terms)
		if err != nil {
			continue
		}
		subs[n.Index] = orLit
	}
	if len(subs) == 0 {
		return false
	}
	p.Substitute(subs)
	return true
}
