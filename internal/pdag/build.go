// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package pdag

import "github.com/scram-core/scram/internal/model"

// Build translates a validated model.Model into a PDAG rooted at the
// model's root gate. House events are constant-folded immediately
// (there is no KindVariable for them — their truth value is baked into
// the literal at the point of reference), matching the §4.B pass-2
// rationale that house events exist only to be eliminated before any
// downstream engine sees them.
func Build(m *model.Model) (*PDAG, error) {
	return BuildFrom(m, m.RootIndex())
}

// BuildFrom is Build but rooted at an arbitrary gate index instead of
// the model's declared root, used by internal/eventtree to compile a
// standalone PDAG per functional event's referenced gate without
// pulling in the rest of the model's fault tree.
func BuildFrom(m *model.Model, rootGate int) (*PDAG, error) {
	p := New()
	b := &builder{model: m, pdag: p, gateLit: make(map[int]Lit), building: make(map[int]bool)}
	root, err := b.gate(rootGate)
	if err != nil {
		return nil, err
	}
	p.Root = root
	return p, nil
}

type builder struct {
	model    *model.Model
	pdag     *PDAG
	gateLit  map[int]Lit  // model gate index -> already-built literal (memoization, avoids rebuilding shared subtrees)
	building map[int]bool // cycle detection while a gate's subtree is still under construction
}

func (b *builder) gate(idx int) (Lit, error) {
	if lit, ok := b.gateLit[idx]; ok {
		return lit, nil
	}
	if b.building[idx] {
		return Lit{}, model.NewValidityError("cycle detected through gate %q", b.model.Gates[idx].ID)
	}
	b.building[idx] = true
	defer delete(b.building, idx)

	g := b.model.Gates[idx]
	args := make([]Lit, 0, len(g.Args))
	for _, a := range g.Args {
		lit, err := b.arg(a)
		if err != nil {
			return Lit{}, err
		}
		args = append(args, lit)
	}
	lit, err := b.pdag.NewGate(g.Connective, g.K, args)
	if err != nil {
		return Lit{}, err
	}
	b.gateLit[idx] = lit
	return lit, nil
}

func (b *builder) arg(a model.Arg) (Lit, error) {
	var lit Lit
	switch a.Kind {
	case model.ArgGate:
		if a.Index < 0 || a.Index >= len(b.model.Gates) {
			return Lit{}, model.NewLogicError("gate argument index %d out of range", a.Index)
		}
		l, err := b.gate(a.Index)
		if err != nil {
			return Lit{}, err
		}
		lit = l
	case model.ArgBasicEvent:
		if a.Index < 0 || a.Index >= len(b.model.BasicEvents) {
			return Lit{}, model.NewLogicError("basic event argument index %d out of range", a.Index)
		}
		lit = b.pdag.Variable(a.Index)
	case model.ArgHouseEvent:
		if a.Index < 0 || a.Index >= len(b.model.HouseEvents) {
			return Lit{}, model.NewLogicError("house event argument index %d out of range", a.Index)
		}
		lit = b.pdag.Constant(b.model.HouseEvents[a.Index].State)
	default:
		return Lit{}, model.NewLogicError("unknown argument kind %d", a.Kind)
	}
	if a.Complement {
		lit = lit.Not()
	}
	return lit, nil
}
