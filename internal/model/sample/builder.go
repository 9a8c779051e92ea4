// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package sample provides small in-memory model builders used by tests
// and by the CLI's --demo mode. The Open-PSA XML loader is out of scope
// for this repository (SPEC_FULL.md §1); every fixture here is built
// directly as model.Model values instead of parsed from XML.
package sample

import (
	"fmt"

	"github.com/scram-core/scram/internal/model"
)

// Builder incrementally assembles a model.Model using readable gate and
// event names, resolving string references to indices on Build.
type Builder struct {
	name    string
	root    string
	gates   []model.Gate
	bes     []model.BasicEvent
	hes     []model.HouseEvent
	ccfs    []model.CCFGroup
	pending map[int]unresolvedRef
	nextRef int
}

// New starts a builder for a fault tree named name with root gate root.
func New(name, root string) *Builder {
	return &Builder{name: name, root: root, pending: make(map[int]unresolvedRef)}
}

// Gate adds a gate with the given connective over the given signed
// argument names (prefix "!" to negate).
func (b *Builder) Gate(id string, c model.Connective, args ...string) *Builder {
	return b.GateK(id, c, 0, args...)
}

// GateK is like Gate but also sets the ATLEAST threshold k.
func (b *Builder) GateK(id string, c model.Connective, k int, args ...string) *Builder {
	b.gates = append(b.gates, model.Gate{ID: id, Connective: c, K: k, Args: nil})
	b.gates[len(b.gates)-1].Args = make([]model.Arg, len(args))
	for i, a := range args {
		b.gates[len(b.gates)-1].Args[i] = b.parseRef(a)
	}
	return b
}

// BasicEvent adds a basic event with a constant probability.
func (b *Builder) BasicEvent(id string, p float64) *Builder {
	b.bes = append(b.bes, model.BasicEvent{ID: id, Prob: model.Constant{P: p}})
	return b
}

// BasicEventExpr adds a basic event with an arbitrary probability
// expression.
func (b *Builder) BasicEventExpr(id string, e model.Expr) *Builder {
	b.bes = append(b.bes, model.BasicEvent{ID: id, Prob: e})
	return b
}

// HouseEvent adds a house event with a fixed state.
func (b *Builder) HouseEvent(id string, state bool) *Builder {
	b.hes = append(b.hes, model.HouseEvent{ID: id, State: state})
	return b
}

// CCFGroup adds a common-cause failure group.
func (b *Builder) CCFGroup(g model.CCFGroup) *Builder {
	b.ccfs = append(b.ccfs, g)
	return b
}

// Build resolves every reference and returns the finished, indexed
// model. References are resolved in two passes: gates first (so forward
// references between gates work), then basic/house events.
func (b *Builder) Build() (*model.Model, error) {
	m := &model.Model{
		Name:        b.name,
		Root:        b.root,
		Gates:       b.gates,
		BasicEvents: b.bes,
		HouseEvents: b.hes,
		CCFGroups:   b.ccfs,
	}
	gateIdx := make(map[string]int, len(m.Gates))
	for i, g := range m.Gates {
		gateIdx[g.ID] = i
	}
	beIdx := make(map[string]int, len(m.BasicEvents))
	for i, e := range m.BasicEvents {
		beIdx[e.ID] = i
	}
	heIdx := make(map[string]int, len(m.HouseEvents))
	for i, e := range m.HouseEvents {
		heIdx[e.ID] = i
	}
	for gi := range m.Gates {
		for ai, a := range m.Gates[gi].Args {
			resolved, err := b.resolve(a, gateIdx, beIdx, heIdx)
			if err != nil {
				return nil, fmt.Errorf("gate %q arg %d: %w", m.Gates[gi].ID, ai, err)
			}
			m.Gates[gi].Args[ai] = resolved
		}
	}
	if err := m.Index(); err != nil {
		return nil, err
	}
	return m, nil
}

// unresolvedRef is a placeholder stashed in Arg.Index before Build
// resolves string names to slice indices (see parseRef/resolve).
type unresolvedRef struct {
	name string
}

func (b *Builder) parseRef(ref string) model.Arg {
	complement := false
	if len(ref) > 0 && ref[0] == '!' {
		complement = true
		ref = ref[1:]
	}
	slot := b.nextRef
	b.nextRef++
	b.pending[slot] = unresolvedRef{name: ref}
	return model.Arg{Kind: model.ArgGate, Index: slot, Complement: complement}
}

func (b *Builder) resolve(a model.Arg, gateIdx, beIdx, heIdx map[string]int) (model.Arg, error) {
	ref, ok := b.pending[a.Index]
	if !ok {
		return a, fmt.Errorf("internal: unresolved reference slot %d missing", a.Index)
	}
	delete(b.pending, a.Index)
	if i, ok := gateIdx[ref.name]; ok {
		return model.Arg{Kind: model.ArgGate, Index: i, Complement: a.Complement}, nil
	}
	if i, ok := beIdx[ref.name]; ok {
		return model.Arg{Kind: model.ArgBasicEvent, Index: i, Complement: a.Complement}, nil
	}
	if i, ok := heIdx[ref.name]; ok {
		return model.Arg{Kind: model.ArgHouseEvent, Index: i, Complement: a.Complement}, nil
	}
	return a, fmt.Errorf("undefined reference %q", ref.name)
}
