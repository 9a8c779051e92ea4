// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package model

// ExpandCCFGroups mutates m in place, replacing every common-cause
// group member with a small OR gate of its independent-failure
// replacement and the group's shared failure events, following
// SPEC_FULL.md §6: "expansion happens before preprocessing". Callers
// must run this exactly once on a freshly built Model, before
// pdag.Build.
//
// The marginal probability q feeding CCFGroup.Expand is read from the
// first member's existing Prob at mission time t, matching a CCF
// group's defining assumption that every member shares the same
// marginal failure probability.
func ExpandCCFGroups(m *Model, t float64) error {
	if len(m.CCFGroups) == 0 {
		return nil
	}
	if err := m.Index(); err != nil {
		return err
	}
	for _, g := range m.CCFGroups {
		if err := expandOneGroup(m, g, t); err != nil {
			return err
		}
	}
	m.CCFGroups = nil
	return m.Index()
}

func expandOneGroup(m *Model, g CCFGroup, t float64) error {
	if len(g.Members) == 0 {
		return NewValidityError("ccf group %q has no members", g.ID)
	}
	firstIdx, ok := m.BasicEventByID(g.Members[0])
	if !ok {
		return NewValidityError("ccf group %q: member %q not found", g.ID, g.Members[0])
	}
	q := m.BasicEvents[firstIdx].Prob.Value(t)

	expanded, err := g.Expand(q)
	if err != nil {
		return err
	}

	indepByMember := make(map[string]int, len(g.Members))
	var shared []int
	for _, ev := range expanded {
		idx := len(m.BasicEvents)
		m.BasicEvents = append(m.BasicEvents, ev.BasicEvent)
		if ev.CCFLevel >= 2 {
			shared = append(shared, idx)
			continue
		}
		matched := false
		for _, member := range g.Members {
			if ev.BasicEvent.ID == member+"_indep" {
				indepByMember[member] = idx
				matched = true
				break
			}
		}
		if !matched {
			// The alpha/phi-factor models produce one collective k=1
			// term ("CCF_<id>_indep") instead of a per-member one: it
			// applies to every member exactly like a shared event.
			shared = append(shared, idx)
		}
	}

	subs := make(map[int]Arg, len(g.Members))
	for _, member := range g.Members {
		memberIdx, ok := m.BasicEventByID(member)
		if !ok {
			return NewValidityError("ccf group %q: member %q not found", g.ID, member)
		}
		args := make([]Arg, 0, 1+len(shared))
		if indepIdx, ok := indepByMember[member]; ok {
			args = append(args, Arg{Kind: ArgBasicEvent, Index: indepIdx})
		}
		for _, s := range shared {
			args = append(args, Arg{Kind: ArgBasicEvent, Index: s})
		}
		if len(args) == 0 {
			return NewValidityError("ccf group %q: member %q has no replacement events", g.ID, member)
		}
		gateIdx := len(m.Gates)
		m.Gates = append(m.Gates, Gate{ID: "CCF_" + g.ID + "_" + member, Connective: OR, Args: args})
		subs[memberIdx] = Arg{Kind: ArgGate, Index: gateIdx}
	}

	for gi := range m.Gates {
		for ai, a := range m.Gates[gi].Args {
			if a.Kind != ArgBasicEvent {
				continue
			}
			if repl, ok := subs[a.Index]; ok {
				m.Gates[gi].Args[ai] = Arg{Kind: repl.Kind, Index: repl.Index, Complement: a.Complement}
			}
		}
	}
	return nil
}
