// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package bdd

// Apply performs a binary Boolean operation on two edges, following the
// teacher's recursive top-down-with-cache shape
// (dalzilio-rudd/operations.go's apply), generalized to respect
// complement edges: because Not is a free bit-flip here, the apply
// cache only ever needs to be keyed on the canonical (op, left, right)
// triple, never on four truth-table variants per pair.
func (m *Manager) Apply(op Operator, left, right Edge) Edge {
	if res, ok := constResult(op, left, right); ok {
		return res
	}
	if left == right {
		switch op {
		case OpAnd, OpOr:
			return left
		case OpXor, OpAndNot:
			return False
		case OpNand, OpNor:
			return left.Not()
		case OpImp, OpBiimp:
			return True
		}
	}
	key := applyKey{op: op, left: left, right: right}
	if res, ok := m.applyCache[key]; ok {
		m.stats.ApplyCacheHit++
		return res
	}
	m.stats.ApplyCacheMiss++

	ll, lr := m.levelOf(left), m.levelOf(right)
	level := ll
	if lr < level {
		level = lr
	}
	var lowL, highL, lowR, highR Edge
	if ll == level {
		lowL, highL = m.lowOf(left), m.highOf(left)
	} else {
		lowL, highL = left, left
	}
	if lr == level {
		lowR, highR = m.lowOf(right), m.highOf(right)
	} else {
		lowR, highR = right, right
	}
	low := m.Apply(op, lowL, lowR)
	high := m.Apply(op, highL, highR)
	res := m.makeEdge(level, low, high)
	m.applyCache[key] = res
	return res
}

// And is shorthand for Apply(OpAnd, left, right).
func (m *Manager) And(left, right Edge) Edge { return m.Apply(OpAnd, left, right) }

// Or is shorthand for Apply(OpOr, left, right).
func (m *Manager) Or(left, right Edge) Edge { return m.Apply(OpOr, left, right) }

// AndMany folds And across a sequence of edges from left to right,
// returning True for an empty sequence (AND's identity).
func (m *Manager) AndMany(edges ...Edge) Edge {
	res := True
	for _, e := range edges {
		res = m.And(res, e)
	}
	return res
}

// OrMany folds Or across a sequence of edges, returning False for an
// empty sequence (OR's identity).
func (m *Manager) OrMany(edges ...Edge) Edge {
	res := False
	for _, e := range edges {
		res = m.Or(res, e)
	}
	return res
}

// Ite computes [(f AND g) OR (NOT f AND h)], following the teacher's
// min3-level recursion (dalzilio-rudd/operations.go's ite) but with
// complement edges making the f==0/g==1,h==0/etc. shortcuts unnecessary
// beyond the ones already folded by Apply's constant table.
func (m *Manager) Ite(f, g, h Edge) Edge {
	switch {
	case f.IsTrue():
		return g
	case f.IsFalse():
		return h
	case g == h:
		return g
	case g.IsTrue() && h.IsFalse():
		return f
	case g.IsFalse() && h.IsTrue():
		return f.Not()
	}
	key := iteKey{f: f, g: g, h: h}
	if res, ok := m.iteCache[key]; ok {
		m.stats.ITECacheHit++
		return res
	}
	m.stats.ITECacheMiss++

	level := m.levelOf(f)
	if l := m.levelOf(g); l < level {
		level = l
	}
	if l := m.levelOf(h); l < level {
		level = l
	}
	branch := func(e Edge) (Edge, Edge) {
		if m.levelOf(e) == level {
			return m.lowOf(e), m.highOf(e)
		}
		return e, e
	}
	fl, fh := branch(f)
	gl, gh := branch(g)
	hl, hh := branch(h)
	low := m.Ite(fl, gl, hl)
	high := m.Ite(fh, gh, hh)
	res := m.makeEdge(level, low, high)
	m.iteCache[key] = res
	return res
}

// Not returns the negation of e. It is O(1): Edge.Not flips the
// complement bit, so no node is ever allocated (contrast with the
// teacher's recursive, cached Not in dalzilio-rudd/operations.go, which
// this representation makes unnecessary).
func (m *Manager) Not(e Edge) Edge { return e.Not() }

// Restrict substitutes the constant value val for variable i throughout
// e (the Shannon cofactor), used by the importance calculator's MIF/RAW
// computations (SPEC_FULL.md §4.G). It shares the unique table, so no
// new nodes are created beyond what the resulting function needs.
func (m *Manager) Restrict(e Edge, i int, val bool) Edge {
	memo := make(map[Edge]Edge)
	return m.restrict(e, int32(i), val, memo)
}

func (m *Manager) restrict(e Edge, level int32, val bool, memo map[Edge]Edge) Edge {
	if e.IsConst() {
		return e
	}
	nl := m.levelOf(e)
	if nl > level {
		return e
	}
	if nl == level {
		if val {
			return m.highOf(e)
		}
		return m.lowOf(e)
	}
	if res, ok := memo[e]; ok {
		return res
	}
	low := m.restrict(m.lowOf(e), level, val, memo)
	high := m.restrict(m.highOf(e), level, val, memo)
	res := m.makeEdge(nl, low, high)
	memo[e] = res
	return res
}
