// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package zbdd

// Subsume returns the subfamily of s containing no member that is a
// (not necessarily proper) superset of some member of t — the
// "subset-elimination recursion" the spec's Minimize builds on. It is
// exposed directly because Minimize's internal use (comparing a node's
// then-branch against its own else-branch) is exactly one instance of
// this more general primitive, which is also useful standalone (e.g.
// pruning one family against an externally known non-minimal set).
func (m *Manager) Subsume(s, t Edge) Edge {
	switch {
	case s == Empty || t == Empty:
		return s
	case s == t:
		return Empty
	case t == Base:
		return Empty
	}
	key := pairKey{a: s, b: t} // not commutative
	if res, ok := m.subsumeCache[key]; ok {
		m.stats.CacheHits++
		return res
	}
	m.stats.CacheMisses++
	if s == Base {
		res := Base
		if m.containsEmpty(t) {
			res = Empty
		}
		m.subsumeCache[key] = res
		return res
	}
	level := min32(m.levelOf(s), m.levelOf(t))
	s1, s0 := m.branch(s, level)
	t1, t0 := m.branch(t, level)
	thenPart := m.Subsume(s1, m.Union(t1, t0))
	elsePart := m.Subsume(s0, t0)
	res := m.getNode(level, thenPart, elsePart)
	m.subsumeCache[key] = res
	return res
}

// containsEmpty reports whether the empty product belongs to the
// family e: the empty product is a member iff following the else
// branch at every node (never selecting any literal) reaches Base.
func (m *Manager) containsEmpty(e Edge) bool {
	for !e.isTerminal() {
		e = m.nodes[e].else_
	}
	return e == Base
}

// Minimize reduces a to the family of its ⊆-minimal members: no
// surviving product is a superset of another. Each node's then-branch
// (members that include this level's literal) is pruned of anything
// that, once the literal is added back, becomes a superset of some
// already-minimal else-branch member — the else-branch members never
// carry this literal, so the comparison is always sound, and both
// branches are independently minimized first so the only remaining
// cross-branch redundancy is exactly this one direction.
func (m *Manager) Minimize(a Edge) Edge {
	if a.isTerminal() {
		return a
	}
	if res, ok := m.minimizeCache[a]; ok {
		m.stats.CacheHits++
		return res
	}
	m.stats.CacheMisses++
	n := m.nodes[a]
	then1 := m.Minimize(n.then)
	else1 := m.Minimize(n.else_)
	then2 := m.Subsume(then1, else1)
	res := m.getNode(n.level, then2, else1)
	m.minimizeCache[a] = res
	return res
}
