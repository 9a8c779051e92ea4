// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package zbdd

import "github.com/scram-core/scram/internal/model"

func canonicalPair(a, b Edge) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Union returns the family of products in a or b (or both).
func (m *Manager) Union(a, b Edge) Edge {
	switch {
	case a == Empty:
		return b
	case b == Empty:
		return a
	case a == b:
		return a
	}
	key := canonicalPair(a, b)
	if res, ok := m.unionCache[key]; ok {
		m.stats.CacheHits++
		return res
	}
	m.stats.CacheMisses++
	level := min32(m.levelOf(a), m.levelOf(b))
	at, ae := m.branch(a, level)
	bt, be := m.branch(b, level)
	res := m.getNode(level, m.Union(at, bt), m.Union(ae, be))
	m.unionCache[key] = res
	return res
}

// Intersect returns the family of products present in both a and b.
func (m *Manager) Intersect(a, b Edge) Edge {
	switch {
	case a == Empty || b == Empty:
		return Empty
	case a == b:
		return a
	}
	key := canonicalPair(a, b)
	if res, ok := m.interCache[key]; ok {
		m.stats.CacheHits++
		return res
	}
	m.stats.CacheMisses++
	level := min32(m.levelOf(a), m.levelOf(b))
	at, ae := m.branch(a, level)
	bt, be := m.branch(b, level)
	res := m.getNode(level, m.Intersect(at, bt), m.Intersect(ae, be))
	m.interCache[key] = res
	return res
}

// Difference returns the family of products in a that are not in b.
func (m *Manager) Difference(a, b Edge) Edge {
	switch {
	case a == Empty:
		return Empty
	case b == Empty:
		return a
	case a == b:
		return Empty
	}
	key := pairKey{a: a, b: b} // not commutative, no canonicalization
	if res, ok := m.diffCache[key]; ok {
		m.stats.CacheHits++
		return res
	}
	m.stats.CacheMisses++
	level := min32(m.levelOf(a), m.levelOf(b))
	at, ae := m.branch(a, level)
	bt, be := m.branch(b, level)
	res := m.getNode(level, m.Difference(at, bt), m.Difference(ae, be))
	m.diffCache[key] = res
	return res
}

// Product returns the set product (cartesian union) of a and b: every
// product p1∪p2 for p1 in a, p2 in b. A product-size cutoff (the
// Manager's cutoff, set at NewManager) prunes any combination that
// would need more than cutoff literals, recording a cutoff warning the
// first time it triggers; the result is then a conservative
// superset-free under-approximation (matching §4.D's documented cutoff
// semantics for the MOCUS-driven construction path).
func (m *Manager) Product(a, b Edge) Edge {
	return m.productAt(a, b, 0)
}

type productKey struct {
	a, b  Edge
	depth int
}

// productAt is Product's recursion, carrying depth = the number of
// literals already committed to this product by earlier "then" choices
// made by an enclosing Product call. Selecting the current level's
// literal (the "then" combination) commits one more; if that would put
// depth+1 over the cutoff, that combination is pruned to Empty rather
// than explored, which is what makes the result an under-approximation
// instead of an error. With a cutoff set, a Base operand does not
// short-circuit: the other operand is still walked level by level so
// its literals are counted against the cutoff too.
func (m *Manager) productAt(a, b Edge, depth int) Edge {
	switch {
	case a == Empty || b == Empty:
		return Empty
	case a == Base && b == Base:
		return Base
	case m.cutoff == 0 && a == Base:
		return b
	case m.cutoff == 0 && b == Base:
		return a
	}
	ca, cb := a, b
	if ca > cb {
		ca, cb = cb, ca
	}
	key := productKey{a: ca, b: cb, depth: depth}
	if res, ok := m.productMemo[key]; ok {
		m.stats.CacheHits++
		return res
	}
	m.stats.CacheMisses++
	level := min32(m.levelOf(a), m.levelOf(b))
	at, ae := m.branch(a, level)
	bt, be := m.branch(b, level)

	var then Edge
	if m.cutoff > 0 && depth+1 > m.cutoff {
		m.warnOnce(model.WarnCutoffTruncated, "product-size cutoff truncated a MOCUS expansion")
		then = Empty
	} else {
		then = m.Union(m.Union(m.productAt(at, bt, depth+1), m.productAt(at, be, depth+1)), m.productAt(ae, bt, depth+1))
		if level%2 == 0 {
			then = m.dropCompanion(then, level+1)
		}
	}
	els := m.productAt(ae, be, depth)
	res := m.getNode(level, then, els)
	m.productMemo[key] = res
	return res
}

// dropCompanion removes from then every product that also selects
// companionLevel. LiteralVar packs a basic event's positive and
// negative literal into adjacent slots (2*be, 2*be+1), and no other
// variable's slot can fall between them, so once productAt commits a
// positive slot as "then" the very next level a path through then can
// possibly test is that same event's negative slot — selecting both is
// the self-contradictory cut set {be, ¬be}, which must never survive
// into a product family. then's top level equals companionLevel
// exactly when some paths do select it; dropCompanion keeps only the
// paths that don't.
func (m *Manager) dropCompanion(then Edge, companionLevel int32) Edge {
	if m.levelOf(then) != companionLevel {
		return then
	}
	_, els := m.branch(then, companionLevel)
	return els
}

func (m *Manager) warnOnce(kind, msg string) {
	for _, w := range m.warnings {
		if w.Kind == kind {
			return
		}
	}
	m.warnings = append(m.warnings, model.Warning{Kind: kind, Message: msg})
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
