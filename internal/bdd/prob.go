// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package bdd

// Probability computes the exact probability of e under the probability
// vector p (p[i] is the probability that variable i is true), following
// SPEC_FULL.md §4.C:
//
//	P(1) = 1, P(0) = 0
//	P(ite(x,h,l)) = p(x)*P(h) + (1-p(x))*P(l)
//
// with a complement-edge flip applied on read. Results are memoized in
// the manager's probability cache, which callers must invalidate (via
// InvalidateProbabilityCache) whenever p changes.
func (m *Manager) Probability(e Edge, p []float64) float64 {
	v := m.probability(e, p)
	if e.Complement() {
		return 1 - v
	}
	return v
}

func (m *Manager) probability(e Edge, p []float64) float64 {
	regular := e.withComplement(false)
	if regular.IsTrue() {
		return 1
	}
	if cached, ok := m.probCache[regular]; ok {
		return cached
	}
	idx := regular.index()
	n := m.nodes[idx]
	pl := m.probabilityEdge(n.low, p)
	ph := m.probabilityEdge(n.high, p)
	pv := p[n.level]
	res := pv*ph + (1-pv)*pl
	m.probCache[regular] = res
	return res
}

func (m *Manager) probabilityEdge(e Edge, p []float64) float64 {
	v := m.probability(e.withComplement(false), p)
	if e.Complement() {
		return 1 - v
	}
	return v
}

// ProbabilityWithCache is Probability but reads/writes a caller-owned
// cache instead of the manager's shared probCache. The node arena is
// immutable once built, so concurrent goroutines may each call this
// with their own cache and their own p without racing or clobbering
// one another's memoized values, unlike Probability which assumes a
// single p at a time and would need InvalidateProbabilityCache between
// callers. This is what lets a Monte Carlo worker pool (internal/
// uncertainty) share one compiled Manager across trials.
func (m *Manager) ProbabilityWithCache(e Edge, p []float64, cache map[Edge]float64) float64 {
	v := m.probabilityCached(e.withComplement(false), p, cache)
	if e.Complement() {
		return 1 - v
	}
	return v
}

func (m *Manager) probabilityCached(e Edge, p []float64, cache map[Edge]float64) float64 {
	if e.IsTrue() {
		return 1
	}
	if cached, ok := cache[e]; ok {
		return cached
	}
	n := m.nodes[e.index()]
	pl := m.probabilityEdgeCached(n.low, p, cache)
	ph := m.probabilityEdgeCached(n.high, p, cache)
	pv := p[n.level]
	res := pv*ph + (1-pv)*pl
	cache[e] = res
	return res
}

func (m *Manager) probabilityEdgeCached(e Edge, p []float64, cache map[Edge]float64) float64 {
	v := m.probabilityCached(e.withComplement(false), p, cache)
	if e.Complement() {
		return 1 - v
	}
	return v
}
