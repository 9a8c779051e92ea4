// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package bdd

import (
	"fmt"

	"github.com/rs/zerolog"
)

// node is one non-terminal vertex: level is the variable order index,
// low is always a regular (non-complemented) edge by construction (see
// makeEdge), high may carry the complement bit.
type node struct {
	level int32
	low   Edge
	high  Edge
}

// Manager owns one BDD arena: the node table, the unique (hash-cons)
// table, and the apply/ITE/probability caches. A Manager is built once
// per analysis and is never shared across analyses (SPEC_FULL.md §5).
type Manager struct {
	log zerolog.Logger

	nvars int32
	vars  []Edge // vars[i] is the edge for the positive literal of variable i

	nodes  []node
	unique map[uniqueKey]int32 // (level, low, high) -> node index, hash-cons table

	applyCache map[applyKey]Edge
	iteCache   map[iteKey]Edge
	probCache  map[Edge]float64 // invalidated between probability vectors

	stats Stats
}

// Stats mirrors the teacher's cache-performance counters, surfaced via
// Manager.Stats for diagnostics.
type Stats struct {
	NodesCreated   int
	UniqueHits     int
	UniqueMisses   int
	ApplyCacheHit  int
	ApplyCacheMiss int
	ITECacheHit    int
	ITECacheMiss   int
}

type uniqueKey struct {
	level     int32
	low, high Edge
}

type applyKey struct {
	op          Operator
	left, right Edge
}

type iteKey struct {
	f, g, h Edge
}

// NewManager creates a Manager with nvars Boolean variables ordered
// 0..nvars-1 (lower index = closer to the root, following
// SPEC_FULL.md §4.C's fixed variable order requirement).
func NewManager(nvars int, log zerolog.Logger) *Manager {
	m := &Manager{
		log:        log,
		nvars:      int32(nvars),
		vars:       make([]Edge, nvars),
		nodes:      make([]node, 2, 64+2*nvars),
		unique:     make(map[uniqueKey]int32, 64),
		applyCache: make(map[applyKey]Edge, 1024),
		iteCache:   make(map[iteKey]Edge, 1024),
		probCache:  make(map[Edge]float64, 256),
	}
	// index 0 is unused (kept so that index 1 is the terminal, matching
	// the teacher's convention of reserving the first slots): nodes is
	// created above with length 2 for exactly those two slots.
	for i := int32(0); i < int32(nvars); i++ {
		m.vars[i] = m.makeEdge(i, False, True)
	}
	return m
}

// NVars returns the number of variables the manager was created with.
func (m *Manager) NVars() int { return int(m.nvars) }

// Var returns the positive-literal edge for variable i.
func (m *Manager) Var(i int) Edge {
	if i < 0 || int32(i) >= m.nvars {
		panic(fmt.Sprintf("bdd: variable %d out of range [0,%d)", i, m.nvars))
	}
	return m.vars[i]
}

// NVar returns the negative-literal edge for variable i.
func (m *Manager) NVar(i int) Edge {
	return m.Var(i).Not()
}

func (m *Manager) levelOf(e Edge) int32 {
	idx := e.index()
	if idx == terminalIndex {
		return m.nvars // constants sort after every real variable
	}
	return m.nodes[idx].level
}

func (m *Manager) lowOf(e Edge) Edge {
	idx := e.index()
	if idx == terminalIndex {
		panic("bdd: low() on a constant edge")
	}
	n := m.nodes[idx]
	return n.low.withComplement(n.low.Complement() != e.Complement())
}

func (m *Manager) highOf(e Edge) Edge {
	idx := e.index()
	if idx == terminalIndex {
		panic("bdd: high() on a constant edge")
	}
	n := m.nodes[idx]
	return n.high.withComplement(n.high.Complement() != e.Complement())
}

// Low returns the else-branch of e, or an error if e is a constant.
func (m *Manager) Low(e Edge) (Edge, error) {
	if e.IsConst() {
		return 0, fmt.Errorf("bdd: Low of constant edge")
	}
	return m.lowOf(e), nil
}

// High returns the then-branch of e, or an error if e is a constant.
func (m *Manager) High(e Edge) (Edge, error) {
	if e.IsConst() {
		return 0, fmt.Errorf("bdd: High of constant edge")
	}
	return m.highOf(e), nil
}

// Level returns the variable order index of e, or NVars() for a constant.
func (m *Manager) Level(e Edge) int { return int(m.levelOf(e)) }

// getNode returns the hash-consed node index for (level, low, high),
// creating one if it does not exist yet. low is required to already be
// in regular form by the caller (see makeEdge for the normalization).
func (m *Manager) getNode(level int32, low, high Edge) int32 {
	key := uniqueKey{level: level, low: low, high: high}
	if idx, ok := m.unique[key]; ok {
		m.stats.UniqueHits++
		return idx
	}
	m.stats.UniqueMisses++
	idx := int32(len(m.nodes))
	m.nodes = append(m.nodes, node{level: level, low: low, high: high})
	m.unique[key] = idx
	m.stats.NodesCreated++
	return idx
}

// makeEdge is the single normalizing constructor for every internal
// node: it folds redundant nodes (low == high), and pushes a
// complemented low edge up onto the returned edge so that every stored
// node's low branch is regular (SPEC_FULL.md §9 "attributed edges").
func (m *Manager) makeEdge(level int32, low, high Edge) Edge {
	if low == high {
		return low
	}
	if low.Complement() {
		idx := m.getNode(level, low.Not(), high.Not())
		return mkEdge(idx, true)
	}
	idx := m.getNode(level, low, high)
	return mkEdge(idx, false)
}

// Stats returns a snapshot of the manager's cache-performance counters.
func (m *Manager) Stats() Stats { return m.stats }

// NodeCount returns the number of live nodes in the arena, including
// the terminal.
func (m *Manager) NodeCount() int { return len(m.nodes) - 1 }

// InvalidateProbabilityCache discards cached probability values. It
// must be called whenever the probability vector changes (e.g. between
// Monte Carlo trials or mission-time samples), per SPEC_FULL.md §4.C.
func (m *Manager) InvalidateProbabilityCache() {
	m.probCache = make(map[Edge]float64, len(m.probCache))
}

// ResetOperatorCaches clears the apply/ITE caches. Exposed for tests
// and for long-running analyses that want to bound cache memory.
func (m *Manager) ResetOperatorCaches() {
	m.applyCache = make(map[applyKey]Edge, len(m.applyCache))
	m.iteCache = make(map[iteKey]Edge, len(m.iteCache))
}
