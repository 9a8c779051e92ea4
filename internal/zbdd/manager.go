// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package zbdd

import (
	"github.com/rs/zerolog"

	"github.com/scram-core/scram/internal/model"
)

// node is one non-terminal vertex: then is the branch where the node's
// literal is included in the product, else is the branch where it is
// not.
type node struct {
	level      int32
	then, else_ Edge
}

// Manager owns one ZBDD arena for the lifetime of a single analysis
// (never shared across analyses, SPEC_FULL.md §5), mirroring
// internal/bdd.Manager's lifecycle but over the doubled literal-slot
// variable space described in doc.go.
type Manager struct {
	log zerolog.Logger

	numEvents int32 // number of basic events
	nvars     int32 // 2*numEvents literal slots

	nodes  []node
	unique map[uniqueKey]int32

	unionCache    map[pairKey]Edge
	interCache    map[pairKey]Edge
	diffCache     map[pairKey]Edge
	productMemo   map[productKey]Edge
	subsumeCache  map[pairKey]Edge
	minimizeCache map[Edge]Edge

	cutoff   int // product-size limit; 0 means unlimited
	warnings []model.Warning

	stats Stats
}

// Stats mirrors internal/bdd.Stats for the ZBDD engine's own caches.
type Stats struct {
	NodesCreated int
	UniqueHits   int
	UniqueMisses int
	CacheHits    int
	CacheMisses  int
}

type uniqueKey struct {
	level int32
	then  Edge
	else_ Edge
}

type pairKey struct {
	a, b Edge
}

// NewManager creates a Manager over numEvents basic events, giving it
// 2*numEvents literal-slot variables (LiteralVar maps a basic event and
// a polarity to its slot). cutoff bounds product size during
// construction and is reported via Warnings when it truncates a
// family; 0 means unlimited.
func NewManager(numEvents, cutoff int, log zerolog.Logger) *Manager {
	return &Manager{
		log:           log,
		numEvents:     int32(numEvents),
		nvars:         int32(numEvents) * 2,
		nodes:         make([]node, 2, 64),
		unique:        make(map[uniqueKey]int32, 64),
		unionCache:    make(map[pairKey]Edge, 256),
		interCache:    make(map[pairKey]Edge, 256),
		diffCache:     make(map[pairKey]Edge, 256),
		productMemo:   make(map[productKey]Edge, 256),
		subsumeCache:  make(map[pairKey]Edge, 256),
		minimizeCache: make(map[Edge]Edge, 256),
		cutoff:        cutoff,
	}
}

// LiteralVar returns the ZBDD variable slot for basic event be at the
// given polarity: positive and negative literals of the same event
// occupy adjacent slots so the fixed variable order stays aligned with
// internal/bdd's per-event order.
func (m *Manager) LiteralVar(be int, complement bool) int32 {
	v := int32(be) * 2
	if complement {
		v++
	}
	return v
}

// EventOf inverts LiteralVar, used by product enumeration to report
// human-meaningful basic-event indices and signs.
func (m *Manager) EventOf(slot int32) (be int, complement bool) {
	return int(slot / 2), slot%2 == 1
}

func (m *Manager) levelOf(e Edge) int32 {
	if e.isTerminal() {
		return m.nvars
	}
	return m.nodes[e].level
}

func (m *Manager) branch(e Edge, level int32) (then, els Edge) {
	if e.isTerminal() {
		return Empty, e
	}
	n := m.nodes[e]
	if n.level > level {
		return Empty, e
	}
	return n.then, n.else_
}

// getNode hash-conses (level, then, else) and applies the
// zero-suppression rule: a node whose then-branch is Empty denotes no
// product ever selects this literal, so it is elided entirely in favor
// of its else branch.
func (m *Manager) getNode(level int32, then, els Edge) Edge {
	if then == Empty {
		return els
	}
	key := uniqueKey{level: level, then: then, else_: els}
	if idx, ok := m.unique[key]; ok {
		m.stats.UniqueHits++
		return Edge(idx)
	}
	m.stats.UniqueMisses++
	idx := int32(len(m.nodes))
	m.nodes = append(m.nodes, node{level: level, then: then, else_: els})
	m.unique[key] = idx
	m.stats.NodesCreated++
	return Edge(idx)
}

// Unit returns the single-product family {{literal}}, for literal =
// (be, complement).
func (m *Manager) Unit(be int, complement bool) Edge {
	return m.getNode(m.LiteralVar(be, complement), Base, Empty)
}

// Warnings returns the warnings accumulated so far (cutoff truncations).
func (m *Manager) Warnings() []model.Warning { return m.warnings }

// Stats returns a snapshot of the manager's cache-performance counters.
func (m *Manager) Stats() Stats { return m.stats }

// NodeCount returns the number of live non-terminal nodes.
func (m *Manager) NodeCount() int { return len(m.nodes) - 2 }

// Branch returns e's own then/else children. Unlike the internal
// branch helper (which answers "what would e do at some other,
// possibly-lower level", used by the level-synchronized binary
// recursions), Branch requires e to already be e's own node and is
// meant for callers walking a single family bottom-up, such as
// internal/probability's cut-set probability sum.
func (m *Manager) Branch(e Edge) (then, els Edge) {
	n := m.nodes[e]
	return n.then, n.else_
}

// LevelOf exposes levelOf for callers outside the package that need a
// node's variable slot without going through Branch's children.
func (m *Manager) LevelOf(e Edge) int32 { return m.levelOf(e) }
