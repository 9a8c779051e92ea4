// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package pdag implements the normalized propagation DAG (SPEC_FULL.md
// §4.A): an in-memory, structurally-hashed representation of a fault
// tree as a rooted DAG of typed gates over literal-referenced
// variables. The node/edge/structural-hash shape is grounded on the
// strashed literal circuit in go-air-gini/logic/c.go (hash-consing via
// a strash table, integer-handle DFS topological order); the
// arena-with-integer-handle storage idiom is shared with
// internal/bdd, grounded on the same teacher.
package pdag

import (
	"fmt"
	"sort"

	"github.com/scram-core/scram/internal/model"
)

// Kind distinguishes what a Node represents.
type Kind int

const (
	KindGate     Kind = iota
	KindVariable      // a leaf referencing a basic event by its model index
	KindConstant
)

// Lit is a signed reference to a Node by its Index.
type Lit struct {
	Index      int
	Complement bool
}

// Not returns the complement of l.
func (l Lit) Not() Lit { return Lit{Index: l.Index, Complement: !l.Complement} }

// Node is one vertex of the PDAG.
type Node struct {
	Index      int
	Kind       Kind
	Connective model.Connective // valid when Kind == KindGate
	K          int              // ATLEAST threshold, valid when Connective == ATLEAST
	Args       []Lit            // valid when Kind == KindGate
	Var        int              // basic event model index, valid when Kind == KindVariable
	Value      bool             // valid when Kind == KindConstant

	parents int  // number of distinct edges pointing at this node, tracked for module detection (§4.B pass 5)
	Module  bool // set by preprocess.ExtractModules: single parent, support disjoint from siblings
}

// PDAG is the arena holding every node of one fault tree, plus the
// tables needed for structural hashing and variable deduplication.
type PDAG struct {
	Nodes []*Node
	Root  Lit

	varOf   map[int]int    // basic event model index -> node index (dedup of KindVariable nodes)
	strash  map[string]int // canonical gate key -> node index (structural hashing, §4.A)
	constT  int
	constF  int
	frozen  bool
}

// New creates an empty PDAG with the two constant singletons already
// allocated, matching the §4.A invariant that TRUE/FALSE are unique.
func New() *PDAG {
	p := &PDAG{
		varOf:  make(map[int]int),
		strash: make(map[string]int),
	}
	p.constT = p.alloc(&Node{Kind: KindConstant, Value: true})
	p.constF = p.alloc(&Node{Kind: KindConstant, Value: false})
	return p
}

func (p *PDAG) alloc(n *Node) int {
	n.Index = len(p.Nodes)
	p.Nodes = append(p.Nodes, n)
	return n.Index
}

// True returns the literal for the constant TRUE singleton.
func (p *PDAG) True() Lit { return Lit{Index: p.constT} }

// False returns the literal for the constant FALSE singleton.
func (p *PDAG) False() Lit { return Lit{Index: p.constF} }

// Constant returns True() or False() depending on v.
func (p *PDAG) Constant(v bool) Lit {
	if v {
		return p.True()
	}
	return p.False()
}

// IsConstant reports whether l denotes a constant, and if so, which
// value it carries (accounting for the complement bit).
func (p *PDAG) IsConstant(l Lit) (bool, bool) {
	n := p.Nodes[l.Index]
	if n.Kind != KindConstant {
		return false, false
	}
	return true, n.Value != l.Complement
}

// Variable returns the (deduplicated) literal for basic event be,
// creating a KindVariable node the first time be is referenced.
func (p *PDAG) Variable(be int) Lit {
	if idx, ok := p.varOf[be]; ok {
		return Lit{Index: idx}
	}
	idx := p.alloc(&Node{Kind: KindVariable, Var: be})
	p.varOf[be] = idx
	return Lit{Index: idx}
}

// NewGate hash-conses a gate node: if an equivalent gate (same
// connective, same threshold, same sorted signed argument set) already
// exists, its literal is returned instead of allocating a duplicate,
// which is the structural-hashing invariant of §4.A ("no two
// structurally equivalent subgraphs survive the merging pass").
//
// NewGate also performs the purely structural part of §4.A's
// post-freeze invariants — absorbing duplicate arguments — but leaves
// constant folding and identity-gate forwarding to the preprocessor
// (§4.B passes 2 and 1 respectively), since those are semantic
// rewrites, not structural canonicalization.
func (p *PDAG) NewGate(conn model.Connective, k int, args []Lit) (Lit, error) {
	if p.frozen {
		return Lit{}, model.NewLogicError("NewGate called after freeze")
	}
	args = dedupArgs(args)
	if conn == model.ATLEAST {
		if k < 1 || k > len(args) {
			return Lit{}, model.NewValidityError("ATLEAST(%d) with %d arguments", k, len(args))
		}
	}
	if conn == model.NOT && len(args) != 1 {
		return Lit{}, model.NewValidityError("NOT gate with %d arguments", len(args))
	}
	key := gateKey(conn, k, args)
	if idx, ok := p.strash[key]; ok {
		return Lit{Index: idx}, nil
	}
	idx := p.alloc(&Node{Kind: KindGate, Connective: conn, K: k, Args: args})
	p.strash[key] = idx
	for _, a := range args {
		p.Nodes[a.Index].parents++
	}
	return Lit{Index: idx}, nil
}

// dedupArgs removes duplicate signed references, which is always safe
// for AND/OR/XOR under the absorption law and is a no-op for well-formed
// ATLEAST/XOR input (duplicates there are a modeling error caught later
// by the preprocessor's contradiction/tautology pass).
func dedupArgs(args []Lit) []Lit {
	seen := make(map[Lit]bool, len(args))
	out := make([]Lit, 0, len(args))
	for _, a := range args {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// GateKeyFor returns the canonical structural-hash key for a gate node
// as it currently stands, used by the preprocessor's re-strashing pass
// (§4.B pass 6) to detect duplicates created by in-place Args mutation.
func (p *PDAG) GateKeyFor(n *Node) string {
	return gateKey(n.Connective, n.K, n.Args)
}

func gateKey(conn model.Connective, k int, args []Lit) string {
	sorted := make([]Lit, len(args))
	copy(sorted, args)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Index != sorted[j].Index {
			return sorted[i].Index < sorted[j].Index
		}
		return !sorted[i].Complement && sorted[j].Complement
	})
	key := fmt.Sprintf("%d:%d", conn, k)
	for _, a := range sorted {
		key += fmt.Sprintf(":%d/%v", a.Index, a.Complement)
	}
	return key
}

// Parents returns the number of distinct gate arguments pointing at the
// node referenced by l's index, used by the preprocessor's module
// detection pass (§4.B pass 5).
func (p *PDAG) Parents(l Lit) int { return p.Nodes[l.Index].parents }
