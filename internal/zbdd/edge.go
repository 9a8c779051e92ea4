// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package zbdd

// Edge is a reference to a node by its arena index. Unlike bdd.Edge,
// there is no complement bit: ZBDDs have no attributed edges, per
// SPEC_FULL.md §9.
type Edge int32

const (
	// Empty is the family containing no products.
	Empty Edge = 0
	// Base is the family containing exactly the empty product.
	Base Edge = 1
)

func (e Edge) isTerminal() bool { return e == Empty || e == Base }
