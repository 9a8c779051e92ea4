// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package zbdd implements the zero-suppressed decision diagram engine
// that represents families of products (candidate cut sets): the
// sibling of internal/bdd, sharing its unique-table/apply-cache arena
// idiom (dalzilio-rudd's bkernel.go/hkernel.go split of node storage
// from operations) but with the zero-suppression reduction rule
// instead of BDD reduction, and no complement edges.
//
// A product is a signed multiset of basic-event indices, so this
// package doubles the variable space: each basic event b occupies two
// adjacent ZBDD variable slots, one for the literal b and one for its
// complement. The preprocessor's own contradiction check only sees
// direct gate arguments, so it cannot catch a contradiction that only
// appears once two different subtrees' literals land in the same
// product — AND(a, OR(b, NOT(a))) is one such formula, and it is
// satisfiable, so no gate-level rewrite can fold it to a constant.
// Product (the only operation that ever combines two previously
// independent edges into new joint paths; Union/Intersect/Difference
// only ever keep or drop products that already existed) instead
// enforces the invariant structurally: because the two slots of one
// basic event are adjacent in the fixed variable order with nothing
// else between them, a contradictory combination always surfaces as
// the companion slot sitting immediately below the slot Product just
// selected, and productAt prunes it there. So the two slots are never
// both set within one path in the resulting family, but two different
// products in the same family may each use either polarity
// independently — which is exactly the non-coherent tree support the
// qualitative analysis is required to carry.
package zbdd
