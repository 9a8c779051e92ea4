// Copyright (c) 2024 The SCRAM authors
//
// MIT License

/*
Package bdd implements a reduced ordered binary decision diagram with
complement edges, a shared unique table, and apply/ITE caches, following
the architecture of the BuDDy-derived rudd library this package is
adapted from (see DESIGN.md).

Each Manager owns one arena of nodes for the lifetime of one analysis;
arenas are never shared across analyses (SPEC_FULL.md §5). A node is
identified by an integer index into the arena. An Edge additionally
carries a one-bit complement flag: by convention the low (else) branch
of a stored node is never itself complemented — a node that would need
a complemented low edge is built in its regular form and the complement
is pushed onto the edge the caller receives instead (see makeEdge). This
is what makes two semantically complementary functions, f and !f, share
exactly one node and differ only in the polarity of the edge used to
reach it.

The terminal node lives at index 1. The edge to index 1 with no
complement denotes the constant True; the same index with the
complement bit set denotes False, so there is no separate terminal-0
node.
*/
package bdd
