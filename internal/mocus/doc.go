// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package mocus implements the top-down cut-set expansion algorithm:
// starting from the root gate, a worklist of partially-resolved
// products is expanded gate by gate — an OR branches the worklist
// (one successor per child), an AND appends all of a gate's children
// to the same pending list, and ATLEAST/XOR branch over their
// size-k/odd-sized argument subsets — until every pending item is a
// literal, at which point the accumulated ZBDD product joins the
// result family.
//
// This is a different traversal from internal/zbdd.Compile's bottom-up,
// fully memoized post-order walk: the same gate reached along two
// different paths through the PDAG is expanded twice here, trading
// structural sharing for the classical MOCUS property that every
// partial product is always a concrete, already-literal-resolved
// prefix, which is what lets periodic minimization prune dominated
// products before the worklist grows further. It reuses
// internal/zbdd.Manager as its node arena and cache, per §4.E.
package mocus
