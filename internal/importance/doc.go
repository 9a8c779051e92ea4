// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package importance computes per-basic-event sensitivity measures
// (MIF, CIF, Fussell-Vesely/DIF, RRW, RAW) from a compiled engine
// output, following SPEC_FULL.md §4.G: the exact path cofactors a BDD
// with internal/bdd.Restrict, the approximate path reached when only a
// ZBDD was compiled instead works from the minimal cut set family.
package importance
