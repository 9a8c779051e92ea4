// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package uncertainty implements SPEC_FULL.md §4.H: a Monte Carlo
// sampler over the mission time's basic-event distributions, and a
// Safety Integrity Level histogram over the mission window. Both
// consumers share the compiled BDD/ZBDD from internal/engine; neither
// mutates it, so the same Manager can be read by every Monte Carlo
// worker concurrently through its own probability-cache shadow
// (internal/bdd.Manager.ProbabilityWithCache).
package uncertainty
