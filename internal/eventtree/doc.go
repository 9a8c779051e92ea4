// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package eventtree evaluates event tree sequences: an ordered list of
// named functional (branch) events, each resolving to either a bare
// probability or the top-event probability of a gate within the same
// shared model.Model, following SPEC_FULL.md §4.I. This supplements the
// distilled core spec's scope (the distillation dropped event trees;
// the original source has them and no Non-goal names them out), but it
// deliberately stays a thin consumer of internal/pdag/internal/bdd
// rather than a second analysis engine: each referenced gate gets its
// own small, disposable BDD compiled on demand and cached by gate ID.
package eventtree
