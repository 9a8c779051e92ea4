// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package report assembles an engine.Analysis and the model.Model it
// was computed over into the output formats SPEC_FULL.md §4.J and §6
// describe: a flattened in-memory Report for programmatic consumers,
// an Open-PSA-flavored XML rendering, and a Graphviz DOT rendering of
// the minimal cut sets. It never recomputes anything — every number
// here is copied or formatted from what internal/engine already
// produced.
package report
