// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package probability evaluates the top event probability from a
// compiled BDD and/or ZBDD, in the exact, rare-event, or MCUB mode, and
// provides the TimeSeries iterator used for mission-time evaluation.
package probability
