// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package preprocess implements the semantics-preserving PDAG rewrite
// passes that reduce a freshly built internal/pdag.PDAG into the
// AND/OR/ATLEAST/XOR-only, constant-free, structurally-hashed form the
// BDD, ZBDD, and MOCUS engines expect. The driver shape — a slice of
// named passes run to a fixpoint with a cooperative cancellation check
// between each — follows the teacher's (dalzilio-rudd) preference for
// small single-concern files orchestrated by one driver, seen in its
// gc.go/varnum.go/replace.go split.
package preprocess

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
)

// OrderStrategy names a variable-ordering heuristic for downstream BDD
// construction. FirstOccurrence is the only value. Run does not read
// Options.Order: internal/bdd and internal/zbdd order variables by
// basic-event index, and Result.Order is the PDAG's topological node
// order, not a variable order.
type OrderStrategy int

const (
	FirstOccurrence OrderStrategy = iota
)

// Options configures the preprocessor driver. Zero value is the
// documented default: modules of any size are extracted, gate
// distribution is disabled, and ordering is FirstOccurrence.
type Options struct {
	// MinModuleSize is the minimum number of variables a candidate module
	// subtree must cover before it is tagged. The benchmark-matching
	// default is 1 (tag every eligible single-parent, disjoint-support
	// subtree).
	MinModuleSize int
	// EnableDistribution turns on the bounded AND-over-OR distribution
	// pass (§4.B pass 7). Off by default: distribution trades size for a
	// different downstream shape and is rarely a net win without a
	// cost model telling it when to stop, so callers opt in explicitly.
	EnableDistribution bool
	// MaxDistributionFanout caps how many new terms a single
	// distribution step may create; ignored when EnableDistribution is
	// false.
	MaxDistributionFanout int
	Order                 OrderStrategy
	Log                   zerolog.Logger
}

const maxFixpointIterations = 64

// Result carries what downstream engines need beyond the mutated,
// now-frozen PDAG: the topological order from the final freeze, and
// whether the top proved constant (short-circuiting every later
// engine, per §4.B's failure semantics).
type Result struct {
	Order        []int
	TopConstant  bool
	TopValue     bool
	Warnings     []model.Warning
}

// Run mutates p in place to a fixpoint of every pass below, then
// re-freezes it. It must be called exactly once on a PDAG fresh out of
// pdag.Build (itself already frozen by the caller to validate it); Run
// unfreezes, rewrites, and re-freezes.
func Run(ctx context.Context, p *pdag.PDAG, opts Options) (Result, error) {
	if p.Frozen() {
		p.Unfreeze()
	}
	res := Result{}

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return res, &model.Cancelled{}
		}
		if iter >= maxFixpointIterations {
			opts.Log.Warn().Int("iterations", iter).Msg("preprocessor fixpoint not reached, stopping")
			break
		}
		changed := false

		if normalizeConnectives(p) {
			changed = true
		}
		if err := ctx.Err(); err != nil {
			return res, &model.Cancelled{}
		}
		if sinkComplements(p) { // pass 3: push complement bits down to literals via De Morgan
			changed = true
		}
		if err := checkNoInteriorNot(p); err != nil {
			return res, err
		}

		if constantPropagation(p) {
			changed = true
		}
		if err := ctx.Err(); err != nil {
			return res, &model.Cancelled{}
		}

		if coalesce(p) {
			changed = true
		}
		if booleanOptimize(p) {
			changed = true
		}
		if reconcileStructuralHash(p) {
			changed = true
		}
		if opts.EnableDistribution {
			if distribute(p, opts.MaxDistributionFanout) {
				changed = true
			}
		}

		opts.Log.Debug().Int("iteration", iter).Bool("changed", changed).Msg("preprocessor pass round")
		if !changed {
			break
		}
	}

	extractModules(p, opts.MinModuleSize)

	order, err := p.Freeze()
	if err != nil {
		return res, err
	}
	res.Order = order
	if ok, v := p.IsConstant(p.Root); ok {
		res.TopConstant = true
		res.TopValue = v
	}
	return res, nil
}
