// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package eventtree

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scram-core/scram/internal/bdd"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
	"github.com/scram-core/scram/internal/preprocess"
)

// FunctionalEvent is one branch point of the tree: its "failure" branch
// probability is either GateID's compiled top-event probability (when
// GateID is set) or the bare Probability constant.
type FunctionalEvent struct {
	Name        string
	GateID      string
	Probability float64
}

// Path is one sequence through the tree: Branches[i] is true if
// Events[i]'s failure branch was taken along this path, ending at
// EndState.
type Path struct {
	EndState string
	Branches []bool
}

// Tree is one event tree: an ordered list of functional events shared
// by every path, and the set of paths that enumerate the tree's end
// states.
type Tree struct {
	Name   string
	Events []FunctionalEvent
	Paths  []Path
}

// Result is the probability of reaching each end state, summed across
// every path that ends there (an end state may be reached by more than
// one path).
type Result struct {
	EndStateProbability map[string]float64
	Warnings            []model.Warning
}

// Evaluate computes Result for tree against the shared model m at
// mission time t. Every FunctionalEvent naming a GateID gets its own
// PDAG and BDD compiled from m rooted at that gate (cached per GateID,
// since more than one functional event — or more than one tree sharing
// m — may reference the same gate).
func Evaluate(ctx context.Context, m *model.Model, t float64, tree Tree, log zerolog.Logger) (Result, error) {
	failProb := make(map[string]float64, len(tree.Events))
	var warnings []model.Warning
	cache := make(map[string]float64)

	for _, ev := range tree.Events {
		if err := ctx.Err(); err != nil {
			return Result{}, &model.Cancelled{}
		}
		if ev.GateID == "" {
			failProb[ev.Name] = ev.Probability
			continue
		}
		if v, ok := cache[ev.GateID]; ok {
			failProb[ev.Name] = v
			continue
		}
		v, err := compileGateProbability(ctx, m, t, ev.GateID, log)
		if err != nil {
			return Result{}, err
		}
		cache[ev.GateID] = v
		failProb[ev.Name] = v
	}

	endStates := make(map[string]float64, len(tree.Paths))
	for _, path := range tree.Paths {
		if len(path.Branches) != len(tree.Events) {
			return Result{}, model.NewValidityError(
				"event tree %q: path to %q has %d branches, want %d", tree.Name, path.EndState, len(path.Branches), len(tree.Events))
		}
		p := 1.0
		for i, ev := range tree.Events {
			fail := failProb[ev.Name]
			if path.Branches[i] {
				p *= fail
			} else {
				p *= 1 - fail
			}
		}
		endStates[path.EndState] += p
	}

	return Result{EndStateProbability: endStates, Warnings: warnings}, nil
}

// compileGateProbability builds a standalone PDAG rooted at gateID
// within m, preprocesses it, compiles it to a BDD, and returns its
// exact top-event probability at mission time t.
func compileGateProbability(ctx context.Context, m *model.Model, t float64, gateID string, log zerolog.Logger) (float64, error) {
	idx, ok := m.GateByID(gateID)
	if !ok {
		return 0, model.NewValidityError("event tree references undefined gate %q", gateID)
	}
	dag, err := pdag.BuildFrom(m, idx)
	if err != nil {
		return 0, err
	}
	res, err := preprocess.Run(ctx, dag, preprocess.Options{Log: log})
	if err != nil {
		return 0, err
	}
	if res.TopConstant {
		if res.TopValue {
			return 1, nil
		}
		return 0, nil
	}
	mgr := bdd.NewManager(len(m.BasicEvents), log)
	edge, err := bdd.Compile(ctx, dag, res.Order, mgr)
	if err != nil {
		return 0, err
	}
	p := model.ProbabilityVector(m, t)
	return mgr.Probability(edge, p), nil
}
