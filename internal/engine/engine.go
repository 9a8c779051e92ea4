// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package engine

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scram-core/scram/internal/bdd"
	"github.com/scram-core/scram/internal/importance"
	"github.com/scram-core/scram/internal/mocus"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/pdag"
	"github.com/scram-core/scram/internal/preprocess"
	"github.com/scram-core/scram/internal/probability"
	"github.com/scram-core/scram/internal/uncertainty"
	"github.com/scram-core/scram/internal/zbdd"
)

// Engine drives one analysis run through the state machine in
// state.go. It owns every per-analysis arena (PDAG, BDD/ZBDD managers)
// and is never reused across analyses, per SPEC_FULL.md §5; call New
// again for the next run.
type Engine struct {
	log      zerolog.Logger
	settings Settings
	state    State
	runID    uuid.UUID

	model *model.Model
	dag   *pdag.PDAG

	preprocessResult preprocess.Result

	bddMgr  *bdd.Manager
	bddEdge bdd.Edge

	zbddMgr  *zbdd.Manager
	zbddEdge zbdd.Edge

	warnings []model.Warning
}

// New creates an Engine over m with the given settings. m is expected
// to already have passed model.ExpandCCFGroups (SPEC_FULL.md §6: CCF
// expansion happens before preprocessing, which itself happens before
// Engine ever sees the model).
func New(m *model.Model, settings Settings, log zerolog.Logger) *Engine {
	return &Engine{
		log:      log,
		settings: settings,
		state:    Built,
		runID:    uuid.New(),
		model:    m,
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// RunID returns the UUID stamped on this analysis run for traceability
// (SPEC_FULL.md §1.1).
func (e *Engine) RunID() uuid.UUID { return e.runID }

// Preprocess builds the PDAG from the model and runs it through the
// preprocessor to a fixpoint, transitioning Built -> Preprocessed.
func (e *Engine) Preprocess(ctx context.Context) error {
	if err := guard(e.state, Built); err != nil {
		return err
	}
	dag, err := pdag.Build(e.model)
	if err != nil {
		return err
	}
	res, err := preprocess.Run(ctx, dag, preprocess.Options{
		MinModuleSize:      e.settings.MinModuleSize,
		EnableDistribution: e.settings.EnableDistribution,
		Log:                e.log,
	})
	if err != nil {
		if _, cancelled := err.(*model.Cancelled); cancelled {
			e.state = Cancelled
		}
		return err
	}
	e.dag = dag
	e.preprocessResult = res
	e.warnings = append(e.warnings, res.Warnings...)
	e.state = Preprocessed
	return nil
}

// Compile builds the cut-set representations Analyze needs. A ZBDD is
// always compiled — minimal cut sets are a first-class output
// regardless of probability mode or engine choice — via MOCUS's
// worklist expansion when Settings.Engine asks for it and via direct
// zbdd.Compile otherwise. A BDD is additionally built whenever exact
// probability or exact importance is wanted; Settings.Engine/Mode only
// decide which representation answers "how is probability computed",
// never whether cut sets are produced. Transitions Preprocessed ->
// Compiled.
func (e *Engine) Compile(ctx context.Context) error {
	if err := guard(e.state, Preprocessed); err != nil {
		return err
	}
	if e.preprocessResult.TopConstant {
		e.log.Info().Bool("value", e.preprocessResult.TopValue).Msg("top event proved constant during preprocessing, engines skipped")
		e.state = Compiled
		return nil
	}

	needsBDD := e.settings.Engine == KindBDD || e.settings.Mode == probability.Exact || e.settings.ComputeImportance

	if needsBDD {
		e.bddMgr = bdd.NewManager(len(e.model.BasicEvents), e.log)
		edge, err := bdd.Compile(ctx, e.dag, e.preprocessResult.Order, e.bddMgr)
		if err != nil {
			if _, cancelled := err.(*model.Cancelled); cancelled {
				e.state = Cancelled
			}
			return err
		}
		e.bddEdge = edge
	}

	e.zbddMgr = zbdd.NewManager(len(e.model.BasicEvents), e.settings.LimitOrder, e.log)
	var edge zbdd.Edge
	var err error
	if e.settings.Engine == KindMOCUS {
		edge, err = mocus.Expand(ctx, e.dag, e.zbddMgr, mocus.Options{Log: e.log})
	} else {
		edge, err = zbdd.Compile(ctx, e.dag, e.preprocessResult.Order, e.zbddMgr)
		if err == nil {
			edge = e.zbddMgr.Minimize(edge)
		}
	}
	if err != nil {
		if _, cancelled := err.(*model.Cancelled); cancelled {
			e.state = Cancelled
		}
		return err
	}
	e.zbddEdge = edge
	e.warnings = append(e.warnings, e.zbddMgr.Warnings()...)

	e.state = Compiled
	return nil
}

// Analysis is everything Analyze produces, consumed by internal/report.
type Analysis struct {
	RunID       uuid.UUID
	Mode        probability.Mode
	Engine      Kind
	MissionTime float64

	TopConstant bool
	TopValue    bool

	TopProbability float64
	Products       []zbdd.Product

	Importance map[int]importance.Measures

	Uncertainty *uncertainty.Report
	SIL         *uncertainty.SILReport

	Warnings []model.Warning
}

// Analyze runs the probability, importance, and uncertainty/SIL
// calculators over the compiled representation, transitioning
// Compiled -> Analyzed. A Monte Carlo or SIL failure other than
// cancellation degrades to Analyzed with an accumulated warning, and an
// importance measure that cannot be computed is skipped with a log
// entry; a probability evaluation error is not degraded: Analyze
// returns it and the state stays Compiled.
func (e *Engine) Analyze(ctx context.Context) (Analysis, error) {
	if err := guard(e.state, Compiled); err != nil {
		return Analysis{}, err
	}
	an := Analysis{
		RunID:       e.runID,
		Mode:        e.settings.Mode,
		Engine:      e.settings.Engine,
		MissionTime: e.settings.MissionTime,
	}

	if e.preprocessResult.TopConstant {
		an.TopConstant = true
		an.TopValue = e.preprocessResult.TopValue
		if e.preprocessResult.TopValue {
			an.TopProbability = 1
		}
		an.Warnings = e.warnings
		e.state = Analyzed
		return an, nil
	}

	p := model.ProbabilityVector(e.model, e.settings.MissionTime)

	if e.settings.ComputeProbability {
		inputs := probability.Inputs{BDD: e.bddMgr, BDDEdge: e.bddEdge, ZBDD: e.zbddMgr, ZBDDEdge: e.zbddEdge}
		top, warnings, err := probability.Evaluate(e.settings.Mode, inputs, p)
		if err != nil {
			return Analysis{}, err
		}
		an.TopProbability = top
		an.Warnings = append(an.Warnings, warnings...)
		if e.settings.Mode == probability.MCUB && !isCoherent(e.model) {
			an.Warnings = append(an.Warnings, model.Warning{
				Kind:    model.WarnNonCoherentMCUB,
				Message: "mcub is not conservative for a non-coherent model (negating connectives or negated arguments)",
			})
		}
	}

	if e.zbddMgr != nil {
		an.Products = e.zbddMgr.Products(e.zbddEdge)
	}

	if e.settings.ComputeImportance {
		an.Importance = make(map[int]importance.Measures, len(e.model.BasicEvents))
		for i := range e.model.BasicEvents {
			var measures importance.Measures
			var err error
			if e.bddMgr != nil {
				measures, err = importance.Compute(e.bddMgr, e.bddEdge, i, p)
			} else {
				measures, err = importance.ComputeApprox(e.zbddMgr, e.zbddEdge, i, p)
			}
			if err != nil {
				e.log.Warn().Err(err).Str("basic_event", e.model.BasicEvents[i].ID).Msg("importance measure skipped")
				continue
			}
			an.Importance[i] = measures
		}
	}

	if e.settings.ComputeUncertainty {
		mcIn := uncertainty.Inputs{
			Model: e.model, Mode: e.settings.Mode,
			BDD: e.bddMgr, BDDEdge: e.bddEdge,
			ZBDD: e.zbddMgr, ZBDDEdge: e.zbddEdge,
			MissionTime: e.settings.MissionTime,
		}
		mc, err := uncertainty.Run(ctx, mcIn, e.settings.NumTrials, e.settings.Seed, e.settings.Workers, e.log)
		if err != nil {
			if _, cancelled := err.(*model.Cancelled); cancelled {
				e.state = Cancelled
				return Analysis{}, err
			}
			e.warnings = append(e.warnings, model.Warning{Kind: model.WarnCutoffTruncated, Message: "monte carlo run failed: " + err.Error()})
		} else {
			an.Uncertainty = &mc
		}

		sil, err := uncertainty.RunSIL(ctx, mcIn, e.settings.SILBuckets, e.log)
		if err != nil {
			if _, cancelled := err.(*model.Cancelled); cancelled {
				e.state = Cancelled
				return Analysis{}, err
			}
			e.warnings = append(e.warnings, model.Warning{Kind: model.WarnApproximatePFH, Message: "sil run failed: " + err.Error()})
		} else {
			an.SIL = &sil
		}
	}

	an.Warnings = append(an.Warnings, e.warnings...)
	e.state = Analyzed
	return an, nil
}

// ProbabilityAt recomputes the top event probability at an arbitrary
// mission time t against the already-compiled BDD/ZBDD, without
// rerunning Preprocess/Compile. It is the engine-side half of the
// TimeSeries wiring SPEC_FULL.md §4.F describes: report.AssembleTimeSeries
// drives this repeatedly to build the CLI's time-dependent report, and
// uncertainty.RunSIL does the equivalent internally for the SIL
// histogram. Valid once Compile has run (Compiled or Analyzed).
func (e *Engine) ProbabilityAt(t float64) (float64, error) {
	if e.state != Compiled && e.state != Analyzed {
		return 0, model.NewAnalysisError("ProbabilityAt: engine must be compiled first, got state %v", e.state)
	}
	if e.preprocessResult.TopConstant {
		if e.preprocessResult.TopValue {
			return 1, nil
		}
		return 0, nil
	}
	if e.bddMgr != nil {
		e.bddMgr.InvalidateProbabilityCache()
	}
	p := model.ProbabilityVector(e.model, t)
	inputs := probability.Inputs{BDD: e.bddMgr, BDDEdge: e.bddEdge, ZBDD: e.zbddMgr, ZBDDEdge: e.zbddEdge}
	top, _, err := probability.Evaluate(e.settings.Mode, inputs, p)
	return top, err
}

// basicEventNames returns the basic events' IDs in index order, the
// varNames argument both pdag.WriteDot and bdd.WriteDot take to label
// diagram nodes with human-readable names instead of raw indices.
func (e *Engine) basicEventNames() []string {
	names := make([]string, len(e.model.BasicEvents))
	for i, be := range e.model.BasicEvents {
		names[i] = be.ID
	}
	return names
}

// WritePDAGDot renders the preprocessed PDAG as a Graphviz DOT graph,
// exercising §4.A's dot_export operation. Valid once Preprocess has
// run.
func (e *Engine) WritePDAGDot(w io.Writer) error {
	if e.dag == nil {
		return model.NewAnalysisError("WritePDAGDot: no PDAG yet, call Preprocess first")
	}
	return e.dag.WriteDot(w, e.basicEventNames())
}

// WriteBDDDot renders the compiled BDD as a Graphviz DOT graph,
// exercising §4.A's dot_export operation for the BDD side. Valid once
// Compile has built a BDD (exact probability mode or importance); a nil
// bddMgr means this run never needed one.
func (e *Engine) WriteBDDDot(w io.Writer) error {
	if e.bddMgr == nil {
		return model.NewAnalysisError("WriteBDDDot: no BDD was compiled for this run (needs exact mode or importance)")
	}
	return e.bddMgr.WriteDot(w, e.bddEdge, e.basicEventNames())
}

// isCoherent reports whether m is monotonic (coherent): no gate is
// NOT, XOR, NAND, NOR, IMPLY or IFF, and no gate argument is negated.
// MCUB's 1 - Π(1 - P(cut set)) bound is only valid for coherent fault
// trees, per probability.MCUB's doc comment.
func isCoherent(m *model.Model) bool {
	for _, g := range m.Gates {
		switch g.Connective {
		case model.NOT, model.XOR, model.NAND, model.NOR, model.IMPLY, model.IFF:
			return false
		}
		for _, a := range g.Args {
			if a.Complement {
				return false
			}
		}
	}
	return true
}
