// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scram-core/scram/internal/config"
	"github.com/scram-core/scram/internal/engine"
	"github.com/scram-core/scram/internal/logging"
	"github.com/scram-core/scram/internal/model"
	"github.com/scram-core/scram/internal/model/sample"
	"github.com/scram-core/scram/internal/report"
)

// version is stamped by the release process; left as a placeholder
// constant since this repository builds no release tooling.
const version = "0.1.0-dev"

var (
	flagConfig   string
	flagLogLevel string

	flagEngine      string
	flagApprox      string
	flagLimitOrder  int
	flagCutoff      float64
	flagMissionTime float64
	flagNumTrials   int
	flagSeed        uint64
	flagSILBuckets  int
	flagWorkers     int
	flagProbability bool
	flagImportance  bool
	flagUncertainty bool
	flagDistribute  bool
	flagDemo        bool

	flagBDD       bool
	flagZBDD      bool
	flagMOCUS     bool
	flagRareEvent bool
	flagMCUB      bool

	flagOutput     string
	flagDot        string
	flagDotPDAG    string
	flagDotBDD     string
	flagTimePoints int
)

var rootCmd = &cobra.Command{
	Use:     "scram",
	Short:   "Fault tree and event tree probabilistic risk analysis",
	Version: version,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-files...]",
	Short: "Run the analysis pipeline and print a summary",
	RunE:  runAnalyze,
}

var reportCmd = &cobra.Command{
	Use:   "report [input-files...]",
	Short: "Run the analysis pipeline and emit the Open-PSA XML/DOT report",
	RunE:  runReport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scram version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML configuration file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "zerolog level: debug, info, warn, error")

	registerAnalysisFlags(analyzeCmd)
	registerAnalysisFlags(reportCmd)

	rf := reportCmd.Flags()
	rf.StringVarP(&flagOutput, "output", "o", "", "XML report destination (default stdout)")
	rf.StringVar(&flagDot, "dot", "", "Graphviz DOT cut-set graph destination (default none)")
	rf.StringVar(&flagDotPDAG, "dot-pdag", "", "Graphviz DOT preprocessed fault-tree diagram destination (default none)")
	rf.StringVar(&flagDotBDD, "dot-bdd", "", "Graphviz DOT BDD diagram destination (default none, requires an exact-mode BDD)")
	rf.IntVar(&flagTimePoints, "time-points", 0, "sample the top event probability at this many equally spaced points over [0, mission-time] and include them in the report (0 disables)")

	rootCmd.AddCommand(analyzeCmd, reportCmd, versionCmd)
}

// registerAnalysisFlags wires the flag surface §6 of SPEC_FULL.md
// assigns to running the engine; analyze and report both run the full
// pipeline and so both need every one of these.
func registerAnalysisFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagEngine, "engine", "", `cut-set engine: "bdd", "zbdd", or "mocus"`)
	f.BoolVar(&flagBDD, "bdd", false, "shorthand for --engine=bdd")
	f.BoolVar(&flagZBDD, "zbdd", false, "shorthand for --engine=zbdd")
	f.BoolVar(&flagMOCUS, "mocus", false, "shorthand for --engine=mocus")
	f.BoolVar(&flagRareEvent, "rare-event", false, "use the rare-event approximation")
	f.BoolVar(&flagMCUB, "mcub", false, "use the MCUB approximation")
	f.IntVar(&flagLimitOrder, "limit-order", 0, "cut-set order cutoff (0 = unlimited)")
	f.Float64Var(&flagCutoff, "probability-cutoff", 0, "omit products below this probability from the report")
	f.Float64Var(&flagMissionTime, "mission-time", 1.0, "mission time for probability evaluation")
	f.BoolVar(&flagProbability, "probability", true, "compute the top event probability")
	f.BoolVar(&flagImportance, "importance", true, "compute importance measures per basic event")
	f.BoolVar(&flagUncertainty, "uncertainty", false, "run Monte Carlo uncertainty quantification and SIL classification")
	f.IntVar(&flagNumTrials, "num-trials", 1000, "Monte Carlo trial count")
	f.Uint64Var(&flagSeed, "seed", 42, "Monte Carlo RNG seed")
	f.IntVar(&flagSILBuckets, "sil-buckets", 10, "SIL histogram bucket count")
	f.IntVar(&flagWorkers, "workers", 0, "Monte Carlo worker pool size (0 = GOMAXPROCS)")
	f.BoolVar(&flagDistribute, "enable-distribution", false, "enable the bounded AND-over-OR distribution preprocessing pass")
	f.BoolVar(&flagDemo, "demo", false, "analyze a small built-in demo model instead of reading input files")
}

// applyAliases lets --bdd/--zbdd/--mocus act as sugar over --engine and
// --rare-event/--mcub set the approximation mode (flagApprox, which has
// no flag of its own): whichever boolean shorthand was passed wins over
// an empty flagEngine/flagApprox default.
func applyAliases() {
	switch {
	case flagBDD:
		flagEngine = "bdd"
	case flagZBDD:
		flagEngine = "zbdd"
	case flagMOCUS:
		flagEngine = "mocus"
	}
	switch {
	case flagRareEvent:
		flagApprox = "rare-event"
	case flagMCUB:
		flagApprox = "mcub"
	}
}

func flagsSet(cmd *cobra.Command) config.FlagsSet {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	return config.FlagsSet{
		Engine:             changed("engine") || changed("bdd") || changed("zbdd") || changed("mocus"),
		Approximation:      changed("rare-event") || changed("mcub"),
		LimitOrder:         changed("limit-order"),
		ProbabilityCutoff:  changed("probability-cutoff"),
		MissionTime:        changed("mission-time"),
		NumTrials:          changed("num-trials"),
		Seed:               changed("seed"),
		SILBuckets:         changed("sil-buckets"),
		Workers:            changed("workers"),
		Probability:        changed("probability"),
		Importance:         changed("importance"),
		Uncertainty:        changed("uncertainty"),
		EnableDistribution: changed("enable-distribution"),
	}
}

// pipelineResult is what both analyze and report need after running the
// full Model -> preprocess -> compile -> analyze chain; report.Assemble
// is left to each subcommand since analyze never needs a report.Report.
// eng is kept around only for report's --dot-pdag/--dot-bdd diagram
// export; analyze never touches it.
type pipelineResult struct {
	model    *model.Model
	settings engine.Settings
	analysis engine.Analysis
	eng      *engine.Engine
}

func runPipeline(cmd *cobra.Command, args []string) (pipelineResult, error) {
	applyAliases()

	cfgFile, err := config.Load(flagConfig)
	if err != nil {
		return pipelineResult{}, model.NewIOError(flagConfig, err)
	}

	base := engine.Default()
	base.Mode = engine.ParseMode(flagApprox)
	if flagEngine != "" {
		base.Engine = engine.ParseEngineKind(flagEngine)
	}
	base.LimitOrder = flagLimitOrder
	base.ProbabilityCutoff = flagCutoff
	base.MissionTime = flagMissionTime
	base.NumTrials = flagNumTrials
	base.Seed = flagSeed
	base.SILBuckets = flagSILBuckets
	if flagWorkers > 0 {
		base.Workers = flagWorkers
	}
	base.ComputeProbability = flagProbability
	base.ComputeImportance = flagImportance
	base.ComputeUncertainty = flagUncertainty
	base.EnableDistribution = flagDistribute

	settings := cfgFile.Merge(base, flagsSet(cmd))
	if err := settings.Validate(); err != nil {
		return pipelineResult{}, err
	}

	m, err := loadModel(args)
	if err != nil {
		return pipelineResult{}, err
	}
	if err := model.ExpandCCFGroups(m, settings.MissionTime); err != nil {
		return pipelineResult{}, err
	}

	log := logging.New("scram", logging.Options{Level: flagLogLevel})

	e := engine.New(m, settings, log)
	ctx := context.Background()
	if err := e.Preprocess(ctx); err != nil {
		return pipelineResult{}, err
	}
	if err := e.Compile(ctx); err != nil {
		return pipelineResult{}, err
	}
	analysis, err := e.Analyze(ctx)
	if err != nil {
		return pipelineResult{}, err
	}

	for _, w := range analysis.Warnings {
		log.Warn().Str("kind", w.Kind).Msg(w.Message)
	}

	return pipelineResult{model: m, settings: settings, analysis: analysis, eng: e}, nil
}

// runAnalyze is the analyze subcommand: it runs the pipeline and prints
// a terse human-readable summary, with no report file written.
func runAnalyze(cmd *cobra.Command, args []string) error {
	res, err := runPipeline(cmd, args)
	if err != nil {
		return err
	}
	an := res.analysis
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run:         %s\n", an.RunID)
	if an.TopConstant {
		fmt.Fprintf(out, "top event:   constant %v\n", an.TopValue)
		return nil
	}
	fmt.Fprintf(out, "top probability: %.6g\n", an.TopProbability)
	fmt.Fprintf(out, "cut sets:        %d\n", len(an.Products))
	fmt.Fprintf(out, "warnings:        %d\n", len(an.Warnings))
	return nil
}

// runReport is the report subcommand: it runs the same pipeline as
// analyze and additionally assembles and writes the Open-PSA-flavored
// XML report plus whichever DOT diagrams were requested. Every run is a
// pure function of its inputs (SPEC_FULL.md §6: no persisted state), so
// report re-runs the analysis rather than loading a prior one.
func runReport(cmd *cobra.Command, args []string) error {
	res, err := runPipeline(cmd, args)
	if err != nil {
		return err
	}

	r := report.Assemble(res.model, res.analysis, res.settings.ProbabilityCutoff)

	if flagTimePoints > 0 {
		ts, err := report.AssembleTimeSeries(res.eng, flagTimePoints, res.settings.MissionTime)
		if err != nil {
			return err
		}
		r.TimeSeries = ts
	}

	if err := writeXMLReport(r); err != nil {
		return err
	}
	if flagDot != "" {
		if err := writeDotGraph(r); err != nil {
			return err
		}
	}
	if flagDotPDAG != "" {
		if err := writePDAGDot(res.eng); err != nil {
			return err
		}
	}
	if flagDotBDD != "" {
		if err := writeBDDDot(res.eng); err != nil {
			return err
		}
	}
	return nil
}

// loadModel builds the in-memory model.Model for this run. The XML
// Open-PSA MEF loader is out of scope (SPEC_FULL.md §9); --demo is the
// only supported path to a populated model until one is wired in.
func loadModel(args []string) (*model.Model, error) {
	if flagDemo {
		m, err := sample.BetaCCFOfAnd(0.01, 0.1)
		if err != nil {
			return nil, model.NewAnalysisError("building demo model: %v", err)
		}
		return m, nil
	}
	if len(args) == 0 {
		return nil, model.NewIOError("", fmt.Errorf("no input files given; pass --demo to analyze the built-in demo model"))
	}
	return nil, model.NewIOError(args[0], fmt.Errorf("the Open-PSA XML model loader is not implemented in this build"))
}

func writeXMLReport(r report.Report) error {
	out := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return model.NewIOError(flagOutput, err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteXML(out, r); err != nil {
		return model.NewIOError(flagOutput, err)
	}
	return nil
}

func writeDotGraph(r report.Report) error {
	f, err := os.Create(flagDot)
	if err != nil {
		return model.NewIOError(flagDot, err)
	}
	defer f.Close()
	if err := r.WriteDot(f); err != nil {
		return model.NewIOError(flagDot, err)
	}
	return nil
}

// writePDAGDot renders the preprocessed fault-tree DAG itself (distinct
// from report.Report.WriteDot's cut-set graph), exercising the
// dot_export operation §4.A names for the PDAG.
func writePDAGDot(e *engine.Engine) error {
	f, err := os.Create(flagDotPDAG)
	if err != nil {
		return model.NewIOError(flagDotPDAG, err)
	}
	defer f.Close()
	if err := e.WritePDAGDot(f); err != nil {
		return model.NewIOError(flagDotPDAG, err)
	}
	return nil
}

// writeBDDDot renders the compiled BDD, when one was built (exact
// probability mode or importance), exercising the dot_export operation
// §4.A names for the BDD.
func writeBDDDot(e *engine.Engine) error {
	f, err := os.Create(flagDotBDD)
	if err != nil {
		return model.NewIOError(flagDotBDD, err)
	}
	defer f.Close()
	if err := e.WriteBDDDot(f); err != nil {
		return model.NewIOError(flagDotBDD, err)
	}
	return nil
}

// Execute runs the root command and maps any returned error to the
// exit code SPEC_FULL.md §7/§6 assign to its kind.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}

func exitCodeFor(err error) int {
	var verr *model.ValidityError
	if errors.As(err, &verr) {
		return 1
	}
	var ioerr *model.IOError
	if errors.As(err, &ioerr) {
		return 1
	}
	var aerr *model.AnalysisError
	if errors.As(err, &aerr) {
		return 2
	}
	return 3
}
