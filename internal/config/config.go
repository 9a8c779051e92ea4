// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package config loads the YAML configuration file consumed by
// cmd/scram and merges it with CLI flag overrides, following the
// precedence rule in SPEC_FULL.md §1.1: flags > config file > defaults.
// The YAML shape and the yaml.v3 dependency are grounded on
// jinterlante1206-AleutianLocal/cmd/aleutian/main.go's
// os.ReadFile+yaml.Unmarshal config load, generalized from a
// global-Fatal load into an explicit error return.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scram-core/scram/internal/engine"
)

// File is the on-disk shape of the YAML config file (--config PATH).
// Every field except LogLevel mirrors a Settings field and is optional:
// an unset field leaves the corresponding default (or an already-parsed
// CLI flag) untouched by Merge. LogLevel has no Settings counterpart and
// Merge does not read it.
type File struct {
	Engine             string   `yaml:"engine"`
	Approximation      string   `yaml:"approximation"`
	LimitOrder         int      `yaml:"limit_order"`
	ProbabilityCutoff  float64  `yaml:"probability_cutoff"`
	MissionTime        float64  `yaml:"mission_time"`
	NumTrials          int      `yaml:"num_trials"`
	Seed               uint64   `yaml:"seed"`
	SILBuckets         int      `yaml:"sil_buckets"`
	Workers            int      `yaml:"workers"`
	Probability        bool     `yaml:"probability"`
	Importance         bool     `yaml:"importance"`
	Uncertainty        bool     `yaml:"uncertainty"`
	EnableDistribution bool     `yaml:"enable_distribution"`
	LogLevel           string   `yaml:"log_level"`
}

// Load reads and parses the YAML config file at path. A missing path
// (the CLI's --config flag left empty) is not an error: Load returns
// the zero File, matching "config file" being optional in the flags >
// config file > defaults precedence chain.
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}

// Merge layers f onto base settings already populated with defaults
// and CLI flag values, overwriting only the fields f actually sets
// (the zero value of every File field means "not set in the config
// file", so a flag default of 0/""/false never gets clobbered by an
// absent config key — callers that want a config file to win over a
// flag's own zero default should not rely on Merge for that field).
func (f File) Merge(base engine.Settings, explicit FlagsSet) engine.Settings {
	s := base
	if f.Engine != "" && !explicit.Engine {
		s.Engine = engine.ParseEngineKind(f.Engine)
	}
	if f.Approximation != "" && !explicit.Approximation {
		s.Mode = engine.ParseMode(f.Approximation)
	}
	if f.LimitOrder != 0 && !explicit.LimitOrder {
		s.LimitOrder = f.LimitOrder
	}
	if f.ProbabilityCutoff != 0 && !explicit.ProbabilityCutoff {
		s.ProbabilityCutoff = f.ProbabilityCutoff
	}
	if f.MissionTime != 0 && !explicit.MissionTime {
		s.MissionTime = f.MissionTime
	}
	if f.NumTrials != 0 && !explicit.NumTrials {
		s.NumTrials = f.NumTrials
	}
	if f.Seed != 0 && !explicit.Seed {
		s.Seed = f.Seed
	}
	if f.SILBuckets != 0 && !explicit.SILBuckets {
		s.SILBuckets = f.SILBuckets
	}
	if f.Workers != 0 && !explicit.Workers {
		s.Workers = f.Workers
	}
	if f.Probability && !explicit.Probability {
		s.ComputeProbability = true
	}
	if f.Importance && !explicit.Importance {
		s.ComputeImportance = true
	}
	if f.Uncertainty && !explicit.Uncertainty {
		s.ComputeUncertainty = true
	}
	if f.EnableDistribution && !explicit.EnableDistribution {
		s.EnableDistribution = true
	}
	return s
}

// FlagsSet records which Settings-affecting flags the user passed
// explicitly on the command line, so Merge knows a config-file value
// must not override a flag the user actually typed even when that
// flag's value happens to equal the zero value.
type FlagsSet struct {
	Engine             bool
	Approximation      bool
	LimitOrder         bool
	ProbabilityCutoff  bool
	MissionTime        bool
	NumTrials          bool
	Seed               bool
	SILBuckets         bool
	Workers            bool
	Probability        bool
	Importance         bool
	Uncertainty        bool
	EnableDistribution bool
}
