// Copyright (c) 2024 The SCRAM authors
//
// MIT License

// Package logging builds the zerolog.Logger every component takes by
// value (internal/bdd, internal/zbdd, internal/preprocess,
// internal/mocus, internal/uncertainty), following the console/JSON
// split gravitational-teleport's prehog server applies at its own
// entrypoint (prehog/cmd/prehog/main.go): a human-readable console
// writer on an attached terminal, structured JSON otherwise.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is parsed with zerolog.ParseLevel; an empty string defaults
	// to "info".
	Level string
	// Output overrides the destination writer; nil defaults to os.Stderr.
	Output io.Writer
	// ForcePretty set to true forces the console writer. When false, the
	// console writer is still used if Output is a terminal, and JSON is
	// written otherwise.
	ForcePretty bool
}

// New builds a component logger per Options, stamping every record with
// the given component name so a merged log stream stays attributable.
func New(component string, opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	pretty := opts.ForcePretty
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		pretty = true
	}
	var w io.Writer = out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		if l, err := zerolog.ParseLevel(opts.Level); err == nil {
			level = l
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}
