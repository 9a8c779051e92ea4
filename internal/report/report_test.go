// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scram-core/scram/internal/engine"
	"github.com/scram-core/scram/internal/model/sample"
)

func TestAssembleAndWriteXMLRoundTripsBasicFields(t *testing.T) {
	m, err := sample.TwoOfTwoOr(0.2)
	require.NoError(t, err)

	settings := engine.Default()
	settings.Engine = engine.KindZBDD
	e := engine.New(m, settings, zerolog.Nop())
	require.NoError(t, e.Preprocess(context.Background()))
	require.NoError(t, e.Compile(context.Background()))
	an, err := e.Analyze(context.Background())
	require.NoError(t, err)

	r := Assemble(m, an, 0)
	assert.Equal(t, "or-ab", r.ModelName)
	assert.InDelta(t, 1-(1-0.2)*(1-0.2), r.TopEvent.Probability, 1e-12)
	require.Len(t, r.Products, 2)
	for _, p := range r.Products {
		assert.Len(t, p.Literals, 1)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, r))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml`))
	assert.Contains(t, out, `model="or-ab"`)
	assert.Contains(t, out, "<product")
}

func TestAssembleComputesContribution(t *testing.T) {
	m, err := sample.TwoOfTwoOr(0.2)
	require.NoError(t, err)

	settings := engine.Default()
	settings.Engine = engine.KindZBDD
	e := engine.New(m, settings, zerolog.Nop())
	require.NoError(t, e.Preprocess(context.Background()))
	require.NoError(t, e.Compile(context.Background()))
	an, err := e.Analyze(context.Background())
	require.NoError(t, err)

	r := Assemble(m, an, 0)
	require.Len(t, r.Products, 2)
	sum := 0.0
	for _, p := range r.Products {
		assert.InDelta(t, p.Probability/an.TopProbability, p.Contribution, 1e-12)
		sum += p.Contribution
	}
	// OR(a,b) with a == b: each single-literal cut set carries 0.2, and
	// the default exact mode gives P(top) = 1-(1-0.2)^2 = 0.36, so the
	// two overlapping cut sets' contributions sum to 0.4/0.36, above 1.
	assert.InDelta(t, (0.2+0.2)/(1-(1-0.2)*(1-0.2)), sum, 1e-12)
}

func TestAssembleTimeSeriesSamplesProbabilityAtEachPoint(t *testing.T) {
	m, err := sample.TwoOfTwoOr(0.2)
	require.NoError(t, err)

	settings := engine.Default()
	settings.MissionTime = 2.0
	e := engine.New(m, settings, zerolog.Nop())
	require.NoError(t, e.Preprocess(context.Background()))
	require.NoError(t, e.Compile(context.Background()))
	_, err = e.Analyze(context.Background())
	require.NoError(t, err)

	samples, err := AssembleTimeSeries(e, 4, settings.MissionTime)
	require.NoError(t, err)
	require.Len(t, samples, 5)
	assert.Equal(t, 0.0, samples[0].T)
	assert.Equal(t, 2.0, samples[4].T)
	// TwoOfTwoOr's probabilities are constants (no Expr time-dependence),
	// so every sample should land on the same top probability.
	for _, s := range samples {
		assert.InDelta(t, 1-(1-0.2)*(1-0.2), s.P, 1e-12)
	}
}

func TestAssembleAppliesProbabilityCutoff(t *testing.T) {
	m, err := sample.TwoOfTwoOr(0.2)
	require.NoError(t, err)

	settings := engine.Default()
	settings.Engine = engine.KindZBDD
	e := engine.New(m, settings, zerolog.Nop())
	require.NoError(t, e.Preprocess(context.Background()))
	require.NoError(t, e.Compile(context.Background()))
	an, err := e.Analyze(context.Background())
	require.NoError(t, err)

	r := Assemble(m, an, 1.0) // cutoff above every product's probability
	assert.Empty(t, r.Products)
}

func TestWriteDotIncludesEveryProduct(t *testing.T) {
	m, err := sample.TwoOfTwoOr(0.2)
	require.NoError(t, err)

	settings := engine.Default()
	settings.Engine = engine.KindZBDD
	e := engine.New(m, settings, zerolog.Nop())
	require.NoError(t, e.Preprocess(context.Background()))
	require.NoError(t, e.Compile(context.Background()))
	an, err := e.Analyze(context.Background())
	require.NoError(t, err)

	r := Assemble(m, an, 0)
	var buf bytes.Buffer
	require.NoError(t, r.WriteDot(&buf))
	out := buf.String()
	assert.Contains(t, out, "digraph CutSets")
	for _, p := range r.Products {
		for _, lit := range p.Literals {
			assert.Contains(t, out, lit)
		}
	}
}
