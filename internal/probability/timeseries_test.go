// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSeriesCollectsEquallySpacedSamples(t *testing.T) {
	ts := NewTimeSeries(4, 8, func(t float64) float64 { return t / 8 })
	samples := Collect(ts)
	want := []Sample{{0, 0}, {2, 0.25}, {4, 0.5}, {6, 0.75}, {8, 1}}
	assert.Equal(t, want, samples)
}

func TestTimeSeriesIsRestartable(t *testing.T) {
	factory := func() TimeSeries { return NewTimeSeries(2, 10, func(t float64) float64 { return t }) }
	first := Collect(factory())
	second := Collect(factory())
	assert.Equal(t, first, second)
}

func TestTimeSeriesSingleSampleWhenNIsZero(t *testing.T) {
	ts := NewTimeSeries(0, 10, func(t float64) float64 { return t })
	samples := Collect(ts)
	assert.Equal(t, []Sample{{0, 0}}, samples)
}
