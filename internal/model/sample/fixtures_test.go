// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package sample

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGen200EventIsDeterministic checks the generator's one guarantee:
// calling it twice with the same numEvents produces byte-identical
// structure and leaf probabilities, since nothing downstream seeds it
// from randomness. It is a synthetic stand-in sized like the
// repository's historical 200_event.xml benchmark, not a reproduction
// of that benchmark's actual topology — see
// internal/engine.TestEngineGen200EventSyntheticRegression for the
// numbers this generator can and cannot be compared against.
func TestGen200EventIsDeterministic(t *testing.T) {
	m1, err := Gen200Event(200)
	require.NoError(t, err)
	m2, err := Gen200Event(200)
	require.NoError(t, err)

	require.Len(t, m1.BasicEvents, 200)
	assert.Equal(t, "G0", m1.Root)
	assert.Equal(t, m1.BasicEvents, m2.BasicEvents)
	assert.Equal(t, m1.Gates, m2.Gates)
	require.NoError(t, m1.Index())
}

// TestGen200EventRejectsTooFewEvents checks the generator's guard
// against degenerate input.
func TestGen200EventRejectsTooFewEvents(t *testing.T) {
	_, err := Gen200Event(1)
	assert.Error(t, err)
}

// TestGen200EventLeafProbabilitiesCycleEvery25 checks the documented
// leaf-probability formula directly, since it is the one numeric
// property of the generator that does not depend on tree shape.
func TestGen200EventLeafProbabilitiesCycleEvery25(t *testing.T) {
	m, err := Gen200Event(50)
	require.NoError(t, err)
	require.NoError(t, m.Index())

	for i := 0; i < 50; i++ {
		idx, ok := m.BasicEventByID(fmt.Sprintf("E%d", i))
		require.True(t, ok)
		want := 0.001 + 0.004*float64(i%25)/25.0
		assert.InDelta(t, want, m.BasicEvents[idx].Prob.Value(0), 1e-12)
	}
}
