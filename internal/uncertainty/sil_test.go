// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package uncertainty

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBands(t *testing.T) {
	assert.Equal(t, ClassNone, Classify(0.5))
	assert.Equal(t, ClassSIL1, Classify(0.05))
	assert.Equal(t, ClassSIL2, Classify(0.005))
	assert.Equal(t, ClassSIL3, Classify(0.0005))
	assert.Equal(t, ClassSIL4, Classify(0.00005))
	assert.Equal(t, ClassBeyond4, Classify(0.000001))
}

func TestRunSILFractionsSumToOne(t *testing.T) {
	in, _, _ := compileAND(t, 0.05)
	in.MissionTime = 10

	rep, err := RunSIL(context.Background(), in, 20, zerolog.Nop())
	require.NoError(t, err)

	sum := 0.0
	for _, f := range rep.ClassFraction {
		sum += f
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.True(t, rep.PFHApproximate)
	assert.Len(t, rep.BucketPFD, 20)
}

func TestRunSILRejectsNonPositiveBuckets(t *testing.T) {
	in, _, _ := compileAND(t, 0.05)
	_, err := RunSIL(context.Background(), in, 0, zerolog.Nop())
	assert.Error(t, err)
}
