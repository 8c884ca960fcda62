package lsv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfMaximum(t *testing.T) {
	grid := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	current := []float64{-0.1, -0.6, -1.0, -0.7, -0.3, -0.1}

	// threshold = -1.0 - (-0.5) = -0.5; from the high end -0.7 at 0.4 V is first below
	got, err := HalfMaximum(grid, current, -1.0, -0.5)
	require.NoError(t, err)

	assert.InDelta(t, -0.5, got.Threshold, 1e-12)
	assert.Equal(t, 3, got.Index)
	assert.Equal(t, 0.4, got.Voltage)
	assert.False(t, got.Verified)
}

func TestHalfMaximumNoCrossing(t *testing.T) {
	grid := []float64{0.1, 0.2, 0.3}
	current := []float64{-0.1, -0.2, -0.1}

	_, err := HalfMaximum(grid, current, -0.2, 0.5)
	assert.True(t, errors.Is(err, ErrNoHalfMaxCrossing))
}
