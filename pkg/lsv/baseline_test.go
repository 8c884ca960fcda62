package lsv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineThrough(t *testing.T) {
	l, err := LineThrough(0.2, -0.5, 0.8, 0.7)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, l.Slope, 1e-12)
	assert.InDelta(t, -0.9, l.Intercept, 1e-12)
	for _, x := range []float64{0.2, 0.35, 0.5, 0.8} {
		assert.InDelta(t, 2.0*x-0.9, l.At(x), 1e-12, "at %v", x)
	}

	_, err = LineThrough(0.4, 1, 0.4, 2)
	assert.True(t, errors.Is(err, ErrDegenerateBaseline))
}

func TestBaseline(t *testing.T) {
	// falling sweep, current = 0.1*V - 0.3 away from any peak
	var voltages, currents []float64
	for v := 1.0; v > 0.0; v -= 0.05 {
		voltages = append(voltages, v)
		currents = append(currents, 0.1*v-0.3)
	}
	sweep := traceOf(voltages, currents)

	ep := Endpoints{Start: 0.32, End: 0.87}
	got, err := Baseline(sweep, ep, 0.6)
	require.NoError(t, err)

	i1, err := firstBelow(sweep, ep.Start)
	require.NoError(t, err)
	i2, err := firstBelow(sweep, ep.End)
	require.NoError(t, err)

	assert.Equal(t, currents[i1], got.StartCurrent)
	assert.Equal(t, currents[i2], got.EndCurrent)

	slope := (currents[i2] - currents[i1]) / (ep.End - ep.Start)
	want := currents[i1] + slope*(0.6-ep.Start)
	assert.InDelta(t, want, got.AtPeak, 1e-12)
	assert.InDelta(t, slope, got.Line.Slope, 1e-12)
	assert.Equal(t, ep, got.Endpoints)
}

func TestBaselineNoCrossing(t *testing.T) {
	sweep := traceOf([]float64{1.0, 0.9, 0.8}, []float64{0, 0, 0})

	_, err := Baseline(sweep, Endpoints{Start: 0.5, End: 0.95}, 0.7)
	assert.True(t, errors.Is(err, ErrNoCutoffCrossing))
}
