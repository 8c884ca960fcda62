package lsv

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearFitRecoversLine(t *testing.T) {
	tests := []struct {
		name string
		m, b float64
		x    []float64
	}{
		{name: "tafel-like", m: 6.93, b: -2.77, x: []float64{0.4, 0.45, 0.5, 0.62}},
		{name: "negative slope", m: -1.5, b: 0.25, x: []float64{-1, 0, 1, 2, 3}},
		{name: "two points", m: 3, b: 1, x: []float64{0.1, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := make([]float64, len(tt.x))
			for i, x := range tt.x {
				y[i] = tt.m*x + tt.b
			}

			l, err := LinearFit(tt.x, y)
			require.NoError(t, err)
			assert.InDelta(t, tt.m, l.Slope, 1e-9)
			assert.InDelta(t, tt.b, l.Intercept, 1e-9)

			r := Regression(tt.x, y)
			assert.InDelta(t, l.Slope, r.Slope, 1e-9)
			assert.InDelta(t, l.Intercept, r.Intercept, 1e-9)
		})
	}
}

func TestPolyfitQuadratic(t *testing.T) {
	x := []float64{-2, -1, 0, 1, 2, 3}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2*v*v - 3*v + 0.5
	}

	coeffs, err := Polyfit(x, y, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -3, 0.5}, coeffs, 1e-9)
}

func TestPolyfitErrors(t *testing.T) {
	_, err := Polyfit([]float64{1}, []float64{1}, 1)
	assert.True(t, errors.Is(err, ErrTooFewPoints))

	_, err = Polyfit([]float64{1, 2}, []float64{1}, 1)
	assert.Error(t, err)

	_, err = Polyfit([]float64{1, 2}, []float64{1, 2}, -1)
	assert.Error(t, err)
}

func TestInverseThermalVoltage(t *testing.T) {
	// F/(RT) at 30 °C
	assert.InDelta(t, 38.2798, InverseThermalVoltage(30), 1e-3)
	assert.InDelta(t, 38.9217, InverseThermalVoltage(25), 1e-3)
}

func resultWith(file string, peakV, peakI, baseline, fwhmV float64) Result {
	return Result{
		File:        file,
		PeakVoltage: peakV,
		PeakCurrent: peakI,
		Baseline:    BaselineResult{AtPeak: baseline},
		HalfMax:     HalfMaxResult{Voltage: fwhmV},
	}
}

func TestFitTransferCoefficient(t *testing.T) {
	const m, b = 7.5, -3.0
	f := InverseThermalVoltage(30)

	var results []Result
	for i, vp := range []float64{0.62, 0.58, 0.55, 0.5} {
		x := 1.0 - vp
		depth := math.Exp(m*x + b)
		results = append(results, resultWith(string(rune('a'+i)), vp, -0.1-depth, -0.1, vp+0.05))
	}

	fit, err := FitTransferCoefficient(results, 1.0, f)
	require.NoError(t, err)

	assert.InDelta(t, m, fit.Line.Slope, 1e-9)
	assert.InDelta(t, b, fit.Line.Intercept, 1e-9)
	assert.InDelta(t, m/f, fit.Alpha, 1e-9)
	require.Len(t, fit.LineX, 100)
	assert.Equal(t, 0.0, fit.LineX[0])
	assert.InDelta(t, 0.5, fit.LineX[99], 1e-12)
	assert.InDelta(t, m*0.5+b, fit.LineY[99], 1e-9)
}

func TestFitTransferCoefficientErrors(t *testing.T) {
	f := InverseThermalVoltage(30)

	_, err := FitTransferCoefficient([]Result{resultWith("a", 0.6, -1, 0, 0.7)}, 1.0, f)
	assert.True(t, errors.Is(err, ErrTooFewPoints))

	_, err = FitTransferCoefficient([]Result{
		resultWith("a", 0.6, -1, 0, 0.7),
		resultWith("b", 0.5, -1, -2, 0.6),
	}, 1.0, f)
	assert.True(t, errors.Is(err, ErrNonNegativeCurrent))
}

func TestHalfPeakWidthEstimates(t *testing.T) {
	results := []Result{
		resultWith("a.txt", 0.80, -1, 0, 0.90),
		resultWith("b.txt", 0.70, -1, 0, 0.60),
	}

	got, err := HalfPeakWidthEstimates(results, map[string]float64{"b.txt": 0.775})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].Overridden)
	assert.InDelta(t, 0.0477/0.10, got[0].Alpha, 1e-9)

	assert.True(t, got[1].Overridden)
	assert.Equal(t, 0.775, got[1].FWHMVoltage)
	assert.InDelta(t, 0.0477/0.075, got[1].Alpha, 1e-9)

	_, err = HalfPeakWidthEstimates([]Result{resultWith("c.txt", 0.5, -1, 0, 0.5)}, nil)
	assert.Error(t, err)
}
