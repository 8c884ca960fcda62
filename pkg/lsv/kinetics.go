package lsv

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// CODATA 2018 exact values.
const (
	Faraday        = 96485.33212 // C mol^-1
	GasConstant    = 8.314462618 // J mol^-1 K^-1
	ZeroCelsius    = 273.15      // K
	fitLineMaxX    = 0.5         // V
	fitLinePoints  = 100
	halfPeakFactor = 0.0477 // V, 1.857 RT/F at 25 °C
)

// InverseThermalVoltage returns f = F/(RT) in V^-1 for a temperature in °C.
func InverseThermalVoltage(celsius float64) float64 {
	return Faraday / (GasConstant * (ZeroCelsius + celsius))
}

// TransferFit is the Tafel-type fit of ln(-I) against the overpotential
// relative to an assumed peak voltage.
type TransferFit struct {
	AssumedPeak float64 `json:"assumedPeak"`
	// X is assumedPeak - peak voltage, Y is ln(-(peak - baseline)), one per file.
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Line  Line      `json:"line"`
	F     float64   `json:"f"`
	Alpha float64   `json:"alpha"`
	// LineX and LineY sample the fitted line over [0, 0.5] V for plotting.
	LineX []float64 `json:"lineX"`
	LineY []float64 `json:"lineY"`
}

// FitTransferCoefficient fits the baseline-corrected peak currents of all
// results and derives alpha = slope / f.
func FitTransferCoefficient(results []Result, assumedPeak, f float64) (TransferFit, error) {
	if len(results) < 2 {
		return TransferFit{}, pkgerrors.Wrapf(ErrTooFewPoints, "transfer coefficient fit needs 2 files, got %d", len(results))
	}

	x := make([]float64, len(results))
	y := make([]float64, len(results))
	for i, r := range results {
		corrected := r.CorrectedPeakCurrent()
		if corrected >= 0 {
			return TransferFit{}, pkgerrors.Wrapf(ErrNonNegativeCurrent, "%s: %.4g mA", r.File, corrected)
		}
		x[i] = assumedPeak - r.PeakVoltage
		y[i] = math.Log(-corrected)
	}

	line, err := LinearFit(x, y)
	if err != nil {
		return TransferFit{}, pkgerrors.Wrap(err, "failed to fit ln(-I) against overpotential")
	}

	fit := TransferFit{
		AssumedPeak: assumedPeak,
		X:           x,
		Y:           y,
		Line:        line,
		F:           f,
		Alpha:       line.Slope / f,
		LineX:       floats.Span(make([]float64, fitLinePoints), 0, fitLineMaxX),
		LineY:       make([]float64, fitLinePoints),
	}
	for i, v := range fit.LineX {
		fit.LineY[i] = line.At(v)
	}

	return fit, nil
}

// HalfPeakEstimate is the alternative alpha estimate from the distance
// between the peak and the half-maximum voltage.
type HalfPeakEstimate struct {
	File        string  `json:"file"`
	PeakVoltage float64 `json:"peakVoltage"`
	FWHMVoltage float64 `json:"fwhmVoltage"`
	// Overridden is set when FWHMVoltage came from configuration instead of
	// the computed crossing.
	Overridden bool    `json:"overridden"`
	Alpha      float64 `json:"alpha"`
}

// HalfPeakWidthEstimates computes 0.0477 / |Ep - E_FWHM| per result.
// overrides maps file names to manually read FWHM voltages.
func HalfPeakWidthEstimates(results []Result, overrides map[string]float64) ([]HalfPeakEstimate, error) {
	out := make([]HalfPeakEstimate, 0, len(results))
	for _, r := range results {
		est := HalfPeakEstimate{
			File:        r.File,
			PeakVoltage: r.PeakVoltage,
			FWHMVoltage: r.HalfMax.Voltage,
		}
		if v, ok := overrides[r.File]; ok {
			est.FWHMVoltage = v
			est.Overridden = true
		}

		width := math.Abs(est.PeakVoltage - est.FWHMVoltage)
		if width == 0 {
			return nil, pkgerrors.Errorf("%s: peak and half-maximum voltages coincide at %.4f V", r.File, est.PeakVoltage)
		}
		est.Alpha = halfPeakFactor / width
		out = append(out, est)
	}
	return out, nil
}
