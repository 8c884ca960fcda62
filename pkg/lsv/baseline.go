package lsv

import (
	pkgerrors "github.com/pkg/errors"
)

// Endpoints are the two voltages spanning a linear background under a peak.
// Start is the low-voltage end in the datasets seen so far, but the order is
// not required.
type Endpoints struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// LineThrough returns the line through (x1, y1) and (x2, y2).
func LineThrough(x1, y1, x2, y2 float64) (Line, error) {
	if x1 == x2 {
		return Line{}, pkgerrors.Wrapf(ErrDegenerateBaseline, "both at %.4f", x1)
	}
	slope := (y2 - y1) / (x2 - x1)
	return Line{Slope: slope, Intercept: y1 - slope*x1}, nil
}

func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// BaselineResult holds the background line under a peak.
type BaselineResult struct {
	Endpoints Endpoints `json:"endpoints"`
	// StartCurrent and EndCurrent are raw currents at the first samples
	// below the endpoint voltages.
	StartCurrent float64 `json:"startCurrent"`
	EndCurrent   float64 `json:"endCurrent"`
	Line         Line    `json:"line"`
	// AtPeak is the background current at the peak voltage.
	AtPeak float64 `json:"atPeak"`
}

// Baseline builds the background line from raw sweep currents at the
// endpoint voltages and evaluates it at peakVoltage. The line runs through
// the configured endpoint voltages, not the voltages of the samples found.
func Baseline(sweep Trace, ep Endpoints, peakVoltage float64) (BaselineResult, error) {
	i1, err := firstBelow(sweep, ep.Start)
	if err != nil {
		return BaselineResult{}, pkgerrors.Wrap(err, "baseline start")
	}
	i2, err := firstBelow(sweep, ep.End)
	if err != nil {
		return BaselineResult{}, pkgerrors.Wrap(err, "baseline end")
	}

	c1 := sweep.Samples[i1].Current
	c2 := sweep.Samples[i2].Current

	line, err := LineThrough(ep.Start, c1, ep.End, c2)
	if err != nil {
		return BaselineResult{}, pkgerrors.Wrapf(err, "%s", sweep.Name)
	}

	return BaselineResult{
		Endpoints:    ep,
		StartCurrent: c1,
		EndCurrent:   c2,
		Line:         line,
		AtPeak:       line.At(peakVoltage),
	}, nil
}
