package lsv

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Params holds everything that used to be a per-dataset constant.
type Params struct {
	Pattern  string
	Exclude  []string
	DropLast bool

	UpperCutoff    float64 // V
	LowerCutoff    float64 // V
	GridPoints     int
	GridLowOffset  float64 // V, added to LowerCutoff
	GridHighOffset float64 // V, subtracted from UpperCutoff

	PeakSearchMin float64 // V
	PeakDistance  int     // grid points

	TemperatureCelsius float64
	AssumedPeak        float64 // V

	// Endpoints maps file base names to baseline endpoints.
	Endpoints map[string]Endpoints
	// FWHMOverrides maps file base names to manually read half-maximum voltages.
	FWHMOverrides map[string]float64
}

// DefaultParams returns the settings the instrument exports were recorded
// with. Endpoints and overrides are empty, since they are keyed by file name.
func DefaultParams() Params {
	return Params{
		Pattern:            "*.txt",
		DropLast:           true,
		UpperCutoff:        1.2,
		LowerCutoff:        0.01,
		GridPoints:         500,
		GridLowOffset:      0.02,
		GridHighOffset:     0.025,
		PeakSearchMin:      0.2,
		PeakDistance:       DefaultPeakDistance,
		TemperatureCelsius: 30,
		AssumedPeak:        1.0,
		Endpoints:          map[string]Endpoints{},
		FWHMOverrides:      map[string]float64{},
	}
}

// Result holds the values extracted from one file.
type Result struct {
	File  string `json:"file"`
	Speed string `json:"speed"`

	Grid    []float64 `json:"-"`
	Current []float64 `json:"-"`

	PeakIndex   int     `json:"peakIndex"`
	PeakVoltage float64 `json:"peakVoltage"`
	PeakCurrent float64 `json:"peakCurrent"`

	Baseline BaselineResult `json:"baseline"`
	HalfMax  HalfMaxResult  `json:"halfMax"`
}

// CorrectedPeakCurrent is the peak current with the background removed.
func (r Result) CorrectedPeakCurrent() float64 {
	return r.PeakCurrent - r.Baseline.AtPeak
}

// Batch is the outcome of analyzing a dataset directory.
type Batch struct {
	Selection Selection          `json:"selection"`
	Results   []Result           `json:"results"`
	Fit       TransferFit        `json:"fit"`
	Estimates []HalfPeakEstimate `json:"estimates"`
}

// Analyzer runs the per-file pipeline with a fixed parameter set.
type Analyzer struct {
	p    Params
	grid []float64
}

func NewAnalyzer(p Params) (*Analyzer, error) {
	grid, err := NewGrid(p.LowerCutoff, p.UpperCutoff, p.GridPoints, p.GridLowOffset, p.GridHighOffset)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to build voltage grid")
	}
	return &Analyzer{p: p, grid: grid}, nil
}

func (a *Analyzer) Params() Params {
	return a.p
}

// Grid returns a copy of the shared voltage grid.
func (a *Analyzer) Grid() []float64 {
	return append([]float64(nil), a.grid...)
}

// AnalyzeTrace runs sweep extraction, interpolation, peak detection,
// baseline and half-maximum search on a loaded trace.
func (a *Analyzer) AnalyzeTrace(t Trace, ep Endpoints) (Result, error) {
	sweep, err := ExtractSweep(t, a.p.UpperCutoff)
	if err != nil {
		return Result{}, err
	}

	v, c := DecreasingSegment(sweep)
	ip, err := NewInterpolant(v, c)
	if err != nil {
		return Result{}, pkgerrors.Wrapf(err, "%s", t.Name)
	}
	current, err := ip.Evaluate(a.grid)
	if err != nil {
		return Result{}, pkgerrors.Wrapf(err, "%s", t.Name)
	}

	peak, err := DetectPeak(a.grid, current, a.p.PeakSearchMin, a.p.PeakDistance)
	if err != nil {
		return Result{}, pkgerrors.Wrapf(err, "%s", t.Name)
	}

	res := Result{
		File:        t.Name,
		Grid:        a.Grid(),
		Current:     current,
		PeakIndex:   peak,
		PeakVoltage: a.grid[peak],
		PeakCurrent: current[peak],
	}

	res.Baseline, err = Baseline(sweep, ep, res.PeakVoltage)
	if err != nil {
		return Result{}, err
	}

	res.HalfMax, err = HalfMaximum(a.grid, current, res.PeakCurrent, res.Baseline.EndCurrent)
	if err != nil {
		return Result{}, pkgerrors.Wrapf(err, "%s", t.Name)
	}

	return res, nil
}

// AnalyzeFile loads and analyzes one file using the endpoints configured for
// its base name.
func (a *Analyzer) AnalyzeFile(path string) (Result, error) {
	t, err := LoadTrace(path)
	if err != nil {
		return Result{}, err
	}

	speed, err := SweepSpeed(t.Name)
	if err != nil {
		return Result{}, err
	}

	ep, ok := a.p.Endpoints[t.Name]
	if !ok {
		return Result{}, pkgerrors.Wrapf(ErrNoEndpoints, "%s", t.Name)
	}

	logrus.WithFields(logrus.Fields{
		"file":    t.Name,
		"speed":   speed,
		"samples": t.Len(),
	}).Info("starting analysis")

	res, err := a.AnalyzeTrace(t, ep)
	if err != nil {
		return Result{}, err
	}
	res.Speed = speed

	logrus.WithFields(logrus.Fields{
		"file":         t.Name,
		"peakVoltage":  res.PeakVoltage,
		"peakCurrent":  res.PeakCurrent,
		"baseline":     res.Baseline.AtPeak,
		"halfMaxVolts": res.HalfMax.Voltage,
	}).Debug("file analyzed")

	return res, nil
}

// Select lists the files of dir that AnalyzeDir would analyze.
func (a *Analyzer) Select(dir string) (Selection, error) {
	sel, err := SelectFiles(dir, a.p.Pattern, a.p.Exclude, a.p.DropLast)
	if err != nil {
		return Selection{}, err
	}
	for _, d := range sel.Dropped {
		logrus.WithFields(logrus.Fields{
			"file":   d.Name,
			"reason": d.Reason,
		}).Info("skipping file")
	}
	return sel, nil
}

// AnalyzeDir analyzes every selected file of dir in order, then fits the
// transfer coefficient and computes the half-peak-width estimates. The first
// failing file aborts the batch.
func (a *Analyzer) AnalyzeDir(dir string) (*Batch, error) {
	sel, err := a.Select(dir)
	if err != nil {
		return nil, err
	}
	if len(sel.Kept) == 0 {
		return nil, pkgerrors.Errorf("no files to analyze in %s matching %q", dir, a.p.Pattern)
	}

	b := &Batch{Selection: sel}
	for _, name := range sel.Kept {
		res, err := a.AnalyzeFile(sel.Path(name))
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to analyze %s", name)
		}
		b.Results = append(b.Results, res)
	}

	logrus.Warn("half-maximum voltages use an unverified threshold search; treat E_FWHM and the half-peak-width estimates as provisional")

	b.Fit, err = FitTransferCoefficient(b.Results, a.p.AssumedPeak, InverseThermalVoltage(a.p.TemperatureCelsius))
	if err != nil {
		return nil, err
	}

	b.Estimates, err = HalfPeakWidthEstimates(b.Results, a.p.FWHMOverrides)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"files": len(b.Results),
		"slope": b.Fit.Line.Slope,
		"alpha": b.Fit.Alpha,
	}).Info("transfer coefficient fitted")

	return b, nil
}
