package lsv

import (
	pkgerrors "github.com/pkg/errors"
)

// HalfMaxResult is the outcome of HalfMaximum.
//
// The threshold is the peak current minus the raw current at the high
// baseline endpoint, not half of the baseline-corrected peak, and the scan
// is a plain threshold crossing. Values derived from it have not been checked
// against Ep - Ep/2 from theory and are always reported with Verified=false.
type HalfMaxResult struct {
	Threshold float64 `json:"threshold"`
	Index     int     `json:"index"`
	Voltage   float64 `json:"voltage"`
	Verified  bool    `json:"verified"`
}

// HalfMaximum scans current from the high-voltage end of grid and returns
// the first voltage where it is below peakCurrent - endCurrent.
func HalfMaximum(grid, current []float64, peakCurrent, endCurrent float64) (HalfMaxResult, error) {
	threshold := peakCurrent - endCurrent

	for i := len(current) - 1; i >= 0; i-- {
		if current[i] < threshold {
			return HalfMaxResult{
				Threshold: threshold,
				Index:     i,
				Voltage:   grid[i],
			}, nil
		}
	}

	return HalfMaxResult{}, pkgerrors.Wrapf(ErrNoHalfMaxCrossing, "threshold %.4g", threshold)
}
