package lsv

import (
	pkgerrors "github.com/pkg/errors"
)

// ExtractSweep isolates the first sweep pair of a trace: rows before the
// first voltage below upperCutoff are dropped, then everything from the first
// row with cycle index 1 onward.
func ExtractSweep(t Trace, upperCutoff float64) (Trace, error) {
	start := -1
	for i, s := range t.Samples {
		if s.Voltage < upperCutoff {
			start = i
			break
		}
	}
	if start < 0 {
		return Trace{}, pkgerrors.Wrapf(ErrNoCutoffCrossing, "%s: upper cutoff %.3f V", t.Name, upperCutoff)
	}
	t = t.slice(start, t.Len())

	end := -1
	for i, s := range t.Samples {
		if s.Cycle == 1 {
			end = i
			break
		}
	}
	if end < 0 {
		return Trace{}, pkgerrors.Wrapf(ErrNoCycleBoundary, "%s", t.Name)
	}
	if end == 0 {
		return Trace{}, pkgerrors.Wrapf(ErrEmptyTrace, "%s: sweep ends at its first row", t.Name)
	}

	return t.slice(0, end), nil
}

// firstBelow returns the index of the first sample with voltage below v.
func firstBelow(t Trace, v float64) (int, error) {
	for i, s := range t.Samples {
		if s.Voltage < v {
			return i, nil
		}
	}
	return 0, pkgerrors.Wrapf(ErrNoCutoffCrossing, "%s: %.3f V", t.Name, v)
}
