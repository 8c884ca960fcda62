package lsv

import (
	"sort"

	pkgerrors "github.com/pkg/errors"
)

// DefaultPeakDistance is far larger than any grid, so at most one peak
// survives the separation filter.
const DefaultPeakDistance = 10000

// LocalMaxima returns the indices of interior local maxima of x in ascending
// order. A flat top counts once, at its middle (rounded down). The first and
// last elements are never maxima.
func LocalMaxima(x []float64) []int {
	var peaks []int
	last := len(x) - 1

	i := 1
	for i < last {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < last && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				peaks = append(peaks, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}

	return peaks
}

// FindPeaks returns local maxima of x that are at least distance indices
// apart. When two maxima are too close the higher one is kept.
func FindPeaks(x []float64, distance int) []int {
	peaks := LocalMaxima(x)
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}

	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] < x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}

	for j := len(order) - 1; j >= 0; j-- {
		i := order[j]
		if !keep[i] {
			continue
		}
		for k := i - 1; k >= 0 && peaks[i]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := i + 1; k < len(peaks) && peaks[k]-peaks[i] < distance; k++ {
			keep[k] = false
		}
	}

	out := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// DetectPeak finds the reduction peak (a minimum of current) on grid points
// above threshold and returns its grid index.
func DetectPeak(grid, current []float64, threshold float64, distance int) (int, error) {
	start := -1
	for i, v := range grid {
		if v > threshold {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, pkgerrors.Wrapf(ErrNoPeak, "no grid voltage above %.3f V", threshold)
	}

	neg := make([]float64, len(current)-start)
	for i, c := range current[start:] {
		neg[i] = -c
	}

	peaks := FindPeaks(neg, distance)
	if len(peaks) == 0 {
		return 0, pkgerrors.Wrapf(ErrNoPeak, "above %.3f V", threshold)
	}

	return start + peaks[0], nil
}
