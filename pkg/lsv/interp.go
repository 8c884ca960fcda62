package lsv

import (
	"sort"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// NewGrid returns n linearly spaced voltages over
// [lowerCutoff+lowOffset, upperCutoff-highOffset].
func NewGrid(lowerCutoff, upperCutoff float64, n int, lowOffset, highOffset float64) ([]float64, error) {
	if n < 2 {
		return nil, pkgerrors.Wrapf(ErrTooFewPoints, "grid needs at least 2 points, got %d", n)
	}
	lo := lowerCutoff + lowOffset
	hi := upperCutoff - highOffset
	if hi <= lo {
		return nil, pkgerrors.Errorf("empty voltage window [%.3f, %.3f]", lo, hi)
	}

	return floats.Span(make([]float64, n), lo, hi), nil
}

// DecreasingSegment keeps the samples where voltage falls towards the next
// sample (the negative-going sweep) and returns them in ascending voltage
// order. Samples sharing a voltage collapse to the one seen first after
// ordering.
func DecreasingSegment(t Trace) (voltages, currents []float64) {
	type point struct{ v, c float64 }

	var pts []point
	for i := 0; i+1 < t.Len(); i++ {
		if t.Samples[i+1].Voltage-t.Samples[i].Voltage < 0 {
			pts = append(pts, point{t.Samples[i].Voltage, t.Samples[i].Current})
		}
	}

	// reversing a falling sweep already gives ascending order; the sort only
	// matters for noisy sweeps that step back up between falling samples
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].v < pts[j].v })

	for i, p := range pts {
		if i > 0 && p.v == pts[i-1].v {
			continue
		}
		voltages = append(voltages, p.v)
		currents = append(currents, p.c)
	}

	return voltages, currents
}

// Interpolant is a piecewise linear current(voltage) function.
type Interpolant struct {
	pl     interp.PiecewiseLinear
	lo, hi float64
}

// NewInterpolant fits current as a function of voltage. voltages must be
// strictly increasing.
func NewInterpolant(voltages, currents []float64) (*Interpolant, error) {
	if len(voltages) < 2 {
		return nil, pkgerrors.Wrapf(ErrTooFewPoints, "interpolation needs at least 2 points, got %d", len(voltages))
	}
	if len(voltages) != len(currents) {
		return nil, pkgerrors.Errorf("voltage/current length mismatch: %d != %d", len(voltages), len(currents))
	}

	ip := &Interpolant{
		lo: voltages[0],
		hi: voltages[len(voltages)-1],
	}
	if err := ip.pl.Fit(voltages, currents); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to fit interpolant")
	}

	return ip, nil
}

// Range returns the sampled voltage range.
func (ip *Interpolant) Range() (lo, hi float64) {
	return ip.lo, ip.hi
}

// At evaluates the interpolant at v.
func (ip *Interpolant) At(v float64) (float64, error) {
	if v < ip.lo || v > ip.hi {
		return 0, pkgerrors.Wrapf(ErrOutOfRange, "%.4f V not in [%.4f, %.4f]", v, ip.lo, ip.hi)
	}
	return ip.pl.Predict(v), nil
}

// Evaluate evaluates the interpolant on every grid voltage.
func (ip *Interpolant) Evaluate(grid []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	for i, v := range grid {
		c, err := ip.At(v)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
