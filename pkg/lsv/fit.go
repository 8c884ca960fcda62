package lsv

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Polyfit returns least-squares polynomial coefficients of the given degree,
// highest power first.
func Polyfit(x, y []float64, degree int) ([]float64, error) {
	if degree < 0 {
		return nil, pkgerrors.Errorf("invalid degree %d", degree)
	}
	if len(x) != len(y) {
		return nil, pkgerrors.Errorf("x/y length mismatch: %d != %d", len(x), len(y))
	}
	if len(x) < degree+1 {
		return nil, pkgerrors.Wrapf(ErrTooFewPoints, "degree %d fit needs %d points, got %d", degree, degree+1, len(x))
	}

	cols := degree + 1
	a := mat.NewDense(len(x), cols, nil)
	for i, xi := range x {
		for j := 0; j < cols; j++ {
			a.Set(i, j, math.Pow(xi, float64(degree-j)))
		}
	}
	b := mat.NewVecDense(len(y), append([]float64(nil), y...))

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, pkgerrors.Wrap(err, "least squares solve failed")
	}

	return mat.Col(nil, 0, &c), nil
}

// LinearFit fits y = slope*x + intercept.
func LinearFit(x, y []float64) (Line, error) {
	coeffs, err := Polyfit(x, y, 1)
	if err != nil {
		return Line{}, err
	}
	return Line{Slope: coeffs[0], Intercept: coeffs[1]}, nil
}

// Regression is the closed-form simple linear regression of y on x. It is
// used to cross-check LinearFit.
func Regression(x, y []float64) Line {
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	return Line{Slope: slope, Intercept: intercept}
}
