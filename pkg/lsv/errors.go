package lsv

import "errors"

var (
	// ErrEmptyTrace is returned when a file or a sweep slice holds no samples
	ErrEmptyTrace = errors.New("empty trace")

	// ErrMalformedRow is returned when a data row cannot be parsed into four numeric columns
	ErrMalformedRow = errors.New("malformed row")

	// ErrNoCutoffCrossing is returned when voltage never drops below a requested level
	ErrNoCutoffCrossing = errors.New("voltage never drops below cutoff")

	// ErrNoCycleBoundary is returned when no row carries cycle index 1
	ErrNoCycleBoundary = errors.New("no cycle boundary found")

	// ErrTooFewPoints is returned when there is not enough data to interpolate or fit
	ErrTooFewPoints = errors.New("too few points")

	// ErrOutOfRange is returned when the interpolant is evaluated outside its sampled voltages
	ErrOutOfRange = errors.New("value out of interpolation range")

	// ErrNoPeak is returned when no reduction peak is found above the search threshold
	ErrNoPeak = errors.New("no peak found")

	// ErrNoHalfMaxCrossing is returned when current never falls below the half-maximum threshold
	ErrNoHalfMaxCrossing = errors.New("no half-maximum crossing found")

	ErrDegenerateBaseline = errors.New("baseline endpoints must differ")

	// ErrNonNegativeCurrent is returned when a baseline-corrected peak current is not negative,
	// so its negative logarithm is undefined.
	ErrNonNegativeCurrent = errors.New("baseline-corrected peak current is not negative")

	// ErrNoEndpoints is returned when a file has no baseline endpoints configured
	ErrNoEndpoints = errors.New("no baseline endpoints configured")

	ErrBadFileName = errors.New("file name does not carry a sweep speed")
)
