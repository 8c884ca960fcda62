package config

import (
	"github.com/charlie0129/lsv/pkg/lsv"
)

// SeedEndpoints are the baseline endpoints read by hand for the first
// dataset, in sorted file order. They are only a starting point for new
// dataset configs; the fifth row was never usable.
var SeedEndpoints = []lsv.Endpoints{
	{Start: 0.59, End: 1.15},
	{Start: 0.45, End: 1.10},
	{Start: 0.41, End: 0.89},
	{Start: 0.20, End: 0.61},
	{Start: 0.02, End: 0.47},
}

// SeedFWHMVoltages are the half-maximum voltages read by hand for the first
// dataset, in sorted file order.
var SeedFWHMVoltages = []float64{0.85, 0.775, 0.71, 0.50}

// Seed records endpoints (and FWHM overrides when withFWHM is set) for names
// by position in the seed tables. Names past the end of a table get nothing
// and are returned so the caller can report them.
func Seed(c Config, names []string, withFWHM bool) (unseeded []string) {
	for i, name := range names {
		if i >= len(SeedEndpoints) {
			unseeded = append(unseeded, name)
			continue
		}
		c.SetEndpoints(name, SeedEndpoints[i])
		if withFWHM && i < len(SeedFWHMVoltages) {
			c.SetFWHMOverride(name, SeedFWHMVoltages[i])
		}
	}
	return unseeded
}
