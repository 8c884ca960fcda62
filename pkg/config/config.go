package config

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/lsv/pkg/lsv"
)

type Config interface {
	Pattern() string
	Exclude() []string
	DropLast() bool

	UpperCutoff() float64
	LowerCutoff() float64
	GridPoints() int
	GridLowOffset() float64
	GridHighOffset() float64
	PeakSearchMin() float64
	PeakDistance() int
	TemperatureCelsius() float64
	AssumedPeak() float64

	// Endpoints returns the baseline endpoints configured for a file base name.
	Endpoints(name string) (lsv.Endpoints, bool)
	// FWHMOverride returns the manually read half-maximum voltage of a file.
	FWHMOverride(name string) (float64, bool)

	SetEndpoints(name string, ep lsv.Endpoints)
	SetFWHMOverride(name string, v float64)
	SetExclude([]string)
	SetDropLast(bool)

	// Params converts the configuration into analysis parameters.
	Params() lsv.Params
	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
