package config

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/lsv/pkg/lsv"
	"github.com/charlie0129/lsv/pkg/utils/ptr"
)

// DefaultFileName is looked up in the dataset directory when no config path
// is given.
const DefaultFileName = "lsv.yaml"

var (
	defaults          = lsv.DefaultParams()
	defaultFileConfig = &RawFileConfig{
		Pattern:            ptr.To(defaults.Pattern),
		DropLast:           ptr.To(defaults.DropLast),
		UpperCutoff:        ptr.To(defaults.UpperCutoff),
		LowerCutoff:        ptr.To(defaults.LowerCutoff),
		GridPoints:         ptr.To(defaults.GridPoints),
		GridLowOffset:      ptr.To(defaults.GridLowOffset),
		GridHighOffset:     ptr.To(defaults.GridHighOffset),
		PeakSearchMin:      ptr.To(defaults.PeakSearchMin),
		PeakDistance:       ptr.To(defaults.PeakDistance),
		TemperatureCelsius: ptr.To(defaults.TemperatureCelsius),
		AssumedPeak:        ptr.To(defaults.AssumedPeak),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// FileEntry holds the manually curated values of one data file.
type FileEntry struct {
	// Baseline is [start, end] in volts.
	Baseline []float64 `yaml:"baseline,flow"`
	// FWHMVoltage replaces the computed half-maximum voltage in the
	// half-peak-width estimate.
	FWHMVoltage *float64 `yaml:"fwhmVoltage,omitempty"`
}

type RawFileConfig struct {
	Pattern  *string  `yaml:"pattern,omitempty"`
	DropLast *bool    `yaml:"dropLast,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`

	UpperCutoff    *float64 `yaml:"upperCutoff,omitempty"`
	LowerCutoff    *float64 `yaml:"lowerCutoff,omitempty"`
	GridPoints     *int     `yaml:"gridPoints,omitempty"`
	GridLowOffset  *float64 `yaml:"gridLowOffset,omitempty"`
	GridHighOffset *float64 `yaml:"gridHighOffset,omitempty"`

	PeakSearchMin *float64 `yaml:"peakSearchMin,omitempty"`
	PeakDistance  *int     `yaml:"peakDistance,omitempty"`

	TemperatureCelsius *float64 `yaml:"temperatureCelsius,omitempty"`
	AssumedPeak        *float64 `yaml:"assumedPeak,omitempty"`

	Files map[string]FileEntry `yaml:"files,omitempty"`
}

func (c *RawFileConfig) validate() error {
	for name, e := range c.Files {
		if len(e.Baseline) != 2 {
			return pkgerrors.Errorf("file %s: baseline must be [start, end], got %d values", name, len(e.Baseline))
		}
	}
	if c.GridPoints != nil && *c.GridPoints < 2 {
		return pkgerrors.Errorf("gridPoints must be at least 2, got %d", *c.GridPoints)
	}
	return nil
}

// read returns *p or the default, holding the read lock.
func read[T any](f *File, get func(*RawFileConfig) *T) T {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(get(f.c), *get(defaultFileConfig))
}

func (f *File) Pattern() string {
	return read(f, func(c *RawFileConfig) *string { return c.Pattern })
}

func (f *File) DropLast() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.DropLast })
}

func (f *File) Exclude() []string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]string(nil), f.c.Exclude...)
}

func (f *File) UpperCutoff() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.UpperCutoff })
}

func (f *File) LowerCutoff() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.LowerCutoff })
}

func (f *File) GridPoints() int {
	return read(f, func(c *RawFileConfig) *int { return c.GridPoints })
}

func (f *File) GridLowOffset() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.GridLowOffset })
}

func (f *File) GridHighOffset() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.GridHighOffset })
}

func (f *File) PeakSearchMin() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.PeakSearchMin })
}

func (f *File) PeakDistance() int {
	return read(f, func(c *RawFileConfig) *int { return c.PeakDistance })
}

func (f *File) TemperatureCelsius() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.TemperatureCelsius })
}

func (f *File) AssumedPeak() float64 {
	return read(f, func(c *RawFileConfig) *float64 { return c.AssumedPeak })
}

func (f *File) Endpoints(name string) (lsv.Endpoints, bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	e, ok := f.c.Files[name]
	if !ok || len(e.Baseline) != 2 {
		return lsv.Endpoints{}, false
	}
	return lsv.Endpoints{Start: e.Baseline[0], End: e.Baseline[1]}, true
}

func (f *File) FWHMOverride(name string) (float64, bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	e, ok := f.c.Files[name]
	if !ok || e.FWHMVoltage == nil {
		return 0, false
	}
	return *e.FWHMVoltage, true
}

// FileNames returns the configured file names in sorted order.
func (f *File) FileNames() []string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.c.Files))
	for n := range f.c.Files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f *File) SetEndpoints(name string, ep lsv.Endpoints) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c.Files == nil {
		f.c.Files = map[string]FileEntry{}
	}
	e := f.c.Files[name]
	e.Baseline = []float64{ep.Start, ep.End}
	f.c.Files[name] = e
}

func (f *File) SetFWHMOverride(name string, v float64) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c.Files == nil {
		f.c.Files = map[string]FileEntry{}
	}
	e := f.c.Files[name]
	e.FWHMVoltage = &v
	f.c.Files[name] = e
}

func (f *File) SetExclude(names []string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Exclude = append([]string(nil), names...)
}

func (f *File) SetDropLast(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DropLast = &b
}

func (f *File) Params() lsv.Params {
	p := lsv.Params{
		Pattern:            f.Pattern(),
		Exclude:            f.Exclude(),
		DropLast:           f.DropLast(),
		UpperCutoff:        f.UpperCutoff(),
		LowerCutoff:        f.LowerCutoff(),
		GridPoints:         f.GridPoints(),
		GridLowOffset:      f.GridLowOffset(),
		GridHighOffset:     f.GridHighOffset(),
		PeakSearchMin:      f.PeakSearchMin(),
		PeakDistance:       f.PeakDistance(),
		TemperatureCelsius: f.TemperatureCelsius(),
		AssumedPeak:        f.AssumedPeak(),
		Endpoints:          map[string]lsv.Endpoints{},
		FWHMOverrides:      map[string]float64{},
	}

	for _, name := range f.FileNames() {
		if ep, ok := f.Endpoints(name); ok {
			p.Endpoints[name] = ep
		}
		if v, ok := f.FWHMOverride(name); ok {
			p.FWHMOverrides[name] = v
		}
	}

	return p
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	if err := conf.validate(); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := yaml.NewEncoder(fp)
	enc.SetIndent(2)
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}
	if err := enc.Close(); err != nil {
		return pkgerrors.Wrapf(err, "failed to flush config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"pattern":            f.Pattern(),
		"dropLast":           f.DropLast(),
		"exclude":            f.Exclude(),
		"upperCutoff":        f.UpperCutoff(),
		"lowerCutoff":        f.LowerCutoff(),
		"gridPoints":         f.GridPoints(),
		"peakSearchMin":      f.PeakSearchMin(),
		"temperatureCelsius": f.TemperatureCelsius(),
		"assumedPeak":        f.AssumedPeak(),
		"files":              len(f.FileNames()),
	}
}
