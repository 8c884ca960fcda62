package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/lsv/pkg/lsv"
)

func TestFileDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: strPtr("  \n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			f, err := NewFile(path)
			require.NoError(t, err)

			p := f.Params()
			want := lsv.DefaultParams()
			assert.Equal(t, want.Pattern, p.Pattern)
			assert.Equal(t, want.DropLast, p.DropLast)
			assert.Equal(t, want.UpperCutoff, p.UpperCutoff)
			assert.Equal(t, want.LowerCutoff, p.LowerCutoff)
			assert.Equal(t, want.GridPoints, p.GridPoints)
			assert.Equal(t, want.GridLowOffset, p.GridLowOffset)
			assert.Equal(t, want.GridHighOffset, p.GridHighOffset)
			assert.Equal(t, want.PeakSearchMin, p.PeakSearchMin)
			assert.Equal(t, want.PeakDistance, p.PeakDistance)
			assert.Equal(t, want.TemperatureCelsius, p.TemperatureCelsius)
			assert.Equal(t, want.AssumedPeak, p.AssumedPeak)
			assert.Empty(t, p.Endpoints)
			assert.Empty(t, p.FWHMOverrides)
			assert.Empty(t, p.Exclude)
		})
	}
}

func strPtr(s string) *string {
	return &s
}

func TestFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `
upperCutoff: 1.1
temperatureCelsius: 25
dropLast: false
exclude:
  - background.txt
files:
  CB_LSV_C01_005mVmin.txt:
    baseline: [0.59, 1.15]
    fwhmVoltage: 0.85
  CB_LSV_C01_010mVmin.txt:
    baseline: [0.45, 1.10]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	f, err := NewFile(path)
	require.NoError(t, err)

	assert.Equal(t, 1.1, f.UpperCutoff())
	assert.Equal(t, 25.0, f.TemperatureCelsius())
	assert.False(t, f.DropLast())
	assert.Equal(t, []string{"background.txt"}, f.Exclude())
	// untouched fields keep their defaults
	assert.Equal(t, 500, f.GridPoints())
	assert.Equal(t, "*.txt", f.Pattern())

	ep, ok := f.Endpoints("CB_LSV_C01_005mVmin.txt")
	require.True(t, ok)
	assert.Equal(t, lsv.Endpoints{Start: 0.59, End: 1.15}, ep)

	v, ok := f.FWHMOverride("CB_LSV_C01_005mVmin.txt")
	require.True(t, ok)
	assert.Equal(t, 0.85, v)

	_, ok = f.FWHMOverride("CB_LSV_C01_010mVmin.txt")
	assert.False(t, ok)
	_, ok = f.Endpoints("unknown.txt")
	assert.False(t, ok)

	p := f.Params()
	assert.Len(t, p.Endpoints, 2)
	assert.Equal(t, map[string]float64{"CB_LSV_C01_005mVmin.txt": 0.85}, p.FWHMOverrides)
	assert.Equal(t, []string{"CB_LSV_C01_005mVmin.txt", "CB_LSV_C01_010mVmin.txt"}, f.FileNames())
}

func TestFileLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "files: [\n"},
		{name: "one baseline value", content: "files:\n  a.txt:\n    baseline: [0.5]\n"},
		{name: "tiny grid", content: "gridPoints: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewFile(path)
			assert.Error(t, err)
		})
	}
}

func TestFileSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	f := NewFileFromConfig(nil, path)
	unseeded := Seed(f, []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt"}, true)
	f.SetExclude([]string{"ref.txt"})
	f.SetDropLast(false)
	require.NoError(t, f.Save())

	assert.Equal(t, []string{"f.txt"}, unseeded)

	loaded, err := NewFile(path)
	require.NoError(t, err)

	for i, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		ep, ok := loaded.Endpoints(name)
		require.True(t, ok, name)
		assert.Equal(t, SeedEndpoints[i], ep)
	}
	v, ok := loaded.FWHMOverride("d.txt")
	require.True(t, ok)
	assert.Equal(t, SeedFWHMVoltages[3], v)
	_, ok = loaded.FWHMOverride("e.txt")
	assert.False(t, ok)

	assert.Equal(t, []string{"ref.txt"}, loaded.Exclude())
	assert.False(t, loaded.DropLast())
	assert.NotEmpty(t, loaded.LogrusFields())
}

func TestSeedWithoutFWHM(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	assert.Empty(t, Seed(f, []string{"a.txt"}, false))

	_, ok := f.FWHMOverride("a.txt")
	assert.False(t, ok)
	_, ok = f.Endpoints("a.txt")
	assert.True(t, ok)
}
