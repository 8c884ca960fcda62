package plot

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/lsv/pkg/lsv"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleBatch(t *testing.T) *lsv.Batch {
	t.Helper()

	grid, err := lsv.NewGrid(0.01, 1.2, 200, 0.02, 0.025)
	require.NoError(t, err)

	b := &lsv.Batch{}
	for i, peak := range []float64{0.6, 0.5} {
		current := make([]float64, len(grid))
		idx := 0
		for j, v := range grid {
			current[j] = -0.1 - float64(i+1)*math.Exp(-math.Pow((v-peak)/0.08, 2))
			if current[j] < current[idx] {
				idx = j
			}
		}
		b.Results = append(b.Results, lsv.Result{
			File:        []string{"CB_LSV_C01_005mVmin.txt", "CB_LSV_C01_020mVmin.txt"}[i],
			Speed:       []string{"005", "020"}[i],
			Grid:        grid,
			Current:     current,
			PeakIndex:   idx,
			PeakVoltage: grid[idx],
			PeakCurrent: current[idx],
			Baseline: lsv.BaselineResult{
				Endpoints:    lsv.Endpoints{Start: 0.3, End: 0.9},
				StartCurrent: -0.1,
				EndCurrent:   -0.1,
				AtPeak:       -0.1,
			},
			HalfMax: lsv.HalfMaxResult{Voltage: grid[idx] + 0.05, Threshold: current[idx] / 2},
		})
	}

	b.Fit, err = lsv.FitTransferCoefficient(b.Results, 1.0, lsv.InverseThermalVoltage(30))
	require.NoError(t, err)
	b.Estimates, err = lsv.HalfPeakWidthEstimates(b.Results, nil)
	require.NoError(t, err)

	return b
}

func TestPNGRenderers(t *testing.T) {
	b := sampleBatch(t)

	tests := []struct {
		name   string
		render func(*bytes.Buffer) error
	}{
		{name: "trace", render: func(w *bytes.Buffer) error { return TracePNG(w, b.Results[0], SeriesColor(0, 2)) }},
		{name: "fit", render: func(w *bytes.Buffer) error { return FitPNG(w, b.Fit) }},
		{name: "estimates", render: func(w *bytes.Buffer) error { return EstimatesPNG(w, b.Estimates) }},
		{name: "single estimate", render: func(w *bytes.Buffer) error { return EstimatesPNG(w, b.Estimates[:1]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.render(&buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "not a PNG")
		})
	}

	assert.Error(t, EstimatesPNG(&bytes.Buffer{}, nil))
}

func TestWritePNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")

	paths, err := WritePNGs(dir, sampleBatch(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "CB_LSV_C01_005mVmin.png"),
		filepath.Join(dir, "CB_LSV_C01_020mVmin.png"),
		filepath.Join(dir, "tafel_fit.png"),
		filepath.Join(dir, "half_peak_width.png"),
	}, paths)
	for _, p := range paths {
		st, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, st.Size())
	}
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, sampleBatch(t)))

	out := buf.String()
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "CB_LSV_C01_005mVmin.txt")
	assert.Contains(t, out, "Tafel fit")
}

func TestSeriesColor(t *testing.T) {
	assert.Equal(t, blues[0], seriesHex(0, 4))
	assert.Equal(t, blues[len(blues)-1], seriesHex(3, 4))
	assert.Equal(t, blues[len(blues)-1], seriesHex(0, 1))
}
