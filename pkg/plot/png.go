package plot

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/charlie0129/lsv/pkg/lsv"
)

const (
	widthPx  = 1024
	heightPx = 640

	xMinVolts = 0
	xMaxVolts = 1.2
)

// blues runs from light to dark so that slower sweeps, which sort first, are
// drawn lighter.
var blues = []string{"9ecae1", "6baed6", "4292c6", "2171b5", "08519c", "08306b"}

func SeriesColor(i, n int) drawing.Color {
	return drawing.ColorFromHex(seriesHex(i, n))
}

func seriesHex(i, n int) string {
	if n <= 1 {
		return blues[len(blues)-1]
	}
	idx := int(math.Round(float64(i) * float64(len(blues)-1) / float64(n-1)))
	if idx >= len(blues) {
		idx = len(blues) - 1
	}
	return blues[idx]
}

// markerStyle renders points only.
func markerStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    width,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

func point(name string, x, y float64, style chart.Style) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x},
		YValues: []float64{y},
		Style:   style,
	}
}

func speedLabel(r lsv.Result) string {
	if r.Speed == "" {
		return r.File
	}
	return r.Speed + " mV/min"
}

// TracePNG draws the interpolated trace of one file with its peak, baseline
// and half-maximum markers.
func TracePNG(w io.Writer, r lsv.Result, col drawing.Color) error {
	ep := r.Baseline.Endpoints
	ch := chart.Chart{
		Title:  r.File,
		Width:  widthPx,
		Height: heightPx,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Voltage (V)",
			Range: &chart.ContinuousRange{Min: xMinVolts, Max: xMaxVolts},
		},
		YAxis: chart.YAxis{
			Name: "Current (mA)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    speedLabel(r),
				XValues: r.Grid,
				YValues: r.Current,
				Style:   lineStyle(col),
			},
			point("Peak", r.PeakVoltage, r.PeakCurrent, markerStyle(drawing.ColorBlack, 6)),
			point("Baseline at peak", r.PeakVoltage, r.Baseline.AtPeak, markerStyle(drawing.ColorFromHex("555555"), 6)),
			point("Half maximum (unverified)", r.HalfMax.Voltage, r.HalfMax.Threshold, markerStyle(drawing.ColorRed, 6)),
			chart.ContinuousSeries{
				Name:    "Baseline",
				XValues: []float64{ep.Start, ep.End},
				YValues: []float64{r.Baseline.StartCurrent, r.Baseline.EndCurrent},
				Style: chart.Style{
					StrokeColor:     chart.ColorAlternateGray,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// FitPNG draws ln(-I) against the overpotential with the fitted line.
func FitPNG(w io.Writer, fit lsv.TransferFit) error {
	ch := chart.Chart{
		Title:  fmt.Sprintf("Tafel fit: slope %.3f V^-1, alpha %.3f", fit.Line.Slope, fit.Alpha),
		Width:  widthPx,
		Height: heightPx,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: fmt.Sprintf("%.2f V - Ep (V)", fit.AssumedPeak)},
		YAxis: chart.YAxis{Name: "ln(-I)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Peaks",
				XValues: fit.X,
				YValues: fit.Y,
				Style:   markerStyle(drawing.ColorBlack, 6),
			},
			chart.ContinuousSeries{
				Name:    "Fit",
				XValues: fit.LineX,
				YValues: fit.LineY,
				Style:   lineStyle(chart.ColorBlue),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// EstimatesPNG draws the half-peak-width alpha estimate of each file
// against its position in the batch.
func EstimatesPNG(w io.Writer, estimates []lsv.HalfPeakEstimate) error {
	if len(estimates) == 0 {
		return pkgerrors.New("no estimates to plot")
	}

	xs := make([]float64, len(estimates))
	ys := make([]float64, len(estimates))
	top := 0.0
	for i, e := range estimates {
		xs[i] = float64(i)
		ys[i] = e.Alpha
		top = math.Max(top, e.Alpha)
	}

	// explicit ranges, go-chart rejects zero-width ranges
	ch := chart.Chart{
		Title:  "0.0477 / |Ep - E_FWHM|",
		Width:  widthPx,
		Height: heightPx,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "File",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(estimates)) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "alpha",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.2},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Estimate",
				XValues: xs,
				YValues: ys,
				Style:   markerStyle(drawing.ColorBlack, 6),
			},
		},
	}

	return ch.Render(chart.PNG, w)
}

// WritePNGs renders all figures of a batch into dir and returns the written
// paths.
func WritePNGs(dir string, b *lsv.Batch) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to create plot directory %s", dir)
	}

	var written []string
	write := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		fp, err := os.Create(path)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to create %s", path)
		}
		defer func(fp *os.File) {
			err := fp.Close()
			if err != nil {
				logrus.Warnf("failed to close file %s", path)
			}
		}(fp)

		if err := render(fp); err != nil {
			return pkgerrors.Wrapf(err, "failed to render %s", path)
		}
		written = append(written, path)
		logrus.WithField("path", path).Debug("figure written")
		return nil
	}

	for i, r := range b.Results {
		r := r
		col := SeriesColor(i, len(b.Results))
		name := strings.TrimSuffix(r.File, filepath.Ext(r.File)) + ".png"
		if err := write(name, func(w io.Writer) error { return TracePNG(w, r, col) }); err != nil {
			return written, err
		}
	}

	if err := write("tafel_fit.png", func(w io.Writer) error { return FitPNG(w, b.Fit) }); err != nil {
		return written, err
	}
	if err := write("half_peak_width.png", func(w io.Writer) error { return EstimatesPNG(w, b.Estimates) }); err != nil {
		return written, err
	}

	return written, nil
}
