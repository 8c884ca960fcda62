package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/charlie0129/lsv/pkg/lsv"
)

const (
	htmlWidth  = "1000px"
	htmlHeight = "560px"
)

func initOpts(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  htmlWidth,
			Height: htmlHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
	}
}

func lineData(xs, ys []float64) []opts.LineData {
	out := make([]opts.LineData, len(xs))
	for i := range xs {
		out[i] = opts.LineData{Value: []float64{xs[i], ys[i]}}
	}
	return out
}

func scatterPoint(x, y float64) []opts.ScatterData {
	return []opts.ScatterData{{Value: []float64{x, y}, SymbolSize: 10}}
}

func traceChart(r lsv.Result, color string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(initOpts(r.File, speedLabel(r)),
		charts.WithXAxisOpts(opts.XAxis{Name: "Voltage (V)", Type: "value", Min: xMinVolts, Max: xMaxVolts}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Current (mA)", Type: "value", Scale: opts.Bool(true)}),
	)...)

	ep := r.Baseline.Endpoints
	line.AddSeries(speedLabel(r), lineData(r.Grid, r.Current),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#" + color, Width: 2}),
	)
	line.AddSeries("Baseline", lineData([]float64{ep.Start, ep.End}, []float64{r.Baseline.StartCurrent, r.Baseline.EndCurrent}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "gray", Type: "dashed"}),
	)

	markers := charts.NewScatter()
	markers.AddSeries("Peak", scatterPoint(r.PeakVoltage, r.PeakCurrent),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))
	markers.AddSeries("Baseline at peak", scatterPoint(r.PeakVoltage, r.Baseline.AtPeak),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#555555"}))
	markers.AddSeries("Half maximum (unverified)", scatterPoint(r.HalfMax.Voltage, r.HalfMax.Threshold),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}))
	line.Overlap(markers)

	return line
}

func fitChart(fit lsv.TransferFit) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(initOpts("Tafel fit", fmt.Sprintf("slope %.3f V^-1, alpha %.3f", fit.Line.Slope, fit.Alpha)),
		charts.WithXAxisOpts(opts.XAxis{Name: fmt.Sprintf("%.2f V - Ep (V)", fit.AssumedPeak), Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ln(-I)", Type: "value", Scale: opts.Bool(true)}),
	)...)
	line.AddSeries("Fit", lineData(fit.LineX, fit.LineY),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)

	points := charts.NewScatter()
	data := make([]opts.ScatterData, len(fit.X))
	for i := range fit.X {
		data[i] = opts.ScatterData{Value: []float64{fit.X[i], fit.Y[i]}, SymbolSize: 10}
	}
	points.AddSeries("Peaks", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))
	line.Overlap(points)

	return line
}

func estimatesChart(estimates []lsv.HalfPeakEstimate) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(initOpts("0.0477 / |Ep - E_FWHM|", "half-maximum voltages are unverified"),
		charts.WithXAxisOpts(opts.XAxis{Name: "File", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "alpha", Type: "value"}),
	)...)

	names := make([]string, len(estimates))
	data := make([]opts.ScatterData, len(estimates))
	for i, e := range estimates {
		names[i] = e.File
		data[i] = opts.ScatterData{Value: e.Alpha, SymbolSize: 10}
	}
	sc.SetXAxis(names)
	sc.AddSeries("Estimate", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))

	return sc
}

// RenderHTML writes every figure of a batch to one interactive page.
func RenderHTML(w io.Writer, b *lsv.Batch) error {
	page := components.NewPage()
	page.PageTitle = "LSV analysis"

	for i, r := range b.Results {
		page.AddCharts(traceChart(r, seriesHex(i, len(b.Results))))
	}
	page.AddCharts(fitChart(b.Fit))
	if len(b.Estimates) > 0 {
		page.AddCharts(estimatesChart(b.Estimates))
	}

	return page.Render(w)
}
