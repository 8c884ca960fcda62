package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/lsv"
)

type reportJSON struct {
	Files     []reportFileJSON       `json:"files"`
	Dropped   []lsv.DroppedFile      `json:"dropped"`
	Fit       reportFitJSON          `json:"fit"`
	Estimates []lsv.HalfPeakEstimate `json:"halfPeakWidthEstimates"`
}

type reportFileJSON struct {
	File                 string        `json:"file"`
	SpeedMVPerMin        string        `json:"speedMVPerMin"`
	PeakVoltage          float64       `json:"peakVoltage"`
	PeakCurrent          float64       `json:"peakCurrent"`
	BaselineCurrent      float64       `json:"baselineCurrent"`
	CorrectedPeakCurrent float64       `json:"correctedPeakCurrent"`
	BaselineEndpoints    lsv.Endpoints `json:"baselineEndpoints"`
	FWHMVoltage          float64       `json:"fwhmVoltage"`
	// FWHMVerified is always false, the half-maximum search is unverified.
	FWHMVerified bool `json:"fwhmVerified"`
}

type reportFitJSON struct {
	AssumedPeak float64   `json:"assumedPeak"`
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
	F           float64   `json:"f"`
	Alpha       float64   `json:"alpha"`
	X           []float64 `json:"x"`
	Y           []float64 `json:"y"`
}

func newReportJSON(b *lsv.Batch) reportJSON {
	out := reportJSON{
		Files:     make([]reportFileJSON, 0, len(b.Results)),
		Dropped:   b.Selection.Dropped,
		Estimates: b.Estimates,
		Fit: reportFitJSON{
			AssumedPeak: b.Fit.AssumedPeak,
			Slope:       b.Fit.Line.Slope,
			Intercept:   b.Fit.Line.Intercept,
			F:           b.Fit.F,
			Alpha:       b.Fit.Alpha,
			X:           b.Fit.X,
			Y:           b.Fit.Y,
		},
	}
	for _, r := range b.Results {
		out.Files = append(out.Files, reportFileJSON{
			File:                 r.File,
			SpeedMVPerMin:        r.Speed,
			PeakVoltage:          r.PeakVoltage,
			PeakCurrent:          r.PeakCurrent,
			BaselineCurrent:      r.Baseline.AtPeak,
			CorrectedPeakCurrent: r.CorrectedPeakCurrent(),
			BaselineEndpoints:    r.Baseline.Endpoints,
			FWHMVoltage:          r.HalfMax.Voltage,
			FWHMVerified:         r.HalfMax.Verified,
		})
	}
	return out
}

func printReportJSON(cmd *cobra.Command, b *lsv.Batch) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(newReportJSON(b))
}
