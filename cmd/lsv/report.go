package main

import (
	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/lsv"
)

func printReport(cmd *cobra.Command, b *lsv.Batch) {
	cmd.Println(bold("Files:"))
	for _, r := range b.Results {
		cmd.Printf("  %s (%s mV/min)\n", bold("%s", r.File), r.Speed)
		cmd.Printf("    Peak: %s at %s\n", bold("%.4g mA", r.PeakCurrent), bold("%.3f V", r.PeakVoltage))
		cmd.Printf("    Baseline: %s (endpoints %.2f V, %.2f V)\n",
			bold("%.4g mA", r.Baseline.AtPeak), r.Baseline.Endpoints.Start, r.Baseline.Endpoints.End)
		cmd.Printf("    Corrected peak: %s\n", bold("%.4g mA", r.CorrectedPeakCurrent()))
		cmd.Printf("    Half maximum: %s %s\n", bold("%.3f V", r.HalfMax.Voltage), warn("(unverified)"))
	}
	for _, d := range b.Selection.Dropped {
		cmd.Printf("  %s skipped (%s)\n", d.Name, d.Reason)
	}
	cmd.Println()

	fit := b.Fit
	cmd.Println(bold("Tafel fit:"))
	cmd.Printf("  ln(-I) = %.4f * (%.2f V - Ep) + %.4f\n", fit.Line.Slope, fit.AssumedPeak, fit.Line.Intercept)
	cmd.Printf("  f = F/RT: %.3f V^-1\n", fit.F)
	cmd.Printf("  Transfer coefficient: %s\n", bold("alpha = %.4f", fit.Alpha))
	cmd.Println()

	cmd.Println(bold("Half-peak-width estimates:"), warn("(0.0477 V / |Ep - E_FWHM|, not correlated with the fit)"))
	for _, e := range b.Estimates {
		source := "computed"
		if e.Overridden {
			source = "configured"
		}
		cmd.Printf("  %s: %s (E_FWHM %.3f V, %s)\n", e.File, bold("alpha = %.4f", e.Alpha), e.FWHMVoltage, source)
	}
}
