package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/lsv"
)

func NewFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "files [dir]",
		Short:   "Show which files of a dataset will be analyzed",
		GroupID: gDataset,
		Long: `Show which files of a dataset will be analyzed, in analysis order.

Files are sorted by name in byte order. Files named in 'exclude' are skipped,
and with 'dropLast' (the default) so is the last file in order, which is the
reference scan in exports from the instrument.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}

			a, err := newAnalyzer(dir)
			if err != nil {
				return err
			}
			sel, err := a.Select(dir)
			if err != nil {
				return err
			}

			p := a.Params()
			cmd.Println(bold("Analyzed:"))
			if len(sel.Kept) == 0 {
				cmd.Println("  (none)")
			}
			for i, name := range sel.Kept {
				speed, err := lsv.SweepSpeed(name)
				if err != nil {
					speed = color.RedString("unknown")
				} else {
					speed += " mV/min"
				}

				baseline := color.RedString("missing")
				if ep, ok := p.Endpoints[name]; ok {
					baseline = bold("%.2f V - %.2f V", ep.Start, ep.End)
				}

				cmd.Printf("  %d. %s\n", i+1, name)
				cmd.Printf("     Sweep speed: %s, baseline: %s", speed, baseline)
				if v, ok := p.FWHMOverrides[name]; ok {
					cmd.Printf(", E_FWHM override: %.3f V", v)
				}
				cmd.Println()
			}

			if len(sel.Dropped) > 0 {
				cmd.Println()
				cmd.Println(bold("Skipped:"))
				for _, d := range sel.Dropped {
					cmd.Printf("  %s (%s)\n", d.Name, dropReasonText(d.Reason))
				}
			}

			return nil
		},
	}
}

func dropReasonText(r lsv.DropReason) string {
	switch r {
	case lsv.DropExcluded:
		return "listed in exclude"
	case lsv.DropLast:
		return "last in order, dropLast is enabled"
	default:
		return string(r)
	}
}
