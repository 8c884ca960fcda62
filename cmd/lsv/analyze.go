package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/lsv"
	"github.com/charlie0129/lsv/pkg/plot"
)

func NewAnalyzeCommand() *cobra.Command {
	var (
		jsonOutput bool
		plotDir    string
		htmlPath   string
	)

	cmd := &cobra.Command{
		Use:     "analyze [dir]",
		Short:   "Analyze every data file of a dataset",
		GroupID: gAnalysis,
		Long: `Analyze every data file of a dataset directory (default: current directory).

Prints peak, baseline and half-maximum values per file, the Tafel fit and the
transfer coefficient. Use --plot-dir to write PNG figures and --html to write an
interactive page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}

			b, err := runAnalysis(dir)
			if err != nil {
				return err
			}

			if plotDir != "" {
				paths, err := plot.WritePNGs(plotDir, b)
				if err != nil {
					return fmt.Errorf("failed to write figures: %w", err)
				}
				logrus.Infof("wrote %d figures to %s", len(paths), plotDir)
			}

			if htmlPath != "" {
				if err := writeHTML(htmlPath, b); err != nil {
					return err
				}
				logrus.Infof("wrote interactive report to %s", htmlPath)
			}

			if jsonOutput {
				return printReportJSON(cmd, b)
			}
			printReport(cmd, b)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	f.StringVar(&plotDir, "plot-dir", "", "write PNG figures to this directory")
	f.StringVar(&htmlPath, "html", "", "write an interactive HTML report to this file")

	return cmd
}

func runAnalysis(dir string) (*lsv.Batch, error) {
	a, err := newAnalyzer(dir)
	if err != nil {
		return nil, err
	}

	b, err := a.AnalyzeDir(dir)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return b, nil
}

func writeHTML(path string, b *lsv.Batch) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", path)
		}
	}(fp)

	if err := plot.RenderHTML(fp, b); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
