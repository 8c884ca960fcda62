package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/lsv/pkg/client"
	"github.com/charlie0129/lsv/pkg/lsv"
)

var (
	logLevel   = "info"
	configPath = ""
)

var (
	gAnalysis     = "Analysis:"
	gDataset      = "Dataset:"
	commandGroups = []string{
		gAnalysis,
		gDataset,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, lsv.ErrNoEndpoints):
		fmt.Fprintln(os.Stderr, "\nError: a data file has no baseline endpoints")
		fmt.Fprintln(os.Stderr, "  - Run 'lsv init' to write a dataset config, then edit the baseline of each file")
		fmt.Fprintln(os.Stderr, "  - Or add the file to 'exclude' in the dataset config")
	case errors.Is(err, lsv.ErrMalformedRow), errors.Is(err, lsv.ErrEmptyTrace):
		fmt.Fprintln(os.Stderr, "\nError: a data file could not be read")
		fmt.Fprintln(os.Stderr, "  - Files need one header line followed by tab-separated cycle, time, voltage and current columns")
		fmt.Fprintln(os.Stderr, "  - Check the selection with 'lsv files'")
	case errors.Is(err, lsv.ErrNoPeak), errors.Is(err, lsv.ErrNonNegativeCurrent):
		fmt.Fprintln(os.Stderr, "\nError: no usable reduction peak")
		fmt.Fprintln(os.Stderr, "  - Check 'peakSearchMin' and the baseline endpoints in the dataset config")
	case errors.Is(err, client.ErrServerNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: no lsv server is listening on that address")
		fmt.Fprintln(os.Stderr, "  - Start one with 'lsv serve <dir>'")
		fmt.Fprintln(os.Stderr, "  - Or pass the address it listens on with --addr")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsv",
		Short: "lsv extracts kinetic parameters from linear scan voltammetry exports",
		Long: `lsv extracts kinetic parameters from linear scan voltammetry exports.

For every data file in a dataset directory it finds the reduction peak, the
background current under it and the half-maximum voltage, then fits ln(-I)
against the overpotential to estimate the transfer coefficient alpha.

Per-dataset settings (baseline endpoints, voltage window, temperature) live in
lsv.yaml next to the data. Run 'lsv init' to create one.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "dataset config file path (default <dir>/lsv.yaml)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewAnalyzeCommand(),
		NewServeCommand(),
		NewStatusCommand(),
		NewFilesCommand(),
		NewInitCommand(),
	)

	return cmd
}
