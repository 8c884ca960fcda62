package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/config"
	"github.com/charlie0129/lsv/pkg/lsv"
)

func NewInitCommand() *cobra.Command {
	var (
		force    bool
		withFWHM bool
	)

	cmd := &cobra.Command{
		Use:     "init [dir]",
		Short:   "Write a dataset config for the files of a directory",
		GroupID: gDataset,
		Long: `Write a dataset config (lsv.yaml) listing every file that will be analyzed.

Baseline endpoints are seeded by position from the values read by hand for the
first dataset. They are placeholders: read the endpoints off each trace and
edit the config before trusting any result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}

			path := resolveConfigPath(dir)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			p := lsv.DefaultParams()
			sel, err := lsv.SelectFiles(dir, p.Pattern, p.Exclude, p.DropLast)
			if err != nil {
				return err
			}
			if len(sel.Kept) == 0 {
				return fmt.Errorf("no files matching %q in %s", p.Pattern, dir)
			}

			conf := config.NewFileFromConfig(nil, path)
			conf.SetDropLast(p.DropLast)
			for _, name := range config.Seed(conf, sel.Kept, withFWHM) {
				logrus.Warnf("no seed endpoints for %s, add a baseline for it by hand", name)
			}

			if err := conf.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			logrus.Infof("wrote %s with %d files", path, len(sel.Kept))
			for _, d := range sel.Dropped {
				logrus.Infof("%s is not listed (%s)", d.Name, dropReasonText(d.Reason))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&force, "force", false, "overwrite an existing config")
	f.BoolVar(&withFWHM, "with-fwhm", false, "also seed the hand-read half-maximum voltages")

	return cmd
}
