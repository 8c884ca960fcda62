package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/server"
	"github.com/charlie0129/lsv/pkg/version"
)

const defaultServeAddr = "127.0.0.1:8080"

func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve [dir]",
		Short:   "Analyze a dataset and serve the report over HTTP",
		GroupID: gAnalysis,
		Long: `Analyze a dataset and serve the interactive report over HTTP.

The report is at /, the results as JSON at /api/batch. The dataset is analyzed
once at startup; restart to pick up changes.`,
		RunE: func(_ *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("lsv server starting")

			b, err := runAnalysis(dir)
			if err != nil {
				return err
			}

			srv, err := server.New(b)
			if err != nil {
				return err
			}
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")

	return cmd
}
