package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/lsv/pkg/client"
)

func NewStatusCommand() *cobra.Command {
	var (
		addr       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Print the report of a running lsv server",
		GroupID: gAnalysis,
		Long: `Print the report of a dataset served by 'lsv serve'.

The server analyzed the dataset at startup, so the values reflect the data and
config files as they were then.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := client.NewClient(addr)

			v, err := c.GetVersion()
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"addr":    addr,
				"version": v,
			}).Debug("connected to lsv server")

			b, err := c.GetBatch()
			if err != nil {
				return err
			}

			if jsonOutput {
				return printReportJSON(cmd, b)
			}
			printReport(cmd, b)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", defaultServeAddr, "server address")
	f.BoolVar(&jsonOutput, "json", false, "print results as JSON")

	return cmd
}
