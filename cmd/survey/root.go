package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "survey",
		Short: "Household size histograms around the vaccine rollout",
		Long: `survey loads the COVID-19 household survey extract, drops rows whose
household_children is a non-answer, splits the rest at the vaccine rollout
cutoff and renders household_children and household_size histograms for
each side.

Examples:
  survey histograms
  survey histograms --data survey.csv --out plots --xlsx plots/histograms.xlsx
  survey histograms --cutoff 2021-01-01 --metrics-file survey.prom`,
		SilenceUsage: true,
	}

	root.AddCommand(newHistogramsCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "survey version %s\n", version)
		},
	})
	return root
}
