package main

import (
	"os"

	"github.com/jonathan/sdg-idea-lab/internal/observability"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/spf13/cobra"
)

var sdgsCmd = &cobra.Command{
	Use:   "sdgs",
	Short: "List the 17 Sustainable Development Goals",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		observability.NewPrinter(os.Stdout).PrintGoals(sdg.All())
	},
}

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Print the problem statement assessment criteria",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		observability.NewPrinter(os.Stdout).PrintCriteria()
	},
}

func init() {
	rootCmd.AddCommand(sdgsCmd)
	rootCmd.AddCommand(criteriaCmd)
}
