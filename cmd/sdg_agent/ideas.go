package main

import (
	"encoding/json"
	"os"

	"github.com/jonathan/sdg-idea-lab/internal/ideas"
	"github.com/jonathan/sdg-idea-lab/internal/observability"
	"github.com/spf13/cobra"
)

var (
	ideasSDGs []string
	ideasJSON bool
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Generate project ideas for one or two SDGs",
	Long: `Generate project ideas for the selected goals. Goals may be given as "SDG13",
"13" or "Climate Action"; repeat --sdg to select a second goal.`,
	Example: `  sdg_agent ideas --sdg SDG13 --sdg "Life on Land"`,
	RunE:    runIdeas,
}

func init() {
	ideasCmd.Flags().StringArrayVar(&ideasSDGs, "sdg", nil, "Goal to target (repeatable, at most 2)")
	ideasCmd.Flags().BoolVar(&ideasJSON, "json", false, "Print the API response JSON instead of a summary")
	_ = ideasCmd.MarkFlagRequired("sdg")
	rootCmd.AddCommand(ideasCmd)
}

func runIdeas(cmd *cobra.Command, _ []string) error {
	cfg, log, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	model, err := newModel(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer model.Close() //nolint:errcheck

	resp, err := ideas.NewGenerator(model, log).Generate(cmd.Context(), ideasSDGs)
	if err != nil {
		return err
	}

	if ideasJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	observability.NewPrinter(os.Stdout).PrintIdeas(resp)
	return nil
}
