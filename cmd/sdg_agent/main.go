// Package main provides the entry point for the SDG Idea Lab API server, web
// frontend and terminal commands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/sdg-idea-lab/internal/config"
	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/logging"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sdg_agent",
	Short: "SDG Idea Lab",
	Long: "SDG Idea Lab helps students brainstorm project ideas for the UN Sustainable Development Goals " +
		"and checks their problem statements against an assessment rubric.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves and validates the layered configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger. The returned closer
// flushes the log file, if any.
func setup() (*config.Config, *logrus.Logger, io.Closer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log, closer, err := logging.New(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return cfg, log, closer, nil
}

// newModel builds the Gemini client from the configuration.
func newModel(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*llm.GeminiClient, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	return llm.NewGeminiClient(ctx, &llm.Config{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.AITimeout.Std(),
	}, cfg.APIKey, log)
}
