package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/sdg-idea-lab/internal/evaluation"
	"github.com/jonathan/sdg-idea-lab/internal/ideas"
	"github.com/jonathan/sdg-idea-lab/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes idea generation and problem statement evaluation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or config, 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := newModel(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer model.Close() //nolint:errcheck

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Ideas:     ideas.NewGenerator(model, log),
		Evaluator: evaluation.NewEvaluator(model, log),
		Logger:    log,
		AITimeout: cfg.AITimeout.Std(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
