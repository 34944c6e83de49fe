package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/sdg-idea-lab/internal/evaluation"
	"github.com/jonathan/sdg-idea-lab/internal/ideas"
	"github.com/jonathan/sdg-idea-lab/internal/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	webPort   int
	webAPIURL string
	webDirect bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the interactive web frontend",
	Long: `Start the browser frontend. By default it talks to the API server at --api-url;
with --direct it calls the model in-process and needs no separate server.`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 0, "Port to listen on (default from WEB_PORT or config, 8501)")
	webCmd.Flags().StringVar(&webAPIURL, "api-url", "", "Base URL of the API server (default from API_BASE_URL or config)")
	webCmd.Flags().BoolVar(&webDirect, "direct", false, "Call the model in-process instead of through the API server")
	webCmd.MarkFlagsMutuallyExclusive("api-url", "direct")
	rootCmd.AddCommand(webCmd)
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, log, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	if webPort != 0 {
		cfg.WebPort = webPort
	}
	if webAPIURL != "" {
		cfg.APIBaseURL = webAPIURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend web.Backend
	if webDirect {
		model, err := newModel(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer model.Close() //nolint:errcheck
		backend = web.NewDirectBackend(ideas.NewGenerator(model, log), evaluation.NewEvaluator(model, log))
	} else {
		// the API side enforces AI_TIMEOUT; leave it room to answer
		api, err := web.NewAPIBackend(cfg.APIBaseURL, max(web.DefaultAPITimeout, cfg.AITimeout.Std()+5*time.Second))
		if err != nil {
			return err
		}
		backend = api
	}

	frontend, err := web.NewFrontend(backend, log)
	if err != nil {
		return fmt.Errorf("failed to create frontend: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.WebPort))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.WebPort, err)
	}
	return serveFrontend(ctx, ln, frontend.Handler(), log)
}

// serveFrontend serves h on ln until ctx is done, then shuts down gracefully.
func serveFrontend(ctx context.Context, ln net.Listener, h http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", ln.Addr().String()).Info("web frontend listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down web frontend")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web frontend shutdown: %w", err)
	}
	return nil
}
