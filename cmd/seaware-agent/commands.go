package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nbenliogludev/seaware-booking-agent/internal/agent"
	"github.com/nbenliogludev/seaware-booking-agent/internal/handler"
)

func newRenderCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the booking script for a reservation document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			svc, closeCache, err := a.newService(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeCache()

			out, err := svc.Render(cmd.Context(), data)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out.Prompt)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "reservation JSON file (default stdin)")
	return cmd
}

func newHandoffCmd(a *app) *cobra.Command {
	var (
		file     string
		startURL string
	)
	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Print the agent task envelope for a reservation document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			svc, closeCache, err := a.newService(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeCache()

			out, err := svc.Render(cmd.Context(), data)
			if err != nil {
				return err
			}
			if startURL == "" {
				startURL = a.cfg.StartURL
			}
			task := agent.NewTask(out.Prompt, startURL, nil)
			if err := task.Validate(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(task)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "reservation JSON file (default stdin)")
	cmd.Flags().StringVar(&startURL, "start-url", "", "reservation system URL (default SEAWARE_START_URL)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the prompt API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: a.cfg.LogLevel}))
			a.log = log

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, closeCache, err := a.newService(ctx, true)
			if err != nil {
				return err
			}
			defer closeCache()

			if a.cfg.JWTSecret == "" {
				log.Warn("INGRESS_JWT_SECRET not set, /prompts is unauthenticated")
			}
			router := handler.NewRouter(handler.NewPromptHandler(svc, log), handler.RouterConfig{
				JWTSecret: a.cfg.JWTSecret,
				RateRPS:   a.cfg.RateRPS,
				RateBurst: a.cfg.RateBurst,
				Logger:    log,
			})

			srv := &http.Server{
				Addr:         net.JoinHostPort("", a.cfg.Port),
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}
			return run(ctx, srv, log)
		},
	}
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
