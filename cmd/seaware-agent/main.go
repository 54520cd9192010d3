package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nbenliogludev/seaware-booking-agent/internal/cache"
	"github.com/nbenliogludev/seaware-booking-agent/internal/config"
	"github.com/nbenliogludev/seaware-booking-agent/internal/pipeline"
	"github.com/nbenliogludev/seaware-booking-agent/internal/prompt"
	"github.com/nbenliogludev/seaware-booking-agent/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seaware-agent:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "seaware-agent",
		Short:         "Render Seaware booking scripts for the browser agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
			return nil
		},
	}
	root.AddCommand(newRenderCmd(a), newHandoffCmd(a), newServeCmd(a))
	return root
}

// newService builds a PromptService. With cached set, Redis is used when
// configured and reachable, otherwise an in-process cache.
func (a *app) newService(ctx context.Context, cached bool) (*service.PromptService, func() error, error) {
	r, err := prompt.NewRenderer(a.rendererOptions()...)
	if err != nil {
		return nil, nil, err
	}
	p := pipeline.New(r)
	noop := func() error { return nil }

	if !cached {
		return service.NewPromptService(p, nil, a.log), noop, nil
	}
	if addr := a.cfg.RedisAddr(); addr != "" {
		rc, err := cache.DialRedis(ctx, addr, a.cfg.CacheTTL)
		if err == nil {
			a.log.Info("prompt cache: redis", "addr", addr, "ttl", a.cfg.CacheTTL)
			return service.NewPromptService(p, rc, a.log), rc.Close, nil
		}
		a.log.Warn("redis unavailable, using in-memory prompt cache", "addr", addr, "err", err)
	}
	return service.NewPromptService(p, cache.NewMemory(a.cfg.CacheTTL), a.log), noop, nil
}

func (a *app) rendererOptions() []prompt.Option {
	opts := []prompt.Option{prompt.WithName(a.cfg.TemplateName)}
	if a.cfg.TemplateDir != "" {
		opts = append(opts, prompt.WithDir(a.cfg.TemplateDir))
	}
	return opts
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reservation: %w", err)
	}
	return data, nil
}
