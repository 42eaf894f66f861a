package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/cat-and-mouse/backend/internal/config"
	"github.com/iamasit07/cat-and-mouse/backend/internal/domain"
	"github.com/iamasit07/cat-and-mouse/backend/internal/logging"
	"github.com/iamasit07/cat-and-mouse/backend/internal/service/cleanup"
	"github.com/iamasit07/cat-and-mouse/backend/internal/service/game"
	"github.com/iamasit07/cat-and-mouse/backend/internal/transport/console"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.LoadConfig()
	config.BindFlags(pflag.CommandLine, cfg)
	pflag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(2)
	}

	if envErr != nil {
		logger.Debug("no .env file found, using environment variables")
	}
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := start(ctx, cfg, logger)
	cancel()
	logger.Sync()

	os.Exit(code)
}

func start(ctx context.Context, cfg *config.Config, logger *zap.Logger) int {
	profile := termenv.EnvColorProfile()
	if cfg.NoColor {
		profile = termenv.Ascii
	}

	renderer := console.NewRenderer(os.Stdout, profile, map[domain.PlayerID]string{
		domain.PlayerA: cfg.CatName,
		domain.PlayerB: cfg.MouseName,
	})

	manager := game.NewManager(game.ManagerOptions{
		Session: game.SessionOptions{
			Rows:      cfg.BoardRows,
			Columns:   cfg.BoardColumns,
			CatName:   cfg.CatName,
			MouseName: cfg.MouseName,
		},
		FinishedTTL: cfg.FinishedSessionTTL,
		ActiveTTL:   cfg.ActiveSessionTTL,
	}, renderer, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errg, ctx := errgroup.WithContext(ctx)

	worker := cleanup.NewWorker(manager, cfg.CleanupInterval, logger)
	errg.Go(func() error { return worker.Run(ctx) })

	host := console.NewHost(os.Stdin, renderer, manager, logger)
	errg.Go(func() error {
		// the game ending stops everything else
		defer cancel()
		return host.Run(ctx)
	})

	logger.Info("cat and mouse started",
		zap.Int("rows", cfg.BoardRows),
		zap.Int("columns", cfg.BoardColumns),
	)

	if err := errg.Wait(); err != nil {
		logger.Error("game host failed", zap.Error(err))
		return 1
	}

	logger.Info("cat and mouse exited")
	return 0
}
