package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/chandara/moneytrack_bot/internal/bot"
	"github.com/chandara/moneytrack_bot/internal/config"
	"github.com/chandara/moneytrack_bot/internal/identity"
	"github.com/chandara/moneytrack_bot/internal/repository"
	"github.com/chandara/moneytrack_bot/internal/service"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create repository")
	}

	provider, err := identity.NewGoTrue(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create identity provider")
	}

	ledger := service.NewLedgerService(repo, cfg.WatchInterval, logger)

	b, err := bot.NewBot(cfg.TelegramToken, ledger, provider, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("bot stopped")
	}
	logger.Info().Msg("shutdown complete")
}
