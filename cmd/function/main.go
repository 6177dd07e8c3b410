package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/chandara/moneytrack_bot/internal/bot"
	"github.com/chandara/moneytrack_bot/internal/config"
	"github.com/chandara/moneytrack_bot/internal/identity"
	"github.com/chandara/moneytrack_bot/internal/repository"
	"github.com/chandara/moneytrack_bot/internal/service"
)

// Request is the API gateway envelope around a Telegram webhook update.
type Request struct {
	Body string `json:"body"`
}

// Response is the API gateway reply.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one webhook delivery. The function runtime keeps the
// instance warm between invocations, so the bot is built once.
func Handler(ctx context.Context, request Request) (*Response, error) {
	b, err := webhookBot()
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}, nil
}

var cached *bot.Bot

func webhookBot() (*bot.Bot, error) {
	if cached != nil {
		return cached, nil
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	if err != nil {
		return nil, err
	}

	provider, err := identity.NewGoTrue(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return nil, err
	}

	ledger := service.NewLedgerService(repo, cfg.WatchInterval, logger)

	b, err := bot.NewBot(cfg.TelegramToken, ledger, provider, logger)
	if err != nil {
		return nil, err
	}
	cached = b
	return b, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}, nil
}

func main() {
	// Entry point for local builds; the function runtime calls Handler.
}
