package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/chandara/moneytrack_bot/internal/charts"
	"github.com/chandara/moneytrack_bot/internal/identity"
	"github.com/chandara/moneytrack_bot/internal/model"
	"github.com/chandara/moneytrack_bot/internal/service"
)

// chatState tracks what free-form input the chat is expected to send next.
type chatState struct {
	awaiting string
	authMode string
	txType   model.TransactionType
	category string
	catType  model.TransactionType
}

const (
	awaitingCredentials  = "credentials"
	awaitingAmount       = "amount"
	awaitingCategoryName = "category_name"
	awaitingSearch       = "search"
)

// Bot is the Telegram front end over the ledger service. It keeps one
// signed-in session per chat and a small state machine for multi-step input.
type Bot struct {
	api      *tgbotapi.BotAPI
	service  *service.LedgerService
	identity identity.Provider
	charts   *charts.Generator
	logger   zerolog.Logger

	sessions map[int64]*session
	states   map[int64]*chatState
}

func NewBot(token string, svc *service.LedgerService, provider identity.Provider, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	return &Bot{
		api:      api,
		service:  svc,
		identity: provider,
		charts:   charts.NewGenerator(),
		logger:   logger.With().Str("component", "bot").Logger(),
		sessions: make(map[int64]*session),
		states:   make(map[int64]*chatState),
	}, nil
}

// Start runs the long-polling loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.signOutAll()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(update)
		}
	}
}

// HandleUpdate dispatches a single Telegram update. It is the entry point
// for both the polling loop and the webhook handler.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

// HandleWebhook processes one raw update delivered over a webhook.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to parse webhook update: %w", err)
	}
	b.HandleUpdate(update)
	return nil
}

func (b *Bot) signOutAll() {
	for chatID, sess := range b.sessions {
		sess.teardown()
		delete(b.sessions, chatID)
	}
}

// openSession wires the live subscriptions for a freshly signed-in user and
// registers the session for the chat. Snapshots land in the session; store
// errors are reported to the chat once per collection and logged every time.
func (b *Bot) openSession(chatID int64, auth *identity.Session) *session {
	sess := newSession(auth.User, auth.AccessToken)
	ctx := context.Background()
	userID := auth.User.ID

	sess.unsubs = append(sess.unsubs,
		b.service.SubscribeTransactions(ctx, userID,
			sess.setTransactions,
			b.watchErrorHandler(chatID, "transactions", &sess.notifyTransactions)),
		b.service.SubscribeCategories(ctx, userID,
			sess.setCategories,
			b.watchErrorHandler(chatID, "categories", &sess.notifyCategories)),
		b.service.SubscribePreferences(ctx, userID,
			sess.setPreferences,
			b.watchErrorHandler(chatID, "preferences", &sess.notifyPreferences)),
	)

	b.sessions[chatID] = sess
	return sess
}

func (b *Bot) closeSession(chatID int64) {
	if sess, ok := b.sessions[chatID]; ok {
		sess.teardown()
		delete(b.sessions, chatID)
	}
	delete(b.states, chatID)
}

func (b *Bot) watchErrorHandler(chatID int64, collection string, once *sync.Once) func(error) {
	return func(err error) {
		b.logger.Error().Err(err).Str("collection", collection).Msg("live update failed")
		once.Do(func() {
			b.sendText(chatID, fmt.Sprintf("⚠️ Failed to load %s: %s", collection, err))
		})
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error().Err(err).Msg("failed to send message")
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, err error) {
	b.sendText(chatID, "❌ "+errorText(err))
}
