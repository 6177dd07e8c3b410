// Package service holds the ledger core: validation and write paths, the
// pure aggregation functions, the category registry and the category report.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chandara/moneytrack_bot/internal/currency"
	"github.com/chandara/moneytrack_bot/internal/model"
	"github.com/chandara/moneytrack_bot/internal/watch"
)

// Validation errors are detected locally, before any store interaction.
var (
	ErrInvalidType         = errors.New("transaction type must be income or expense")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrMissingCategory     = errors.New("category is required")
	ErrEmptyCategoryName   = errors.New("category name is empty")
	ErrDuplicateCategory   = errors.New("category name collides with a built-in category")
	ErrBuiltinCategory     = errors.New("built-in categories cannot be deleted")
	ErrUnknownCurrency     = errors.New("unknown currency code")
	ErrUnknownConfirmation = errors.New("no pending deletion for this token")
)

// Repository is the store surface the ledger needs.
type Repository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string, userID string) error
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id string, userID string) error
	GetPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	SetPreferences(ctx context.Context, prefs *model.Preferences) error
}

const (
	watchTransactions = "transactions"
	watchCategories   = "categories"
	watchPreferences  = "preferences"
)

type watchKey struct {
	userID string
	kind   string
}

type refresher interface {
	Refresh()
}

type pendingDelete struct {
	userID        string
	transactionID string
}

// LedgerService wires the validation and write paths to the store and owns
// the live snapshot subscriptions. All derived data (totals, filtered lists,
// reports) is computed by pure functions from the latest snapshots.
type LedgerService struct {
	repo     Repository
	interval time.Duration
	logger   zerolog.Logger

	// pickColor selects a palette index for a new category. Swappable so
	// tests can pin the assignment.
	pickColor func(n int) int

	mu       sync.Mutex
	pending  map[string]pendingDelete
	watchers map[watchKey][]refresher
}

func NewLedgerService(repo Repository, interval time.Duration, logger zerolog.Logger) *LedgerService {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &LedgerService{
		repo:      repo,
		interval:  interval,
		logger:    logger.With().Str("component", "service").Logger(),
		pickColor: rand.IntN,
		pending:   make(map[string]pendingDelete),
		watchers:  make(map[watchKey][]refresher),
	}
}

// TransactionInput is the user-submitted form for a new ledger entry.
type TransactionInput struct {
	Type        model.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time // zero means "now"
}

// AddTransaction validates the input and persists a new entry. On a
// validation failure nothing is written. The in-memory state is not mutated
// here either way: the next subscription push delivers the updated set.
func (s *LedgerService) AddTransaction(ctx context.Context, userID string, input TransactionInput) (*model.Transaction, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidType
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, ErrMissingCategory
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &model.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date.In(time.UTC),
		CreatedAt:   time.Now().In(time.UTC),
	}
	transaction.GenerateID()

	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.refresh(userID, watchTransactions)
	return transaction, nil
}

// Transactions returns the user's full transaction set, newest first.
func (s *LedgerService) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	SortByDateDesc(transactions)
	return transactions, nil
}

// RequestDeleteTransaction records the intent to delete an entry and returns
// a confirmation token. The store is not touched until the token is
// confirmed; an aborted confirmation leaves the set unchanged.
func (s *LedgerService) RequestDeleteTransaction(userID, transactionID string) string {
	token := uuid.New().String()

	s.mu.Lock()
	s.pending[token] = pendingDelete{userID: userID, transactionID: transactionID}
	s.mu.Unlock()

	return token
}

// ConfirmDeleteTransaction executes a previously requested deletion.
func (s *LedgerService) ConfirmDeleteTransaction(ctx context.Context, token string) error {
	s.mu.Lock()
	pending, ok := s.pending[token]
	if ok {
		delete(s.pending, token)
	}
	s.mu.Unlock()

	if !ok {
		return ErrUnknownConfirmation
	}

	if err := s.repo.DeleteTransaction(ctx, pending.transactionID, pending.userID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.refresh(pending.userID, watchTransactions)
	return nil
}

// CancelDeleteTransaction discards a pending deletion without touching the
// store.
func (s *LedgerService) CancelDeleteTransaction(token string) {
	s.mu.Lock()
	delete(s.pending, token)
	s.mu.Unlock()
}

// Preferences returns the user's settings, defaulting to USD when no
// preferences document exists yet.
func (s *LedgerService) Preferences(ctx context.Context, userID string) (model.Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}
	if prefs == nil {
		return model.Preferences{UserID: userID, CurrencyCode: model.DefaultCurrency}, nil
	}
	if prefs.CurrencyCode == "" {
		prefs.CurrencyCode = model.DefaultCurrency
	}
	return *prefs, nil
}

// SetCurrency stores the display currency with merge semantics: fields the
// payload does not mention survive the write.
func (s *LedgerService) SetCurrency(ctx context.Context, userID, code string) error {
	if !currency.Known(code) {
		return ErrUnknownCurrency
	}

	prefs := &model.Preferences{
		UserID:       userID,
		CurrencyCode: code,
		UpdatedAt:    time.Now().In(time.UTC),
	}
	if err := s.repo.SetPreferences(ctx, prefs); err != nil {
		return fmt.Errorf("failed to set preferences: %w", err)
	}

	s.refresh(userID, watchPreferences)
	return nil
}

func (s *LedgerService) addWatcher(key watchKey, w refresher) {
	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], w)
	s.mu.Unlock()
}

func (s *LedgerService) removeWatcher(key watchKey, w refresher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.watchers[key]
	for i, candidate := range active {
		if candidate == w {
			s.watchers[key] = append(active[:i], active[i+1:]...)
			break
		}
	}
	if len(s.watchers[key]) == 0 {
		delete(s.watchers, key)
	}
}

// refresh nudges every live subscription on the given collection so the
// writer observes its own change before the next poll tick.
func (s *LedgerService) refresh(userID, kind string) {
	s.mu.Lock()
	active := append([]refresher(nil), s.watchers[watchKey{userID: userID, kind: kind}]...)
	s.mu.Unlock()

	for _, w := range active {
		w.Refresh()
	}
}

// SubscribeTransactions delivers the full, date-descending transaction set on
// every observed change. The returned func tears the subscription down; it
// must be called when the owning session ends.
func (s *LedgerService) SubscribeTransactions(ctx context.Context, userID string, onSnapshot func([]model.Transaction), onError func(error)) (unsubscribe func()) {
	w := watch.New(func(ctx context.Context) ([]model.Transaction, error) {
		return s.Transactions(ctx, userID)
	}, s.interval, s.logger)

	return runWatcher(s, ctx, watchKey{userID: userID, kind: watchTransactions}, w, onSnapshot, onError)
}

// SubscribeCategories delivers the merged registry (built-ins first, then the
// user's categories in store-delivery order) on every observed change.
func (s *LedgerService) SubscribeCategories(ctx context.Context, userID string, onSnapshot func(model.CategorySet), onError func(error)) (unsubscribe func()) {
	w := watch.New(func(ctx context.Context) (model.CategorySet, error) {
		return s.Categories(ctx, userID)
	}, s.interval, s.logger)

	return runWatcher(s, ctx, watchKey{userID: userID, kind: watchCategories}, w, onSnapshot, onError)
}

// SubscribePreferences delivers the settings document on every observed
// change, substituting the defaults while none exists.
func (s *LedgerService) SubscribePreferences(ctx context.Context, userID string, onSnapshot func(model.Preferences), onError func(error)) (unsubscribe func()) {
	w := watch.New(func(ctx context.Context) (model.Preferences, error) {
		return s.Preferences(ctx, userID)
	}, s.interval, s.logger)

	return runWatcher(s, ctx, watchKey{userID: userID, kind: watchPreferences}, w, onSnapshot, onError)
}

// runWatcher starts a watcher goroutine, registers it for write nudges and
// returns the teardown func. Cancellation stops deliveries; there is no
// replay afterwards.
func runWatcher[T any](s *LedgerService, ctx context.Context, key watchKey, w *watch.Watcher[T], onSnapshot func(T), onError func(error)) func() {
	ctx, cancel := context.WithCancel(ctx)
	s.addWatcher(key, w)
	go w.Run(ctx, onSnapshot, onError)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			s.removeWatcher(key, w)
		})
	}
}
