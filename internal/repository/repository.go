package repository

import (
	"context"

	"github.com/chandara/moneytrack_bot/internal/model"
)

// Repository is the persistence surface the application consumes. Every
// operation is scoped to the owning user identity. Implementations must treat
// the store as the single source of truth: reads return the full current set,
// not diffs.
type Repository interface {
	// Transactions
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string, userID string) error

	// Categories (user-defined only; built-ins never touch the store)
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id string, userID string) error

	// Preferences (singleton per user, upsert-merge)
	GetPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	SetPreferences(ctx context.Context, prefs *model.Preferences) error
}
