package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/supabase-community/supabase-go"

	"github.com/chandara/moneytrack_bot/internal/model"
)

// SupabaseRepository persists the ledger in Supabase via PostgREST.
type SupabaseRepository struct {
	client *supabase.Client
	logger zerolog.Logger
}

func NewSupabaseRepository(url, key string, logger zerolog.Logger) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
		logger: logger.With().Str("component", "repository").Logger(),
	}, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	data, _, err := r.client.From("transactions").Insert(transaction, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// The store echoes the created row back; pick up the assigned fields.
	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) > 0 {
		transaction.ID = created[0].ID
		transaction.CreatedAt = created[0].CreatedAt
	}

	r.logger.Debug().Str("id", transaction.ID).Msg("transaction created")
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	data, _, err := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) DeleteTransaction(ctx context.Context, id string, userID string) error {
	_, _, err := r.client.From("transactions").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	data, _, err := r.client.From("categories").Insert(category, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	var created []model.Category
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created category: %w", err)
	}
	if len(created) > 0 {
		category.ID = created[0].ID
		category.CreatedAt = created[0].CreatedAt
	}

	r.logger.Debug().Str("id", category.ID).Str("name", category.Name).Msg("category created")
	return nil
}

func (r *SupabaseRepository) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	data, _, err := r.client.From("categories").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at.asc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var categories []model.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	return categories, nil
}

func (r *SupabaseRepository) DeleteCategory(ctx context.Context, id string, userID string) error {
	_, _, err := r.client.From("categories").
		Delete("", "").
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	data, _, err := r.client.From("preferences").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs []model.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if len(prefs) == 0 {
		return nil, nil
	}
	return &prefs[0], nil
}

func (r *SupabaseRepository) SetPreferences(ctx context.Context, prefs *model.Preferences) error {
	// Upsert keyed on user_id keeps exactly one row per user and preserves
	// columns the payload does not mention.
	_, _, err := r.client.From("preferences").Insert(prefs, true, "user_id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to set preferences: %w", err)
	}
	return nil
}
