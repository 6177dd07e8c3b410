package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chandara/moneytrack_bot/internal/model"
)

// Categories returns the merged registry: built-ins first, then the user's
// own categories in store-delivery order.
func (s *LedgerService) Categories(ctx context.Context, userID string) (model.CategorySet, error) {
	user, err := s.repo.GetCategories(ctx, userID)
	if err != nil {
		return model.CategorySet{}, fmt.Errorf("failed to get categories: %w", err)
	}
	return model.MergeCategories(user), nil
}

// CreateCategory validates and persists a user-defined category. Names must
// be non-empty after trimming and must not collide case-insensitively with a
// built-in of the same type; a failed validation performs no write. The new
// category gets a palette color.
func (s *LedgerService) CreateCategory(ctx context.Context, userID string, typ model.TransactionType, name string) (*model.Category, error) {
	if !typ.Valid() {
		return nil, ErrInvalidType
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	if model.IsBuiltinName(name, typ) {
		return nil, ErrDuplicateCategory
	}

	category := &model.Category{
		UserID:    userID,
		Name:      name,
		Type:      typ,
		Color:     model.Palette[s.pickColor(len(model.Palette))],
		CreatedAt: time.Now().In(time.UTC),
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.refresh(userID, watchCategories)
	return category, nil
}

// DeleteCategory removes a user-defined category by ID. Built-ins carry no
// ID, so deletion is only ever invoked on user entries; an empty ID is
// rejected before the store is touched. Transactions keep their stored
// category name either way.
func (s *LedgerService) DeleteCategory(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrBuiltinCategory
	}
	if err := s.repo.DeleteCategory(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.refresh(userID, watchCategories)
	return nil
}
