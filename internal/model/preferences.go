package model

import "time"

// DefaultCurrency is assumed whenever a user has no stored preferences.
const DefaultCurrency = "USD"

// Preferences is the per-user settings document. Exactly one row per user;
// writes use upsert-merge semantics so unrelated fields survive.
type Preferences struct {
	UserID       string    `json:"user_id"`
	CurrencyCode string    `json:"currency_code"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
