package model

import (
	"strings"
	"time"
)

// Filter is the ephemeral dashboard filter state. Zero values mean "all":
// predicates are only applied for fields that are set, and the set predicates
// compose as a logical AND.
type Filter struct {
	Search string
	Type   TransactionType // "" matches both types
	Month  time.Month      // 0 matches every month
	Year   int             // 0 matches every year
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Type == "" && f.Month == 0 && f.Year == 0
}

// Matches reports whether t passes every set predicate. The search term is a
// case-insensitive substring match against the category name or the
// description; a transaction without a description cannot match on that field.
func (f Filter) Matches(t Transaction) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		inCategory := strings.Contains(strings.ToLower(t.Category), term)
		inDescription := t.Description != "" && strings.Contains(strings.ToLower(t.Description), term)
		if !inCategory && !inDescription {
			return false
		}
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Month != 0 && t.Date.Month() != f.Month {
		return false
	}
	if f.Year != 0 && t.Date.Year() != f.Year {
		return false
	}
	return true
}

// Apply returns the transactions matching the filter, preserving input order.
// The result is an empty list, never nil and never an error, when nothing
// matches.
func (f Filter) Apply(transactions []Transaction) []Transaction {
	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
