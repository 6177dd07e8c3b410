package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func txn(typ TransactionType, category, description string, date time.Time) Transaction {
	return Transaction{
		Type:        typ,
		Amount:      decimal.NewFromInt(10),
		Category:    category,
		Description: description,
		Date:        date,
	}
}

func TestFilterMatches(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		txn    Transaction
		want   bool
	}{
		{
			name:   "zero filter matches everything",
			filter: Filter{},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   true,
		},
		{
			name:   "search matches category case-insensitively",
			filter: Filter{Search: "fOO"},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   true,
		},
		{
			name:   "search matches description case-insensitively",
			filter: Filter{Search: "LUNCH"},
			txn:    txn(TypeExpense, "Food", "team lunch", date),
			want:   true,
		},
		{
			name:   "search misses when neither field contains the term",
			filter: Filter{Search: "rent"},
			txn:    txn(TypeExpense, "Food", "team lunch", date),
			want:   false,
		},
		{
			name:   "empty description never matches the search term",
			filter: Filter{Search: "lunch"},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   false,
		},
		{
			name:   "type predicate",
			filter: Filter{Type: TypeIncome},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   false,
		},
		{
			name:   "month predicate matches",
			filter: Filter{Month: time.March},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   true,
		},
		{
			name:   "month predicate misses",
			filter: Filter{Month: time.April},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   false,
		},
		{
			name:   "year predicate misses",
			filter: Filter{Year: 2023},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   false,
		},
		{
			name:   "predicates compose as AND",
			filter: Filter{Search: "food", Type: TypeExpense, Month: time.March, Year: 2024},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   true,
		},
		{
			name:   "one failing predicate rejects",
			filter: Filter{Search: "food", Type: TypeExpense, Month: time.March, Year: 2022},
			txn:    txn(TypeExpense, "Food", "", date),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.txn))
		})
	}
}

func TestFilterApply(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		txn(TypeIncome, "Salary", "", date),
		txn(TypeExpense, "Food", "lunch", date),
		txn(TypeExpense, "Rent", "", date.AddDate(0, 1, 0)),
	}

	t.Run("preserves input order", func(t *testing.T) {
		got := Filter{Type: TypeExpense}.Apply(transactions)
		assert.Len(t, got, 2)
		assert.Equal(t, "Food", got[0].Category)
		assert.Equal(t, "Rent", got[1].Category)
	})

	t.Run("no match yields empty list, not nil", func(t *testing.T) {
		got := Filter{Search: "does-not-exist"}.Apply(transactions)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		Filter{Type: TypeIncome}.Apply(transactions)
		assert.Len(t, transactions, 3)
		assert.Equal(t, "Salary", transactions[0].Category)
	})
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Search: "x"}.IsZero())
	assert.False(t, Filter{Month: time.May}.IsZero())
}
