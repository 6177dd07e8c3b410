package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chandara/moneytrack_bot/internal/model"
)

// Totals are the running dashboard numbers, recomputed from scratch on every
// snapshot. Set sizes are personal-finance scale, so correctness wins over
// incremental bookkeeping.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// CalcTotals sums the full transaction set. The input order does not matter.
func CalcTotals(transactions []model.Transaction) Totals {
	totals := Totals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case model.TypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	return totals
}

// SortByDateDesc orders transactions newest first, in place. The sort is
// stable so store-delivery order breaks ties.
func SortByDateDesc(transactions []model.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}

// AvailableYears returns the distinct calendar years present in the set,
// newest first. Empty input yields an empty list.
func AvailableYears(transactions []model.Transaction) []int {
	seen := make(map[int]struct{}, len(transactions))
	years := make([]int, 0)
	for _, t := range transactions {
		year := t.Date.Year()
		if _, ok := seen[year]; ok {
			continue
		}
		seen[year] = struct{}{}
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
