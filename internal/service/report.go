package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chandara/moneytrack_bot/internal/model"
)

// ReportFilter narrows the report to a calendar period. It is independent
// from the dashboard filter: both read the same transaction set but filter
// on their own state.
type ReportFilter struct {
	Year  int        // 0 = all years
	Month time.Month // 0 = all months
}

// Matches reports whether t falls in the filtered period.
func (f ReportFilter) Matches(t model.Transaction) bool {
	if f.Year != 0 && t.Date.Year() != f.Year {
		return false
	}
	if f.Month != 0 && t.Date.Month() != f.Month {
		return false
	}
	return true
}

// CategoryTotal is one ranked row of the category report.
type CategoryTotal struct {
	Name   string
	Color  model.Color
	Amount decimal.Decimal
	Share  decimal.Decimal // percent of the type total, one decimal place
	Count  int
}

// CategoryReport ranks categories by total amount within each type.
type CategoryReport struct {
	Income  []CategoryTotal
	Expense []CategoryTotal
}

var oneHundred = decimal.NewFromInt(100)

// BuildCategoryReport groups the filtered transaction set by category within
// each type. Every registry category is considered; names that appear in
// transactions but not in the registry still get an entry, so stale category
// references are never dropped. Within each type categories are ranked by
// descending amount and zero totals are excluded. Share is the percentage of
// the type total rounded to one decimal place, or 0 while the type total is
// zero.
func BuildCategoryReport(transactions []model.Transaction, registry model.CategorySet, filter ReportFilter) CategoryReport {
	type bucket struct {
		income       decimal.Decimal
		expense      decimal.Decimal
		incomeCount  int
		expenseCount int
	}

	names := make([]string, 0, len(registry.Income)+len(registry.Expense))
	buckets := make(map[string]*bucket)
	ensure := func(name string) *bucket {
		b, ok := buckets[name]
		if !ok {
			b = &bucket{income: decimal.Zero, expense: decimal.Zero}
			buckets[name] = b
			names = append(names, name)
		}
		return b
	}

	for _, c := range registry.Income {
		ensure(c.Name)
	}
	for _, c := range registry.Expense {
		ensure(c.Name)
	}

	for _, t := range transactions {
		if !filter.Matches(t) {
			continue
		}
		b := ensure(t.Category)
		switch t.Type {
		case model.TypeIncome:
			b.income = b.income.Add(t.Amount)
			b.incomeCount++
		case model.TypeExpense:
			b.expense = b.expense.Add(t.Amount)
			b.expenseCount++
		}
	}

	incomeTotal := decimal.Zero
	expenseTotal := decimal.Zero
	for _, name := range names {
		incomeTotal = incomeTotal.Add(buckets[name].income)
		expenseTotal = expenseTotal.Add(buckets[name].expense)
	}

	share := func(amount, total decimal.Decimal) decimal.Decimal {
		if total.IsZero() {
			return decimal.Zero
		}
		return amount.Div(total).Mul(oneHundred).Round(1)
	}

	var report CategoryReport
	for _, name := range names {
		b := buckets[name]
		if b.income.IsPositive() {
			report.Income = append(report.Income, CategoryTotal{
				Name:   name,
				Color:  registry.ColorFor(name, model.TypeIncome),
				Amount: b.income,
				Share:  share(b.income, incomeTotal),
				Count:  b.incomeCount,
			})
		}
		if b.expense.IsPositive() {
			report.Expense = append(report.Expense, CategoryTotal{
				Name:   name,
				Color:  registry.ColorFor(name, model.TypeExpense),
				Amount: b.expense,
				Share:  share(b.expense, expenseTotal),
				Count:  b.expenseCount,
			})
		}
	}

	sort.SliceStable(report.Income, func(i, j int) bool {
		return report.Income[i].Amount.GreaterThan(report.Income[j].Amount)
	})
	sort.SliceStable(report.Expense, func(i, j int) bool {
		return report.Expense[i].Amount.GreaterThan(report.Expense[j].Amount)
	})

	return report
}
