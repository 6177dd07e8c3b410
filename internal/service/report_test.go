package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandara/moneytrack_bot/internal/model"
)

func reportEntry(typ model.TransactionType, category, amount string, date time.Time) model.Transaction {
	return model.Transaction{
		Type:     typ,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
	}
}

func TestBuildCategoryReport(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	registry := model.MergeCategories([]model.Category{
		{ID: "c1", Name: "Groceries", Type: model.TypeExpense, Color: model.ColorPurple},
	})

	transactions := []model.Transaction{
		reportEntry(model.TypeExpense, "Groceries", "75", date),
		reportEntry(model.TypeExpense, "Groceries", "25", date),
		reportEntry(model.TypeExpense, "អាហារ (Food)", "300", date),
		reportEntry(model.TypeIncome, "ប្រាក់ខែ (Salary)", "1000", date),
	}

	report := BuildCategoryReport(transactions, registry, ReportFilter{})

	require.Len(t, report.Expense, 2)
	// Ranked by descending amount.
	assert.Equal(t, "អាហារ (Food)", report.Expense[0].Name)
	assert.True(t, report.Expense[0].Amount.Equal(decimal.NewFromInt(300)))
	assert.True(t, report.Expense[0].Share.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, 1, report.Expense[0].Count)

	assert.Equal(t, "Groceries", report.Expense[1].Name)
	assert.True(t, report.Expense[1].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Expense[1].Share.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 2, report.Expense[1].Count)
	assert.Equal(t, model.ColorPurple, report.Expense[1].Color)

	require.Len(t, report.Income, 1)
	assert.True(t, report.Income[0].Share.Equal(decimal.NewFromInt(100)))
}

func TestBuildCategoryReportExcludesZeroTotals(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	registry := model.BuiltinCategories()

	transactions := []model.Transaction{
		reportEntry(model.TypeExpense, "អាហារ (Food)", "50", date),
	}

	report := BuildCategoryReport(transactions, registry, ReportFilter{})

	// Registry categories without transactions in the period never appear.
	require.Len(t, report.Expense, 1)
	assert.Empty(t, report.Income)
}

func TestBuildCategoryReportUnknownCategory(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	transactions := []model.Transaction{
		reportEntry(model.TypeExpense, "Deleted category", "40", date),
	}

	report := BuildCategoryReport(transactions, model.BuiltinCategories(), ReportFilter{})

	// A name missing from the registry still gets a row, colored neutrally.
	require.Len(t, report.Expense, 1)
	assert.Equal(t, "Deleted category", report.Expense[0].Name)
	assert.Equal(t, model.ColorNeutral, report.Expense[0].Color)
	assert.True(t, report.Expense[0].Share.Equal(decimal.NewFromInt(100)))
}

func TestBuildCategoryReportPeriodFilter(t *testing.T) {
	registry := model.BuiltinCategories()
	transactions := []model.Transaction{
		reportEntry(model.TypeExpense, "អាហារ (Food)", "10",
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		reportEntry(model.TypeExpense, "ជួលផ្ទះ (Rent)", "500",
			time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
		reportEntry(model.TypeExpense, "អាហារ (Food)", "20",
			time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}

	report := BuildCategoryReport(transactions, registry, ReportFilter{Year: 2024, Month: time.March})

	require.Len(t, report.Expense, 1)
	assert.Equal(t, "អាហារ (Food)", report.Expense[0].Name)
	assert.True(t, report.Expense[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestBuildCategoryReportShareRounding(t *testing.T) {
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	registry := model.BuiltinCategories()
	transactions := []model.Transaction{
		reportEntry(model.TypeExpense, "អាហារ (Food)", "1", date),
		reportEntry(model.TypeExpense, "ជួលផ្ទះ (Rent)", "2", date),
	}

	report := BuildCategoryReport(transactions, registry, ReportFilter{})

	require.Len(t, report.Expense, 2)
	assert.True(t, report.Expense[0].Share.Equal(decimal.RequireFromString("66.7")),
		"share rounds to one decimal place, got %s", report.Expense[0].Share)
	assert.True(t, report.Expense[1].Share.Equal(decimal.RequireFromString("33.3")))
}

func TestBuildCategoryReportEmpty(t *testing.T) {
	report := BuildCategoryReport(nil, model.BuiltinCategories(), ReportFilter{})
	assert.Empty(t, report.Income)
	assert.Empty(t, report.Expense)
}
