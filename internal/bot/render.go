package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/chandara/moneytrack_bot/internal/currency"
	"github.com/chandara/moneytrack_bot/internal/identity"
	"github.com/chandara/moneytrack_bot/internal/model"
	"github.com/chandara/moneytrack_bot/internal/service"
)

const dashboardListLimit = 15

func (b *Bot) showDashboard(chatID int64, sess *session) {
	transactions, _, prefs, filter, _ := sess.view()
	totals := service.CalcTotals(transactions)
	filtered := filter.Apply(transactions)

	var sb strings.Builder
	sb.WriteString("💰 Balance: " + formatAmount(totals.Balance, prefs.CurrencyCode) + "\n")
	sb.WriteString("📈 Income: " + formatAmount(totals.Income, prefs.CurrencyCode) + "\n")
	sb.WriteString("📉 Expense: " + formatAmount(totals.Expense, prefs.CurrencyCode) + "\n")

	if desc := describeFilter(filter); desc != "" {
		sb.WriteString("\n🔍 Filter: " + desc + "\n")
	}

	sb.WriteString(fmt.Sprintf("\nTransactions (%d):\n", len(filtered)))
	if len(filtered) == 0 {
		sb.WriteString("Nothing here yet.")
	}
	for i, t := range filtered {
		if i >= dashboardListLimit {
			sb.WriteString(fmt.Sprintf("… and %d more. Use /filter to narrow the list.\n", len(filtered)-dashboardListLimit))
			break
		}
		line := fmt.Sprintf("%s %s — %s", typeEmoji(t.Type), formatAmount(t.Amount, prefs.CurrencyCode), t.Category)
		if t.Description != "" {
			line += " · " + t.Description
		}
		line += " · " + t.Date.Format("02 Jan 2006")
		sb.WriteString(line + "\n")
	}

	b.sendText(chatID, sb.String())
}

func (b *Bot) showDeleteList(chatID int64, sess *session) {
	transactions, _, _, _, _ := sess.view()
	if len(transactions) == 0 {
		b.sendText(chatID, "No transactions to delete.")
		return
	}

	reply := tgbotapi.NewMessage(chatID, "Pick a transaction to delete:")
	reply.ReplyMarkup = deleteKeyboard(transactions, deleteListLimit)
	b.send(reply)
}

func (b *Bot) showFilterMenu(chatID int64, sess *session) {
	transactions, _, _, filter, _ := sess.view()
	text := "Current filter: " + describeFilterOr(filter, "none")
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = filterKeyboard(filter, service.AvailableYears(transactions))
	b.send(reply)
}

func (b *Bot) showCategories(chatID int64, sess *session) {
	_, categories, _, _, _ := sess.view()

	var sb strings.Builder
	sb.WriteString("📂 Income categories:\n")
	for _, c := range categories.Income {
		sb.WriteString(categoryLine(c))
	}
	sb.WriteString("\n📂 Expense categories:\n")
	for _, c := range categories.Expense {
		sb.WriteString(categoryLine(c))
	}

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ReplyMarkup = categoriesKeyboard(categories)
	b.send(reply)
}

func categoryLine(c model.Category) string {
	if c.IsDefault {
		return "• " + c.Name + "\n"
	}
	return "• " + c.Name + " (yours)\n"
}

func (b *Bot) showReport(chatID int64, sess *session) {
	transactions, categories, prefs, _, reportFilter := sess.view()
	report := service.BuildCategoryReport(transactions, categories, reportFilter)

	var sb strings.Builder
	sb.WriteString("📊 Category report")
	if period := describePeriod(reportFilter.Year, reportFilter.Month); period != "" {
		sb.WriteString(" for " + period)
	}
	sb.WriteString("\n\n📈 Income:\n")
	sb.WriteString(reportSection(report.Income, prefs.CurrencyCode))
	sb.WriteString("\n📉 Expense:\n")
	sb.WriteString(reportSection(report.Expense, prefs.CurrencyCode))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ReplyMarkup = reportKeyboard(reportFilter, service.AvailableYears(transactions))
	b.send(reply)
}

func reportSection(entries []service.CategoryTotal, currencyCode string) string {
	if len(entries) == 0 {
		return "Nothing in this period.\n"
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("• %s — %s (%s%%, %d)\n",
			e.Name, formatAmount(e.Amount, currencyCode), e.Share.String(), e.Count))
	}
	return sb.String()
}

func (b *Bot) sendReportCharts(chatID int64, sess *session) {
	transactions, categories, _, _, reportFilter := sess.view()
	report := service.BuildCategoryReport(transactions, categories, reportFilter)
	totals := service.CalcTotals(transactions)

	sent := false
	if png, err := b.charts.CategoryPie(report.Expense, "Expenses by category"); err != nil {
		b.logger.Error().Err(err).Msg("failed to render expense chart")
	} else if png != nil {
		b.sendPhoto(chatID, "expenses.png", png)
		sent = true
	}
	if png, err := b.charts.CategoryPie(report.Income, "Income by category"); err != nil {
		b.logger.Error().Err(err).Msg("failed to render income chart")
	} else if png != nil {
		b.sendPhoto(chatID, "income.png", png)
		sent = true
	}
	if png, err := b.charts.TotalsBar(totals); err != nil {
		b.logger.Error().Err(err).Msg("failed to render totals chart")
	} else if png != nil {
		b.sendPhoto(chatID, "totals.png", png)
		sent = true
	}
	if !sent {
		b.sendText(chatID, "Nothing to chart for this period yet.")
	}
}

func (b *Bot) sendPhoto(chatID int64, name string, png []byte) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	b.send(photo)
}

func formatAmount(amount decimal.Decimal, code string) string {
	return currency.Format(amount, code)
}

func describeFilter(f model.Filter) string {
	return describeFilterOr(f, "")
}

func describeFilterOr(f model.Filter, fallback string) string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", f.Search))
	}
	if f.Type != "" {
		parts = append(parts, string(f.Type))
	}
	if period := describePeriod(f.Year, f.Month); period != "" {
		parts = append(parts, period)
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}

func describePeriod(year int, month time.Month) string {
	switch {
	case month != 0 && year != 0:
		return fmt.Sprintf("%s %d", month, year)
	case month != 0:
		return month.String()
	case year != 0:
		return fmt.Sprintf("%d", year)
	default:
		return ""
	}
}

// errorText maps service and identity errors to a short user-facing message.
func errorText(err error) string {
	var authErr *identity.AuthError
	if errors.As(err, &authErr) {
		return "Sign-in failed: " + authErr.Code
	}

	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return "The amount must be a positive number."
	case errors.Is(err, service.ErrMissingCategory):
		return "Pick a category first."
	case errors.Is(err, service.ErrInvalidType):
		return "Pick income or expense first."
	case errors.Is(err, service.ErrEmptyCategoryName):
		return "The category name cannot be empty."
	case errors.Is(err, service.ErrDuplicateCategory):
		return "A built-in category already has that name."
	case errors.Is(err, service.ErrBuiltinCategory):
		return "Built-in categories cannot be deleted."
	case errors.Is(err, service.ErrUnknownCurrency):
		return "That currency is not supported."
	case errors.Is(err, service.ErrUnknownConfirmation):
		return "That confirmation has expired. Start over with /delete."
	default:
		return "Something went wrong: " + err.Error()
	}
}
