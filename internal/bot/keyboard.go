package bot

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chandara/moneytrack_bot/internal/currency"
	"github.com/chandara/moneytrack_bot/internal/model"
	"github.com/chandara/moneytrack_bot/internal/service"
)

// Callback data prefixes. Category picks carry an index into the merged
// per-type list rather than the name: Khmer names would not fit in the
// 64-byte callback data limit.
const (
	cbAddType       = "add"
	cbCategoryPick  = "cat"
	cbDeletePick    = "del"
	cbDeleteConfirm = "delok"
	cbDeleteCancel  = "delno"
	cbCurrency      = "cur"
	cbFilter        = "flt"
	cbReport        = "rpt"
	cbCategoryAdd   = "catadd"
	cbCategoryDel   = "catdel"
)

func typeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Income", cbAddType+":income"),
			tgbotapi.NewInlineKeyboardButtonData("📉 Expense", cbAddType+":expense"),
		),
	)
}

func categoryKeyboard(categories []model.Category, typ model.TransactionType) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, c := range categories {
		data := fmt.Sprintf("%s:%s:%d", cbCategoryPick, typ, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deleteKeyboard(transactions []model.Transaction, limit int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, t := range transactions {
		if i >= limit {
			break
		}
		label := fmt.Sprintf("%s %s %s", typeEmoji(t.Type), t.Amount.String(), t.Category)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbDeletePick+":"+t.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmDeleteKeyboard(token string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", cbDeleteConfirm+":"+token),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", cbDeleteCancel+":"+token),
		),
	)
}

func currencyKeyboard(current string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, opt := range currency.Options {
		label := fmt.Sprintf("%s %s", opt.Symbol, opt.Code)
		if opt.Code == current {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbCurrency+":"+opt.Code))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

func filterKeyboard(filter model.Filter, years []int) tgbotapi.InlineKeyboardMarkup {
	typeRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(markIf("All", filter.Type == ""), cbFilter+":type:all"),
		tgbotapi.NewInlineKeyboardButtonData(markIf("Income", filter.Type == model.TypeIncome), cbFilter+":type:income"),
		tgbotapi.NewInlineKeyboardButtonData(markIf("Expense", filter.Type == model.TypeExpense), cbFilter+":type:expense"),
	)

	rows := [][]tgbotapi.InlineKeyboardButton{typeRow}
	rows = append(rows, monthRows(cbFilter, filter.Month)...)
	rows = append(rows, yearRow(cbFilter, filter.Year, years))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔍 Search", cbFilter+":search"),
		tgbotapi.NewInlineKeyboardButtonData("♻️ Clear", cbFilter+":clear"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func reportKeyboard(filter service.ReportFilter, years []int) tgbotapi.InlineKeyboardMarkup {
	rows := monthRows(cbReport, filter.Month)
	rows = append(rows, yearRow(cbReport, filter.Year, years))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Charts", cbReport+":show"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoriesKeyboard(set model.CategorySet) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Income category", cbCategoryAdd+":income"),
			tgbotapi.NewInlineKeyboardButtonData("➕ Expense category", cbCategoryAdd+":expense"),
		),
	}
	for _, c := range append(append([]model.Category{}, set.Income...), set.Expense...) {
		if c.IsDefault {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 %s (%s)", c.Name, c.Type), cbCategoryDel+":"+c.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// monthRows renders an "All" button plus the twelve months, four per row.
// Data value 0 clears the month.
func monthRows(prefix string, selected time.Month) [][]tgbotapi.InlineKeyboardButton {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(markIf("Any month", selected == 0), prefix+":month:0"),
		),
	}
	var row []tgbotapi.InlineKeyboardButton
	for m := time.January; m <= time.December; m++ {
		label := markIf(m.String()[:3], m == selected)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("%s:month:%d", prefix, int(m))))
		if len(row) == 4 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	return rows
}

func yearRow(prefix string, selected int, years []int) []tgbotapi.InlineKeyboardButton {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(markIf("Any year", selected == 0), prefix+":year:0"),
	}
	for _, y := range years {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			markIf(strconv.Itoa(y), y == selected), fmt.Sprintf("%s:year:%d", prefix, y)))
	}
	return row
}

func markIf(label string, selected bool) string {
	if selected {
		return "✅ " + label
	}
	return label
}

func typeEmoji(typ model.TransactionType) string {
	if typ == model.TypeIncome {
		return "📈"
	}
	return "📉"
}
