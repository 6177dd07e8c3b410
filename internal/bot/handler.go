package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/chandara/moneytrack_bot/internal/identity"
	"github.com/chandara/moneytrack_bot/internal/model"
	"github.com/chandara/moneytrack_bot/internal/service"
)

const deleteListLimit = 10

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	delete(b.states, chatID)

	switch msg.Command() {
	case "start":
		b.handleStart(chatID)
	case "signin":
		b.states[chatID] = &chatState{awaiting: awaitingCredentials, authMode: "signin"}
		b.sendText(chatID, "🔑 Send your email and password in one message:\n\nemail@example.com password")
	case "signup":
		b.states[chatID] = &chatState{awaiting: awaitingCredentials, authMode: "signup"}
		b.sendText(chatID, "📝 Send the email and password for the new account in one message:\n\nemail@example.com password")
	case "signout":
		b.handleSignOut(chatID)
	case "dashboard":
		b.withSession(chatID, b.showDashboard)
	case "add":
		b.withSession(chatID, func(chatID int64, _ *session) {
			reply := tgbotapi.NewMessage(chatID, "What kind of transaction?")
			reply.ReplyMarkup = typeKeyboard()
			b.send(reply)
		})
	case "delete":
		b.withSession(chatID, b.showDeleteList)
	case "filter":
		b.withSession(chatID, b.showFilterMenu)
	case "report":
		b.withSession(chatID, b.showReport)
	case "categories":
		b.withSession(chatID, b.showCategories)
	case "currency":
		b.withSession(chatID, func(chatID int64, sess *session) {
			_, _, prefs, _, _ := sess.view()
			reply := tgbotapi.NewMessage(chatID, "Pick your display currency:")
			reply.ReplyMarkup = currencyKeyboard(prefs.CurrencyCode)
			b.send(reply)
		})
	case "help":
		b.sendText(chatID, helpText)
	default:
		b.sendText(chatID, "Unknown command. Try /help.")
	}
}

func (b *Bot) handleStart(chatID int64) {
	if _, ok := b.sessions[chatID]; ok {
		b.sendText(chatID, "👋 You are signed in. /dashboard shows your money at a glance.")
		return
	}
	b.sendText(chatID, "💵 Welcome to MoneyTrack!\n\nTrack income and expenses, filter them, and see where your money goes.\n\n/signin — sign in to an existing account\n/signup — create a new account")
}

func (b *Bot) handleSignOut(chatID int64) {
	sess, ok := b.sessions[chatID]
	if !ok {
		b.sendText(chatID, "You are not signed in.")
		return
	}
	auth := &identity.Session{User: sess.user, AccessToken: sess.token}
	if err := b.identity.SignOut(context.Background(), auth); err != nil {
		b.logger.Warn().Err(err).Msg("sign-out call failed")
	}
	b.closeSession(chatID)
	b.sendText(chatID, "👋 Signed out. Your data stays put until next time.")
}

// withSession runs fn only when the chat is signed in.
func (b *Bot) withSession(chatID int64, fn func(int64, *session)) {
	sess, ok := b.sessions[chatID]
	if !ok {
		b.sendText(chatID, "🔒 Sign in first: /signin")
		return
	}
	fn(chatID, sess)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	state, ok := b.states[chatID]
	if !ok {
		b.sendText(chatID, "I did not expect that. Try /help.")
		return
	}

	switch state.awaiting {
	case awaitingCredentials:
		b.handleCredentials(chatID, state, msg.Text)
	case awaitingAmount:
		b.handleAmount(chatID, state, msg.Text)
	case awaitingCategoryName:
		b.handleNewCategoryName(chatID, state, msg.Text)
	case awaitingSearch:
		b.handleSearchText(chatID, msg.Text)
	default:
		delete(b.states, chatID)
	}
}

func (b *Bot) handleCredentials(chatID int64, state *chatState, text string) {
	email, password, ok := strings.Cut(strings.TrimSpace(text), " ")
	if !ok || email == "" || password == "" {
		b.sendText(chatID, "Please send email and password separated by a space.")
		return
	}
	delete(b.states, chatID)

	ctx := context.Background()
	var (
		auth *identity.Session
		err  error
	)
	if state.authMode == "signup" {
		auth, err = b.identity.SignUp(ctx, email, strings.TrimSpace(password))
	} else {
		auth, err = b.identity.SignIn(ctx, email, strings.TrimSpace(password))
	}
	if err != nil {
		b.sendError(chatID, identity.Classify(err))
		return
	}

	b.closeSession(chatID)
	b.openSession(chatID, auth)
	b.sendText(chatID, fmt.Sprintf("✅ Signed in as %s.\n\n/dashboard — balance and transactions\n/add — record income or an expense\n/report — spending by category", auth.User.Email))
}

// handleAmount parses "12.50 optional description" for a transaction whose
// type and category were already picked.
func (b *Bot) handleAmount(chatID int64, state *chatState, text string) {
	sess, ok := b.sessions[chatID]
	if !ok {
		delete(b.states, chatID)
		return
	}

	amountText, description, _ := strings.Cut(strings.TrimSpace(text), " ")
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		b.sendText(chatID, "That does not look like a number. Send the amount, optionally followed by a note:\n\n12.50 lunch with friends")
		return
	}
	delete(b.states, chatID)

	_, _, prefs, _, _ := sess.view()
	txn, err := b.service.AddTransaction(context.Background(), sess.user.ID, service.TransactionInput{
		Type:        state.txType,
		Amount:      amount,
		Category:    state.category,
		Description: strings.TrimSpace(description),
		Date:        time.Now(),
	})
	if err != nil {
		b.sendError(chatID, err)
		return
	}

	b.sendText(chatID, fmt.Sprintf("%s Recorded %s for %s.",
		typeEmoji(txn.Type), formatAmount(txn.Amount, prefs.CurrencyCode), txn.Category))
}

func (b *Bot) handleNewCategoryName(chatID int64, state *chatState, text string) {
	sess, ok := b.sessions[chatID]
	if !ok {
		delete(b.states, chatID)
		return
	}
	delete(b.states, chatID)

	cat, err := b.service.CreateCategory(context.Background(), sess.user.ID, state.catType, text)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendText(chatID, fmt.Sprintf("✅ Added %s category %q.", cat.Type, cat.Name))
}

func (b *Bot) handleSearchText(chatID int64, text string) {
	sess, ok := b.sessions[chatID]
	if !ok {
		delete(b.states, chatID)
		return
	}
	delete(b.states, chatID)

	sess.updateFilter(func(f *model.Filter) { f.Search = strings.TrimSpace(text) })
	b.showDashboard(chatID, sess)
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// Answering keeps the button spinner from hanging.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn().Err(err).Msg("failed to answer callback")
	}
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	prefix, rest, _ := strings.Cut(query.Data, ":")
	b.withSession(chatID, func(chatID int64, sess *session) {
		switch prefix {
		case cbAddType:
			b.handleTypePick(chatID, sess, rest)
		case cbCategoryPick:
			b.handleCategoryPick(chatID, sess, rest)
		case cbDeletePick:
			b.handleDeletePick(chatID, sess, rest)
		case cbDeleteConfirm:
			b.handleDeleteConfirm(chatID, rest)
		case cbDeleteCancel:
			b.service.CancelDeleteTransaction(rest)
			b.sendText(chatID, "Deletion cancelled. Nothing was removed.")
		case cbCurrency:
			b.handleCurrencyPick(chatID, sess, rest)
		case cbFilter:
			b.handleFilterCallback(chatID, sess, rest)
		case cbReport:
			b.handleReportCallback(chatID, sess, rest)
		case cbCategoryAdd:
			b.states[chatID] = &chatState{awaiting: awaitingCategoryName, catType: model.TransactionType(rest)}
			b.sendText(chatID, "Send the name for the new category:")
		case cbCategoryDel:
			if err := b.service.DeleteCategory(context.Background(), sess.user.ID, rest); err != nil {
				b.sendError(chatID, err)
				return
			}
			b.sendText(chatID, "🗑 Category deleted. Its transactions keep their label.")
		}
	})
}

func (b *Bot) handleTypePick(chatID int64, sess *session, data string) {
	typ := model.TransactionType(data)
	if !typ.Valid() {
		return
	}
	_, categories, _, _, _ := sess.view()
	b.states[chatID] = &chatState{txType: typ}

	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf("Pick a category for the %s:", typ))
	reply.ReplyMarkup = categoryKeyboard(categories.ByType(typ), typ)
	b.send(reply)
}

func (b *Bot) handleCategoryPick(chatID int64, sess *session, data string) {
	typText, indexText, ok := strings.Cut(data, ":")
	if !ok {
		return
	}
	typ := model.TransactionType(typText)
	index, err := strconv.Atoi(indexText)
	if err != nil {
		return
	}

	_, categories, _, _, _ := sess.view()
	list := categories.ByType(typ)
	if index < 0 || index >= len(list) {
		b.sendText(chatID, "That category is gone. Start over with /add.")
		return
	}

	b.states[chatID] = &chatState{
		awaiting: awaitingAmount,
		txType:   typ,
		category: list[index].Name,
	}
	b.sendText(chatID, fmt.Sprintf("Send the amount, optionally with a note:\n\n12.50 lunch with friends\n\nCategory: %s", list[index].Name))
}

func (b *Bot) handleDeletePick(chatID int64, sess *session, transactionID string) {
	transactions, _, prefs, _, _ := sess.view()
	var target *model.Transaction
	for i := range transactions {
		if transactions[i].ID == transactionID {
			target = &transactions[i]
			break
		}
	}
	if target == nil {
		b.sendText(chatID, "That transaction is already gone.")
		return
	}

	token := b.service.RequestDeleteTransaction(sess.user.ID, transactionID)
	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Delete this transaction?\n\n%s %s — %s\n%s",
		typeEmoji(target.Type), formatAmount(target.Amount, prefs.CurrencyCode),
		target.Category, target.Date.Format("02 Jan 2006")))
	reply.ReplyMarkup = confirmDeleteKeyboard(token)
	b.send(reply)
}

func (b *Bot) handleDeleteConfirm(chatID int64, token string) {
	if err := b.service.ConfirmDeleteTransaction(context.Background(), token); err != nil {
		b.sendError(chatID, err)
		return
	}
	b.sendText(chatID, "🗑 Transaction deleted.")
}

func (b *Bot) handleCurrencyPick(chatID int64, sess *session, code string) {
	if err := b.service.SetCurrency(context.Background(), sess.user.ID, code); err != nil {
		b.sendError(chatID, err)
		return
	}
	// The subscription will catch up on the next poll; reflect the change
	// immediately so the very next render is already converted.
	sess.mu.Lock()
	sess.prefs.CurrencyCode = code
	sess.mu.Unlock()
	b.sendText(chatID, fmt.Sprintf("✅ Amounts now display in %s.", code))
}

func (b *Bot) handleFilterCallback(chatID int64, sess *session, data string) {
	field, value, _ := strings.Cut(data, ":")
	switch field {
	case "type":
		sess.updateFilter(func(f *model.Filter) {
			if value == "all" {
				f.Type = ""
			} else {
				f.Type = model.TransactionType(value)
			}
		})
	case "month":
		m, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		sess.updateFilter(func(f *model.Filter) { f.Month = time.Month(m) })
	case "year":
		y, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		sess.updateFilter(func(f *model.Filter) { f.Year = y })
	case "search":
		b.states[chatID] = &chatState{awaiting: awaitingSearch}
		b.sendText(chatID, "Send text to search for in category names and notes:")
		return
	case "clear":
		sess.updateFilter(func(f *model.Filter) { *f = model.Filter{} })
	default:
		return
	}
	b.showDashboard(chatID, sess)
}

func (b *Bot) handleReportCallback(chatID int64, sess *session, data string) {
	field, value, _ := strings.Cut(data, ":")
	switch field {
	case "month":
		m, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		sess.updateReportFilter(func(f *service.ReportFilter) { f.Month = time.Month(m) })
	case "year":
		y, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		sess.updateReportFilter(func(f *service.ReportFilter) { f.Year = y })
	case "show":
		b.sendReportCharts(chatID, sess)
		return
	default:
		return
	}
	b.showReport(chatID, sess)
}

const helpText = `💵 MoneyTrack commands:

/dashboard — balance, totals and your transactions
/add — record income or an expense
/delete — remove a transaction
/filter — narrow the dashboard by text, type, month or year
/report — totals per category, with charts
/categories — manage your categories
/currency — switch the display currency
/signout — sign out`
