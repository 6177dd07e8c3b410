package bot

import (
	"sync"

	"github.com/chandara/moneytrack_bot/internal/identity"
	"github.com/chandara/moneytrack_bot/internal/model"
	"github.com/chandara/moneytrack_bot/internal/service"
)

// session is the signed-in state of one chat: the identity, the latest
// snapshots pushed by the live subscriptions, and the two independent filter
// states. Derived data is never stored; it is recomputed from the snapshots
// on every render.
type session struct {
	user  identity.User
	token string

	// unsubs tear down the live subscriptions; called exactly once when the
	// session ends so no callback outlives its user scope.
	unsubs []func()

	mu           sync.Mutex
	transactions []model.Transaction
	categories   model.CategorySet
	prefs        model.Preferences
	filter       model.Filter
	report       service.ReportFilter

	notifyTransactions sync.Once
	notifyCategories   sync.Once
	notifyPreferences  sync.Once
}

func newSession(user identity.User, token string) *session {
	return &session{
		user:       user,
		token:      token,
		categories: model.BuiltinCategories(),
		prefs: model.Preferences{
			UserID:       user.ID,
			CurrencyCode: model.DefaultCurrency,
		},
	}
}

// teardown releases every subscription. Safe to call more than once.
func (s *session) teardown() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

func (s *session) setTransactions(transactions []model.Transaction) {
	s.mu.Lock()
	s.transactions = transactions
	s.mu.Unlock()
}

func (s *session) setCategories(categories model.CategorySet) {
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}

func (s *session) setPreferences(prefs model.Preferences) {
	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()
}

// view returns a consistent copy of the snapshots and filter states for
// rendering.
func (s *session) view() (transactions []model.Transaction, categories model.CategorySet, prefs model.Preferences, filter model.Filter, report service.ReportFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions, s.categories, s.prefs, s.filter, s.report
}

func (s *session) updateFilter(update func(*model.Filter)) {
	s.mu.Lock()
	update(&s.filter)
	s.mu.Unlock()
}

func (s *session) updateReportFilter(update func(*service.ReportFilter)) {
	s.mu.Lock()
	update(&s.report)
	s.mu.Unlock()
}
