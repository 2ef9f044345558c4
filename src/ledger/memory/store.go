// Package memory is an in-process ledger.Store for tests. It holds only the
// ledger tables; the service itself always runs on Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/shopspring/decimal"
)

type state struct {
	accounts     map[int64]models.Account
	transactions map[int64]models.Transaction
	categories   map[int64]models.Category
	rules        []models.KeywordRule
	nextID       int64
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[int64]models.Account, len(s.accounts)),
		transactions: make(map[int64]models.Transaction, len(s.transactions)),
		categories:   s.categories,
		rules:        s.rules,
		nextID:       s.nextID,
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

// Store serializes every atomic unit behind one mutex. A unit works on a copy
// of the state that replaces the original only when the unit succeeds.
type Store struct {
	mu  sync.Mutex
	cur *state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		cur: &state{
			accounts:     make(map[int64]models.Account),
			transactions: make(map[int64]models.Transaction),
			categories:   make(map[int64]models.Category),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) CreateAccount(userID int64, name, accountType, currency string, initial decimal.Decimal) models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.nextID++
	now := s.now()
	a := models.Account{
		ID:             s.cur.nextID,
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		InitialBalance: initial,
		CurrentBalance: initial,
		Currency:       currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.cur.accounts[a.ID] = a
	return a
}

// Account returns a snapshot of an account regardless of owner.
func (s *Store) Account(id int64) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.cur.accounts[id]
	return a, ok
}

// AddCategory stores a category; a nil userID makes it global.
func (s *Store) AddCategory(userID *int64, name string) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.nextID++
	c := models.Category{ID: s.cur.nextID, UserID: userID, Name: name}
	cats := make(map[int64]models.Category, len(s.cur.categories)+1)
	for k, v := range s.cur.categories {
		cats[k] = v
	}
	cats[c.ID] = c
	s.cur.categories = cats
	return c
}

func (s *Store) AddKeywordRule(keyword string, categoryID int64) models.KeywordRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.nextID++
	r := models.KeywordRule{ID: s.cur.nextID, Keyword: keyword, CategoryID: categoryID}
	rules := append(append([]models.KeywordRule(nil), s.cur.rules...), r)
	s.cur.rules = rules
	return r
}

func (s *Store) InTx(ctx context.Context, fn func(tx ledger.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(err, "begin transaction")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.cur.clone()
	if err := fn(&memTx{st: work, now: s.now}); err != nil {
		return err
	}
	s.cur = work
	return nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id int64) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.cur.transactions[id]
	if !ok || t.UserID != userID {
		return nil, apperr.NotFoundf("transaction %d not found", id)
	}
	return &t, nil
}

func (s *Store) ListTransactions(_ context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, 0)
	for _, t := range s.cur.transactions {
		if t.UserID == userID && filter.Match(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type memTx struct {
	st  *state
	now func() time.Time
}

func (t *memTx) LockAccount(_ context.Context, userID, accountID int64) (*models.Account, error) {
	a, ok := t.st.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, apperr.NotFoundf("account %d not found", accountID)
	}
	return &a, nil
}

func (t *memTx) LockTransaction(_ context.Context, userID, id int64) (*models.Transaction, error) {
	txn, ok := t.st.transactions[id]
	if !ok || txn.UserID != userID {
		return nil, apperr.NotFoundf("transaction %d not found", id)
	}
	return &txn, nil
}

func (t *memTx) CategoryVisible(_ context.Context, userID, categoryID int64) (bool, error) {
	c, ok := t.st.categories[categoryID]
	if !ok {
		return false, nil
	}
	return c.UserID == nil || *c.UserID == userID, nil
}

func (t *memTx) KeywordRules(context.Context) ([]models.KeywordRule, error) {
	return append([]models.KeywordRule(nil), t.st.rules...), nil
}

func (t *memTx) InsertTransaction(_ context.Context, txn *models.Transaction) error {
	t.st.nextID++
	now := t.now()
	txn.ID = t.st.nextID
	txn.CreatedAt = now
	txn.UpdatedAt = now
	t.st.transactions[txn.ID] = *txn
	return nil
}

func (t *memTx) UpdateTransaction(_ context.Context, txn *models.Transaction) error {
	prev, ok := t.st.transactions[txn.ID]
	if !ok || prev.UserID != txn.UserID {
		return apperr.NotFoundf("transaction %d not found", txn.ID)
	}
	txn.UpdatedAt = t.now()
	t.st.transactions[txn.ID] = *txn
	return nil
}

func (t *memTx) DeleteTransaction(_ context.Context, userID, id int64) error {
	prev, ok := t.st.transactions[id]
	if !ok || prev.UserID != userID {
		return apperr.NotFoundf("transaction %d not found", id)
	}
	delete(t.st.transactions, id)
	return nil
}

func (t *memTx) AdjustBalance(_ context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	a, ok := t.st.accounts[accountID]
	if !ok {
		return decimal.Zero, apperr.NotFoundf("account %d not found", accountID)
	}
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	a.UpdatedAt = t.now()
	t.st.accounts[accountID] = a
	return a.CurrentBalance, nil
}

var _ ledger.Store = (*Store)(nil)
