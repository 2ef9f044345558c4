package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction amounts are signed: positive is income, negative is expense.
// Recurrence is a stored label only.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	AccountID   int64           `json:"account_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	CategoryID  *int64          `json:"category_id"`
	Recurrence  *string         `json:"recurrence"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type TransactionFilter struct {
	AccountID  *int64
	CategoryID *int64
	Type       *string
	From       *time.Time
	To         *time.Time
}

// Match reports whether t passes every filter that is set.
func (f TransactionFilter) Match(t Transaction) bool {
	if f.AccountID != nil && t.AccountID != *f.AccountID {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && t.Date.After(*f.To) {
		return false
	}
	return true
}
