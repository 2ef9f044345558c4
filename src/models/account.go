package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Currency       string          `json:"currency"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountUpdate holds the only account fields a caller may edit. Balances are
// owned by the ledger.
type AccountUpdate struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Currency *string `json:"currency"`
}

// Reconciliation compares the stored balance against one recomputed from the
// account's transactions.
type Reconciliation struct {
	AccountID      int64           `json:"account_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	TransactionSum decimal.Decimal `json:"transaction_sum"`
	StoredBalance  decimal.Decimal `json:"stored_balance"`
	Expected       decimal.Decimal `json:"expected_balance"`
	Consistent     bool            `json:"consistent"`
}
