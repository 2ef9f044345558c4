package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	AccountID   *int64           `json:"account_id"`
	Date        *time.Time       `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	CategoryID  *int64           `json:"category_id"`
	Recurrence  *string          `json:"recurrence"`
}

// UpdateTransactionRequest carries a partial update; nil fields keep their
// previous value.
type UpdateTransactionRequest struct {
	AccountID   *int64           `json:"account_id"`
	Date        *time.Time       `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"category_id"`
	Recurrence  *string          `json:"recurrence"`
}
