package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
	Recurrence *string         `json:"recurrence"`
	CategoryID *int64          `json:"category_id"`
	AccountID  *int64          `json:"account_id"`
	IsPaid     bool            `json:"is_paid"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
