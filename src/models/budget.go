package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    *time.Time      `json:"end_date"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
