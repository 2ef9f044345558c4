// Package events publishes ledger changes to a message broker after they commit.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	TransactionCreated Kind = "transaction.created"
	TransactionUpdated Kind = "transaction.updated"
	TransactionDeleted Kind = "transaction.deleted"
)

// AccountBalance is an account balance as of the commit that produced the event.
type AccountBalance struct {
	AccountID int64           `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

type TransactionEvent struct {
	ID            string           `json:"id"`
	Kind          Kind             `json:"kind"`
	UserID        int64            `json:"user_id"`
	TransactionID int64            `json:"transaction_id"`
	AccountID     int64            `json:"account_id"`
	Amount        decimal.Decimal  `json:"amount"`
	CategoryID    *int64           `json:"category_id"`
	Balances      []AccountBalance `json:"balances"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

func NewTransactionEvent(kind Kind, userID, transactionID, accountID int64, amount decimal.Decimal, categoryID *int64, balances ...AccountBalance) TransactionEvent {
	return TransactionEvent{
		ID:            uuid.New().String(),
		Kind:          kind,
		UserID:        userID,
		TransactionID: transactionID,
		AccountID:     accountID,
		Amount:        amount,
		CategoryID:    categoryID,
		Balances:      balances,
		OccurredAt:    time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	Close() error
}

// Noop discards events. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, TransactionEvent) error { return nil }
func (Noop) Close() error                                      { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []TransactionEvent
	Err    error
}

func (r *Recorder) Publish(_ context.Context, event TransactionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []TransactionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TransactionEvent(nil), r.events...)
}

func (r *Recorder) Close() error { return nil }
