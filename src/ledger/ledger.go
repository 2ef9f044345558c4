// Package ledger keeps account balances consistent with their transactions.
//
// For every account, current_balance equals initial_balance plus the sum of
// the amounts of all transactions referencing it. Create, update and delete
// each run as a single store transaction holding row locks on the affected
// accounts.
package ledger

import (
	"context"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/categorize"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/events"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Ledger struct {
	store     Store
	publisher events.Publisher
	log       *logrus.Logger
}

func New(store Store, publisher events.Publisher, log *logrus.Logger) *Ledger {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Ledger{store: store, publisher: publisher, log: log}
}

func (l *Ledger) CreateTransaction(ctx context.Context, userID int64, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		UserID:      userID,
		AccountID:   *req.AccountID,
		Date:        *req.Date,
		Amount:      *req.Amount,
		Type:        strings.TrimSpace(req.Type),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Recurrence:  req.Recurrence,
	}

	var balance decimal.Decimal
	err := l.store.InTx(ctx, func(tx Tx) error {
		if _, err := tx.LockAccount(ctx, userID, txn.AccountID); err != nil {
			return err
		}
		if err := resolveCategory(ctx, tx, userID, txn); err != nil {
			return err
		}
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		var err error
		balance, err = tx.AdjustBalance(ctx, txn.AccountID, txn.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": txn.ID,
		"account_id":     txn.AccountID,
		"amount":         txn.Amount.String(),
		"balance":        balance.String(),
	}).Info("transaction created")

	l.publish(ctx, events.NewTransactionEvent(events.TransactionCreated, userID, txn.ID, txn.AccountID, txn.Amount, txn.CategoryID,
		events.AccountBalance{AccountID: txn.AccountID, Balance: balance}))
	return txn, nil
}

func (l *Ledger) UpdateTransaction(ctx context.Context, userID, id int64, req models.UpdateTransactionRequest) (*models.Transaction, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	var (
		updated  *models.Transaction
		balances []events.AccountBalance
	)
	err := l.store.InTx(ctx, func(tx Tx) error {
		prev, err := tx.LockTransaction(ctx, userID, id)
		if err != nil {
			return err
		}

		next := mergeUpdate(*prev, req)
		if req.CategoryID != nil {
			ok, err := tx.CategoryVisible(ctx, userID, *req.CategoryID)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.NotFoundf("category %d not found", *req.CategoryID)
			}
		}

		if err := lockAccounts(ctx, tx, userID, prev.AccountID, next.AccountID); err != nil {
			return err
		}
		if err := tx.UpdateTransaction(ctx, &next); err != nil {
			return err
		}

		if next.AccountID != prev.AccountID {
			oldBal, err := tx.AdjustBalance(ctx, prev.AccountID, prev.Amount.Neg())
			if err != nil {
				return err
			}
			newBal, err := tx.AdjustBalance(ctx, next.AccountID, next.Amount)
			if err != nil {
				return err
			}
			balances = []events.AccountBalance{
				{AccountID: prev.AccountID, Balance: oldBal},
				{AccountID: next.AccountID, Balance: newBal},
			}
		} else {
			bal, err := tx.AdjustBalance(ctx, next.AccountID, next.Amount.Sub(prev.Amount))
			if err != nil {
				return err
			}
			balances = []events.AccountBalance{{AccountID: next.AccountID, Balance: bal}}
		}

		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": id,
		"account_id":     updated.AccountID,
		"amount":         updated.Amount.String(),
	}).Info("transaction updated")

	l.publish(ctx, events.NewTransactionEvent(events.TransactionUpdated, userID, updated.ID, updated.AccountID, updated.Amount, updated.CategoryID, balances...))
	return updated, nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, userID, id int64) error {
	var (
		prev    *models.Transaction
		balance decimal.Decimal
	)
	err := l.store.InTx(ctx, func(tx Tx) error {
		var err error
		prev, err = tx.LockTransaction(ctx, userID, id)
		if err != nil {
			return err
		}
		if _, err := tx.LockAccount(ctx, userID, prev.AccountID); err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, userID, id); err != nil {
			return err
		}
		balance, err = tx.AdjustBalance(ctx, prev.AccountID, prev.Amount.Neg())
		return err
	})
	if err != nil {
		return err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": id,
		"account_id":     prev.AccountID,
		"balance":        balance.String(),
	}).Info("transaction deleted")

	l.publish(ctx, events.NewTransactionEvent(events.TransactionDeleted, userID, prev.ID, prev.AccountID, prev.Amount, prev.CategoryID,
		events.AccountBalance{AccountID: prev.AccountID, Balance: balance}))
	return nil
}

func (l *Ledger) GetTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	return l.store.GetTransaction(ctx, userID, id)
}

func (l *Ledger) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperr.Validationf("date range end is before its start")
	}
	return l.store.ListTransactions(ctx, userID, filter)
}

// publish runs after commit. A broker failure is logged and never undoes
// or fails the write.
func (l *Ledger) publish(ctx context.Context, ev events.TransactionEvent) {
	if err := l.publisher.Publish(ctx, ev); err != nil {
		l.log.WithFields(logrus.Fields{
			"event_id":       ev.ID,
			"kind":           ev.Kind,
			"transaction_id": ev.TransactionID,
		}).WithError(err).Error("failed to publish ledger event")
	}
}

// resolveCategory checks an explicit category, or falls back to the keyword
// rules when none was given.
func resolveCategory(ctx context.Context, tx Tx, userID int64, txn *models.Transaction) error {
	if txn.CategoryID != nil {
		ok, err := tx.CategoryVisible(ctx, userID, *txn.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFoundf("category %d not found", *txn.CategoryID)
		}
		return nil
	}
	if strings.TrimSpace(txn.Description) == "" {
		return nil
	}
	rules, err := tx.KeywordRules(ctx)
	if err != nil {
		return err
	}
	if id, ok := categorize.Categorize(txn.Description, rules); ok {
		txn.CategoryID = &id
	}
	return nil
}

// lockAccounts locks one or two accounts in ascending id order.
func lockAccounts(ctx context.Context, tx Tx, userID, a, b int64) error {
	if a == b {
		_, err := tx.LockAccount(ctx, userID, a)
		return err
	}
	if b < a {
		a, b = b, a
	}
	if _, err := tx.LockAccount(ctx, userID, a); err != nil {
		return err
	}
	_, err := tx.LockAccount(ctx, userID, b)
	return err
}

func mergeUpdate(prev models.Transaction, req models.UpdateTransactionRequest) models.Transaction {
	next := prev
	if req.AccountID != nil {
		next.AccountID = *req.AccountID
	}
	if req.Date != nil {
		next.Date = *req.Date
	}
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.Type != nil {
		next.Type = strings.TrimSpace(*req.Type)
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.CategoryID != nil {
		next.CategoryID = req.CategoryID
	}
	if req.Recurrence != nil {
		next.Recurrence = req.Recurrence
	}
	return next
}

func validateCreate(req models.CreateTransactionRequest) error {
	var missing []string
	if req.AccountID == nil {
		missing = append(missing, "account_id")
	}
	if req.Date == nil || req.Date.IsZero() {
		missing = append(missing, "date")
	}
	if req.Amount == nil {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(req.Type) == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return apperr.Validationf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return util.ValidateMoney("amount", *req.Amount)
}

func validateUpdate(req models.UpdateTransactionRequest) error {
	if req.Date != nil && req.Date.IsZero() {
		return apperr.Validationf("date must not be empty")
	}
	if req.Type != nil && strings.TrimSpace(*req.Type) == "" {
		return apperr.Validationf("type must not be empty")
	}
	if req.Amount != nil {
		return util.ValidateMoney("amount", *req.Amount)
	}
	return nil
}
