package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/shopspring/decimal"
)

func TestInTxDiscardsWorkOnError(t *testing.T) {
	s := NewStore()
	a := s.CreateAccount(1, "Checking", "checking", "USD", decimal.NewFromInt(100))
	boom := errors.New("boom")

	err := s.InTx(context.Background(), func(tx ledger.Tx) error {
		txn := &models.Transaction{UserID: 1, AccountID: a.ID, Date: time.Now(), Amount: decimal.NewFromInt(-40), Type: "expense"}
		if err := tx.InsertTransaction(context.Background(), txn); err != nil {
			return err
		}
		if _, err := tx.AdjustBalance(context.Background(), a.ID, txn.Amount); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error back, got %v", err)
	}
	got, _ := s.Account(a.ID)
	if !got.CurrentBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance leaked from failed unit: %s", got.CurrentBalance)
	}
	txns, _ := s.ListTransactions(context.Background(), 1, models.TransactionFilter{})
	if len(txns) != 0 {
		t.Fatalf("transaction leaked from failed unit")
	}
}

func TestInTxHonoursCancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.InTx(ctx, func(ledger.Tx) error { called = true; return nil })
	if apperr.KindOf(err) != apperr.Storage || called {
		t.Fatalf("expected storage error without running fn, got %v (called=%v)", err, called)
	}
}

func TestOwnershipChecks(t *testing.T) {
	s := NewStore()
	a := s.CreateAccount(1, "Checking", "checking", "USD", decimal.Zero)
	global := s.AddCategory(nil, "Groceries")
	uid := int64(2)
	private := s.AddCategory(&uid, "Hobbies")

	err := s.InTx(context.Background(), func(tx ledger.Tx) error {
		if _, err := tx.LockAccount(context.Background(), 2, a.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("foreign account lock: %v", err)
		}
		if ok, _ := tx.CategoryVisible(context.Background(), 1, global.ID); !ok {
			t.Errorf("global category should be visible")
		}
		if ok, _ := tx.CategoryVisible(context.Background(), 1, private.ID); ok {
			t.Errorf("other user's category should be hidden")
		}
		if ok, _ := tx.CategoryVisible(context.Background(), 2, private.ID); !ok {
			t.Errorf("own category should be visible")
		}
		if err := tx.DeleteTransaction(context.Background(), 1, 99); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("delete missing: %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}
}

func TestKeywordRulesKeepInsertionOrder(t *testing.T) {
	s := NewStore()
	c := s.AddCategory(nil, "Utilities")
	s.AddKeywordRule("Electric", c.ID)
	s.AddKeywordRule("Water", c.ID)

	_ = s.InTx(context.Background(), func(tx ledger.Tx) error {
		rules, _ := tx.KeywordRules(context.Background())
		if len(rules) != 2 || rules[0].Keyword != "Electric" || rules[1].Keyword != "Water" {
			t.Errorf("unexpected rules: %+v", rules)
		}
		return nil
	})
}
