package db

import (
	"strings"
	"testing"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
)

func TestListTransactionsQuery(t *testing.T) {
	acct, cat := int64(3), int64(9)
	typ := "expense"
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query, args := listTransactionsQuery(42, models.TransactionFilter{})
	if len(args) != 1 || args[0] != int64(42) {
		t.Fatalf("unfiltered args = %v", args)
	}
	if !strings.HasSuffix(query, "WHERE user_id = $1 ORDER BY date ASC, id ASC") {
		t.Fatalf("unexpected unfiltered query: %s", query)
	}

	query, args = listTransactionsQuery(42, models.TransactionFilter{
		AccountID: &acct, CategoryID: &cat, Type: &typ, From: &from, To: &to,
	})
	want := "WHERE user_id = $1 AND account_id = $2 AND category_id = $3 AND type = $4 AND date >= $5 AND date <= $6 ORDER BY"
	if !strings.Contains(query, want) {
		t.Fatalf("query %q does not contain %q", query, want)
	}
	if len(args) != 6 || args[1] != acct || args[3] != typ || args[5] != to {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestAccountWithSumQueryIsOneStatement(t *testing.T) {
	q := strings.TrimSpace(accountWithSumQuery)
	if strings.Count(q, ";") != 0 || !strings.HasPrefix(q, "SELECT "+accountColumns+",") {
		t.Fatalf("unexpected query: %s", q)
	}
	if !strings.Contains(q, "(SELECT COALESCE(SUM(t.amount), 0) FROM transactions t WHERE t.account_id = accounts.id)") {
		t.Fatalf("transaction sum is not read in the same statement: %s", q)
	}
	if !strings.HasSuffix(q, "WHERE id = $1 AND user_id = $2") {
		t.Fatalf("query is not scoped by account and owner: %s", q)
	}
}
