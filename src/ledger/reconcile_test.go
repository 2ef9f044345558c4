package ledger

import (
	"testing"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/shopspring/decimal"
)

func TestReconcile(t *testing.T) {
	acct := models.Account{
		ID:             4,
		InitialBalance: decimal.RequireFromString("1200.00"),
		CurrentBalance: decimal.RequireFromString("1150.00"),
	}
	r := Reconcile(acct, decimal.RequireFromString("-50"))
	if !r.Consistent || !r.Expected.Equal(acct.CurrentBalance) {
		t.Fatalf("expected consistent reconciliation, got %+v", r)
	}

	acct.CurrentBalance = decimal.RequireFromString("1100.00")
	if r := Reconcile(acct, decimal.RequireFromString("-50")); r.Consistent {
		t.Fatalf("drifted balance reported consistent: %+v", r)
	}
}
