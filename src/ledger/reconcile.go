package ledger

import (
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/shopspring/decimal"
)

// Reconcile recomputes an account balance from its transactions and compares
// it with the stored one.
func Reconcile(account models.Account, transactionSum decimal.Decimal) models.Reconciliation {
	expected := account.InitialBalance.Add(transactionSum)
	return models.Reconciliation{
		AccountID:      account.ID,
		InitialBalance: account.InitialBalance,
		TransactionSum: transactionSum,
		StoredBalance:  account.CurrentBalance,
		Expected:       expected,
		Consistent:     expected.Equal(account.CurrentBalance),
	}
}
