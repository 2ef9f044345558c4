package ledger

import (
	"context"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/shopspring/decimal"
)

// Store is the persistence boundary of the ledger. Every mutation happens
// inside InTx so a transaction row and the balances it touches commit or roll
// back together.
type Store interface {
	// InTx runs fn as one atomic unit. If fn returns an error nothing it did
	// is persisted.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	GetTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error)
	// ListTransactions returns matches ordered by date, then id.
	ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error)
}

// Tx is the view of the store inside an atomic unit. Lock* methods hold the
// row until the unit ends, so concurrent writers on one account serialize.
type Tx interface {
	// LockAccount fails with NotFound if the account is absent or owned by another user.
	LockAccount(ctx context.Context, userID, accountID int64) (*models.Account, error)
	// LockTransaction fails with NotFound if the transaction is absent or owned by another user.
	LockTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error)
	// CategoryVisible reports whether the category is global or owned by userID.
	CategoryVisible(ctx context.Context, userID, categoryID int64) (bool, error)
	// KeywordRules returns every rule in insertion order.
	KeywordRules(ctx context.Context) ([]models.KeywordRule, error)

	InsertTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id int64) error
	// AdjustBalance adds delta to the account's current balance and returns the result.
	AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
}
