package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, account_id, date, amount, type, description, category_id, recurrence, created_at, updated_at`

// LedgerStore is the Postgres ledger.Store. Each unit is one database
// transaction; account and transaction rows are locked with FOR UPDATE.
type LedgerStore struct {
	pool *pgxpool.Pool
}

func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

func (s *LedgerStore) InTx(ctx context.Context, fn func(tx ledger.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return dbError(err, "transaction")
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgLedgerTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return dbError(err, "transaction")
	}
	return nil
}

func (s *LedgerStore) GetTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	t, err := scanTransaction(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("transaction %d", id))
	}
	return t, nil
}

func (s *LedgerStore) ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Transaction, error) {
	query, args := listTransactionsQuery(userID, filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "transactions")
	}
	defer rows.Close()

	txns := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, dbError(err, "transactions")
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "transactions")
	}
	return txns, nil
}

// listTransactionsQuery ANDs together every filter that is set.
func listTransactionsQuery(userID int64, f models.TransactionFilter) (string, []any) {
	where := []string{"user_id = $1"}
	args := []any{userID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.AccountID != nil {
		add("account_id = $%d", *f.AccountID)
	}
	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date <= $%d", *f.To)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY date ASC, id ASC`
	return query, args
}

type pgLedgerTx struct {
	tx pgx.Tx
}

func (t *pgLedgerTx) LockAccount(ctx context.Context, userID, accountID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`
	a, err := scanAccount(t.tx.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("account %d", accountID))
	}
	return a, nil
}

func (t *pgLedgerTx) LockTransaction(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`
	txn, err := scanTransaction(t.tx.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("transaction %d", id))
	}
	return txn, nil
}

func (t *pgLedgerTx) CategoryVisible(ctx context.Context, userID, categoryID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND (user_id IS NULL OR user_id = $2))`
	var ok bool
	if err := t.tx.QueryRow(ctx, query, categoryID, userID).Scan(&ok); err != nil {
		return false, dbError(err, fmt.Sprintf("category %d", categoryID))
	}
	return ok, nil
}

func (t *pgLedgerTx) KeywordRules(ctx context.Context) ([]models.KeywordRule, error) {
	return queryKeywordRules(ctx, t.tx)
}

func (t *pgLedgerTx) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, date, amount, type, description, category_id, recurrence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		txn.UserID, txn.AccountID, txn.Date, txn.Amount, txn.Type, txn.Description, txn.CategoryID, txn.Recurrence,
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	return dbError(err, "transaction")
}

func (t *pgLedgerTx) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, date = $2, amount = $3, type = $4, description = $5,
		    category_id = $6, recurrence = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		txn.AccountID, txn.Date, txn.Amount, txn.Type, txn.Description, txn.CategoryID, txn.Recurrence, txn.ID, txn.UserID,
	).Scan(&txn.UpdatedAt)
	return dbError(err, fmt.Sprintf("transaction %d", txn.ID))
}

func (t *pgLedgerTx) DeleteTransaction(ctx context.Context, userID, id int64) error {
	cmd, err := t.tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("transaction %d", id))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("transaction %d", id))
	}
	return nil
}

func (t *pgLedgerTx) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET current_balance = current_balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING current_balance
	`
	var balance decimal.Decimal
	if err := t.tx.QueryRow(ctx, query, delta, accountID).Scan(&balance); err != nil {
		return decimal.Zero, dbError(err, fmt.Sprintf("account %d", accountID))
	}
	return balance, nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Date, &t.Amount, &t.Type, &t.Description,
		&t.CategoryID, &t.Recurrence, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var _ ledger.Store = (*LedgerStore)(nil)
