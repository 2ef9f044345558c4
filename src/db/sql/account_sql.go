package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, name, type, initial_balance, current_balance, currency, created_at, updated_at`

// CreateAccount starts current_balance at the initial balance.
func CreateAccount(ctx context.Context, pool *pgxpool.Pool, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (user_id, name, type, initial_balance, current_balance, currency)
		VALUES ($1, $2, $3, $4, $4, $5)
		RETURNING ` + accountColumns
	a, err := scanAccount(pool.QueryRow(ctx, query,
		account.UserID, account.Name, account.Type, account.InitialBalance, account.Currency))
	if err != nil {
		return nil, dbError(err, "account")
	}
	return a, nil
}

func GetAccountByID(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	a, err := scanAccount(pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("account %d", accountID))
	}
	return a, nil
}

func GetAccountsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY id`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dbError(err, "accounts")
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, dbError(err, "accounts")
		}
		accounts = append(accounts, *a)
	}
	return accounts, dbError(rows.Err(), "accounts")
}

// UpdateAccount edits name, type and currency only. Balances belong to the ledger.
func UpdateAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64, upd models.AccountUpdate) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET name = COALESCE($1, name), type = COALESCE($2, type), currency = COALESCE($3, currency), updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + accountColumns
	a, err := scanAccount(pool.QueryRow(ctx, query, upd.Name, upd.Type, upd.Currency, accountID, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("account %d", accountID))
	}
	return a, nil
}

// DeleteAccount removes the account and, through the foreign key, its transactions.
func DeleteAccount(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("account %d", accountID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("account %d", accountID))
	}
	return nil
}

// accountWithSumQuery reads the account row and its transaction total in one
// statement, so both come from the same snapshot.
const accountWithSumQuery = `
	SELECT ` + accountColumns + `,
	       (SELECT COALESCE(SUM(t.amount), 0) FROM transactions t WHERE t.account_id = accounts.id)
	FROM accounts
	WHERE id = $1 AND user_id = $2
`

// GetAccountTransactionSum returns the account and the sum of its transaction amounts.
func GetAccountTransactionSum(ctx context.Context, pool *pgxpool.Pool, userID, accountID int64) (*models.Account, decimal.Decimal, error) {
	var a models.Account
	var sum decimal.Decimal
	err := pool.QueryRow(ctx, accountWithSumQuery, accountID, userID).Scan(
		&a.ID, &a.UserID, &a.Name, &a.Type, &a.InitialBalance, &a.CurrentBalance,
		&a.Currency, &a.CreatedAt, &a.UpdatedAt, &sum)
	if err != nil {
		return nil, decimal.Zero, dbError(err, fmt.Sprintf("account %d", accountID))
	}
	return &a, sum, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.InitialBalance, &a.CurrentBalance,
		&a.Currency, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
