package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billColumns = `id, user_id, name, amount, due_date, recurrence, category_id, account_id, is_paid, created_at, updated_at`

func CreateBill(ctx context.Context, pool *pgxpool.Pool, bill *models.Bill) (*models.Bill, error) {
	query := `
		INSERT INTO bills (user_id, name, amount, due_date, recurrence, category_id, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + billColumns
	b, err := scanBill(pool.QueryRow(ctx, query,
		bill.UserID, bill.Name, bill.Amount, bill.DueDate, bill.Recurrence, bill.CategoryID, bill.AccountID))
	if err != nil {
		return nil, dbError(err, "bill")
	}
	return b, nil
}

func GetBillByID(ctx context.Context, pool *pgxpool.Pool, userID, billID int64) (*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 AND user_id = $2`
	b, err := scanBill(pool.QueryRow(ctx, query, billID, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("bill %d", billID))
	}
	return b, nil
}

// GetBillsForUser lists bills by due date; unpaidOnly drops paid ones.
func GetBillsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, unpaidOnly bool) ([]models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1 AND (NOT $2 OR NOT is_paid) ORDER BY due_date, id`
	rows, err := pool.Query(ctx, query, userID, unpaidOnly)
	if err != nil {
		return nil, dbError(err, "bills")
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, dbError(err, "bills")
		}
		bills = append(bills, *b)
	}
	return bills, dbError(rows.Err(), "bills")
}

func UpdateBill(ctx context.Context, pool *pgxpool.Pool, bill *models.Bill) (*models.Bill, error) {
	query := `
		UPDATE bills
		SET name = $1, amount = $2, due_date = $3, recurrence = $4, category_id = $5, account_id = $6,
		    is_paid = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + billColumns
	b, err := scanBill(pool.QueryRow(ctx, query,
		bill.Name, bill.Amount, bill.DueDate, bill.Recurrence, bill.CategoryID, bill.AccountID, bill.IsPaid, bill.ID, bill.UserID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("bill %d", bill.ID))
	}
	return b, nil
}

// MarkBillPaid flags the bill as paid. It does not post a transaction.
func MarkBillPaid(ctx context.Context, pool *pgxpool.Pool, userID, billID int64) (*models.Bill, error) {
	query := `UPDATE bills SET is_paid = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2 RETURNING ` + billColumns
	b, err := scanBill(pool.QueryRow(ctx, query, billID, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("bill %d", billID))
	}
	return b, nil
}

func DeleteBill(ctx context.Context, pool *pgxpool.Pool, userID, billID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM bills WHERE id = $1 AND user_id = $2`, billID, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("bill %d", billID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("bill %d", billID))
	}
	return nil
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	var b models.Bill
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Recurrence, &b.CategoryID, &b.AccountID,
		&b.IsPaid, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
