package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `id, user_id, category_id, amount, period, start_date, end_date, created_at, updated_at`

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, amount, period, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + budgetColumns
	b, err := scanBudget(pool.QueryRow(ctx, query,
		budget.UserID, budget.CategoryID, budget.Amount, budget.Period, budget.StartDate, budget.EndDate))
	if err != nil {
		return nil, dbError(err, "budget")
	}
	return b, nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) (*models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 AND user_id = $2`
	b, err := scanBudget(pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("budget %d", budgetID))
	}
	return b, nil
}

func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dbError(err, "budgets")
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, dbError(err, "budgets")
		}
		budgets = append(budgets, *b)
	}
	return budgets, dbError(rows.Err(), "budgets")
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1, amount = $2, period = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + budgetColumns
	b, err := scanBudget(pool.QueryRow(ctx, query,
		budget.CategoryID, budget.Amount, budget.Period, budget.StartDate, budget.EndDate, budget.ID, budget.UserID))
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("budget %d", budget.ID))
	}
	return b, nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("budget %d", budgetID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("budget %d", budgetID))
	}
	return nil
}

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Period, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
