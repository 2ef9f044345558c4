package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, userID int64, name, description string) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, description
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, userID, name, description).Scan(&c.ID, &c.UserID, &c.Name, &c.Description)
	if err != nil {
		return nil, dbError(err, "category")
	}
	return &c, nil
}

// GetCategoryByID returns a global category or one owned by userID.
func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int64) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, description
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2)
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, categoryID, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Description)
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("category %d", categoryID))
	}
	return &c, nil
}

// GetCategoriesForUser lists the global categories followed by the user's own.
func GetCategoriesForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, description
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY user_id NULLS FIRST, id
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dbError(err, "categories")
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description); err != nil {
			return nil, dbError(err, "categories")
		}
		categories = append(categories, c)
	}
	return categories, dbError(rows.Err(), "categories")
}

// UpdateCategory only touches categories the user owns; global ones report NotFound.
func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int64, name, description *string) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name), description = COALESCE($2, description)
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, name, description
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, name, description, categoryID, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Description)
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("category %d", categoryID))
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("category %d", categoryID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("category %d", categoryID))
	}
	return nil
}
