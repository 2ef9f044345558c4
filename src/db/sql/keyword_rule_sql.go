package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func CreateKeywordRule(ctx context.Context, pool *pgxpool.Pool, keyword string, categoryID int64) (*models.KeywordRule, error) {
	query := `
		INSERT INTO keyword_rules (keyword, category_id)
		VALUES ($1, $2)
		RETURNING id, keyword, category_id
	`
	var r models.KeywordRule
	err := pool.QueryRow(ctx, query, keyword, categoryID).Scan(&r.ID, &r.Keyword, &r.CategoryID)
	if err != nil {
		return nil, dbError(err, "keyword rule")
	}
	return &r, nil
}

// GetAllKeywordRules returns rules in the order the categorizer evaluates them.
func GetAllKeywordRules(ctx context.Context, pool *pgxpool.Pool) ([]models.KeywordRule, error) {
	return queryKeywordRules(ctx, pool)
}

func queryKeywordRules(ctx context.Context, q querier) ([]models.KeywordRule, error) {
	rows, err := q.Query(ctx, `SELECT id, keyword, category_id FROM keyword_rules ORDER BY id`)
	if err != nil {
		return nil, dbError(err, "keyword rules")
	}
	defer rows.Close()

	rules := make([]models.KeywordRule, 0)
	for rows.Next() {
		var r models.KeywordRule
		if err := rows.Scan(&r.ID, &r.Keyword, &r.CategoryID); err != nil {
			return nil, dbError(err, "keyword rules")
		}
		rules = append(rules, r)
	}
	return rules, dbError(rows.Err(), "keyword rules")
}

func UpdateKeywordRule(ctx context.Context, pool *pgxpool.Pool, ruleID int64, keyword *string, categoryID *int64) (*models.KeywordRule, error) {
	query := `
		UPDATE keyword_rules
		SET keyword = COALESCE($1, keyword), category_id = COALESCE($2, category_id)
		WHERE id = $3
		RETURNING id, keyword, category_id
	`
	var r models.KeywordRule
	err := pool.QueryRow(ctx, query, keyword, categoryID, ruleID).Scan(&r.ID, &r.Keyword, &r.CategoryID)
	if err != nil {
		return nil, dbError(err, fmt.Sprintf("keyword rule %d", ruleID))
	}
	return &r, nil
}

func DeleteKeywordRule(ctx context.Context, pool *pgxpool.Pool, ruleID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM keyword_rules WHERE id = $1`, ruleID)
	if err != nil {
		return dbError(err, fmt.Sprintf("keyword rule %d", ruleID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("keyword rule %d", ruleID))
	}
	return nil
}
