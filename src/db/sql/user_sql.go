package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, created_at, last_login`

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dbError(err, "user")
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, pool *pgxpool.Pool, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	u, err := scanUser(pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, dbError(err, "user")
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dbError(err, "user")
	}
	return u, nil
}

// CreateUser fails with Conflict when the email or username is taken.
func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	query := `
		INSERT INTO users (first_name, last_name, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var userID int64
	err := pool.QueryRow(ctx, query, req.FirstName, req.LastName, req.Username, req.Email, hashedPassword).Scan(&userID)
	if err != nil {
		return nil, dbError(err, "email or username")
	}

	return &models.RegisterResponse{
		ID:        userID,
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, nil
}

func UpdateUser(ctx context.Context, pool *pgxpool.Pool, userID int64, firstName, lastName, email *string) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($1, first_name), last_name = COALESCE($2, last_name), email = COALESCE($3, email)
		WHERE id = $4
		RETURNING ` + userColumns
	u, err := scanUser(pool.QueryRow(ctx, query, firstName, lastName, email, userID))
	if err != nil {
		return nil, dbError(err, "user")
	}
	return u, nil
}

func UpdatePassword(ctx context.Context, pool *pgxpool.Pool, userID int64, hashedPassword string) error {
	cmd, err := pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hashedPassword, userID)
	if err != nil {
		return dbError(err, "user")
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, "user")
	}
	return nil
}

func UpdateUserLastLogin(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	_, err := pool.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return dbError(err, "user")
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, "user")
	}
	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
