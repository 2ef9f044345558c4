package db

import (
	"context"
	"errors"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetUserSettings returns stored settings, or defaults if the user never saved any.
func GetUserSettings(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.UserSettings, error) {
	query := `
		SELECT user_id, currency, theme, notifications_enabled, updated_at
		FROM user_settings WHERE user_id = $1
	`
	var s models.UserSettings
	err := pool.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Currency, &s.Theme, &s.NotificationsEnabled, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.UserSettings{UserID: userID, Currency: "USD", Theme: "light", NotificationsEnabled: true}, nil
	}
	if err != nil {
		return nil, dbError(err, "settings")
	}
	return &s, nil
}

func UpsertUserSettings(ctx context.Context, pool *pgxpool.Pool, settings *models.UserSettings) (*models.UserSettings, error) {
	query := `
		INSERT INTO user_settings (user_id, currency, theme, notifications_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET currency = EXCLUDED.currency, theme = EXCLUDED.theme,
		    notifications_enabled = EXCLUDED.notifications_enabled, updated_at = NOW()
		RETURNING user_id, currency, theme, notifications_enabled, updated_at
	`
	var s models.UserSettings
	err := pool.QueryRow(ctx, query, settings.UserID, settings.Currency, settings.Theme, settings.NotificationsEnabled).
		Scan(&s.UserID, &s.Currency, &s.Theme, &s.NotificationsEnabled, &s.UpdatedAt)
	if err != nil {
		return nil, dbError(err, "settings")
	}
	return &s, nil
}
