package db

import (
	"context"
	"fmt"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateNotification(ctx context.Context, pool *pgxpool.Pool, userID int64, kind, message string) (*models.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, kind, message)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, kind, message, is_read, created_at
	`
	var n models.Notification
	err := pool.QueryRow(ctx, query, userID, kind, message).Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, dbError(err, "notification")
	}
	return &n, nil
}

func GetNotificationsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64, unreadOnly bool) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, kind, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := pool.Query(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, dbError(err, "notifications")
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, dbError(err, "notifications")
		}
		notifications = append(notifications, n)
	}
	return notifications, dbError(rows.Err(), "notifications")
}

func MarkNotificationRead(ctx context.Context, pool *pgxpool.Pool, userID, notificationID int64) error {
	cmd, err := pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("notification %d", notificationID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("notification %d", notificationID))
	}
	return nil
}

func DeleteNotification(ctx context.Context, pool *pgxpool.Pool, userID, notificationID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return dbError(err, fmt.Sprintf("notification %d", notificationID))
	}
	if cmd.RowsAffected() == 0 {
		return dbError(pgx.ErrNoRows, fmt.Sprintf("notification %d", notificationID))
	}
	return nil
}
