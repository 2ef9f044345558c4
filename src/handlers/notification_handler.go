package handlers

import (
	"net/http"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	db "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func CreateNotification(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var req struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		}
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode create notification request body", logrus.Fields{"user_id": userID})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			fail(w, log, apperr.Validationf("message is required"), "create notification rejected", logrus.Fields{"user_id": userID})
			return
		}
		if req.Kind == "" {
			req.Kind = "info"
		}
		created, err := db.CreateNotification(r.Context(), pool, userID, req.Kind, req.Message)
		if err != nil {
			fail(w, log, err, "failed to create notification", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetNotifications lists newest first. ?unread=true hides read ones.
func GetNotifications(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		unreadOnly := r.URL.Query().Get("unread") == "true"
		notifications, err := db.GetNotificationsForUser(r.Context(), pool, userID, unreadOnly)
		if err != nil {
			fail(w, log, err, "failed to get notifications", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, notifications)
	}
}

func MarkNotificationRead(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		id, err := pathID(r, "notification_id")
		if err != nil {
			fail(w, log, err, "invalid notification id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.MarkNotificationRead(r.Context(), pool, userID, id); err != nil {
			fail(w, log, err, "failed to mark notification read", logrus.Fields{"user_id": userID, "notification_id": id})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteNotification(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		id, err := pathID(r, "notification_id")
		if err != nil {
			fail(w, log, err, "invalid notification id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.DeleteNotification(r.Context(), pool, userID, id); err != nil {
			fail(w, log, err, "failed to delete notification", logrus.Fields{"user_id": userID, "notification_id": id})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
