package handlers

import (
	"net/http"
	"strings"

	db "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func GetSettings(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		settings, err := db.GetUserSettings(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get settings", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, settings)
	}
}

// UpdateSettings merges the given fields over the current settings and saves them.
func UpdateSettings(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var req struct {
			Currency             *string `json:"currency"`
			Theme                *string `json:"theme"`
			NotificationsEnabled *bool   `json:"notifications_enabled"`
		}
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode update settings request body", logrus.Fields{"user_id": userID})
			return
		}
		settings, err := db.GetUserSettings(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get settings", logrus.Fields{"user_id": userID})
			return
		}
		if req.Currency != nil && strings.TrimSpace(*req.Currency) != "" {
			settings.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
		}
		if req.Theme != nil && strings.TrimSpace(*req.Theme) != "" {
			settings.Theme = strings.TrimSpace(*req.Theme)
		}
		if req.NotificationsEnabled != nil {
			settings.NotificationsEnabled = *req.NotificationsEnabled
		}
		saved, err := db.UpsertUserSettings(r.Context(), pool, settings)
		if err != nil {
			fail(w, log, err, "failed to save settings", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, saved)
	}
}
