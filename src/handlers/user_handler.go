package handlers

import (
	"net/http"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	db "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func GetUser(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get user", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, user)
	}
}

func UpdateUser(pool *pgxpool.Pool, users UserEvicter, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)

		var req struct {
			Email     *string `json:"email"`
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
		}
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode update user request body", logrus.Fields{"user_id": userID})
			return
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if !util.ValidateEmail(email) {
				fail(w, log, apperr.Validationf("invalid email format"), "email validation failed during user update", logrus.Fields{"user_id": userID})
				return
			}
			req.Email = &email
		}

		user, err := db.UpdateUser(r.Context(), pool, userID, req.FirstName, req.LastName, req.Email)
		if err != nil {
			fail(w, log, err, "failed to update user profile", logrus.Fields{"user_id": userID})
			return
		}
		users.Evict(userID)

		log.WithField("user_id", userID).Info("user profile updated")
		util.WriteJSON(w, http.StatusOK, user)
	}
}

func ChangePassword(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)

		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode change password request body", logrus.Fields{"user_id": userID})
			return
		}
		if !util.ValidatePassword(req.NewPassword) {
			fail(w, log, apperr.Validationf("password must be at least 8 characters with uppercase, lowercase, digit, and special character"),
				"password validation failed during change password", logrus.Fields{"user_id": userID})
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get user for password change", logrus.Fields{"user_id": userID})
			return
		}
		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)); err != nil {
			log.WithField("user_id", userID).Warn("invalid current password attempt")
			util.WriteStatusError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			fail(w, log, apperr.Wrap(err, "hash password"), "failed to hash new password", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.UpdatePassword(r.Context(), pool, userID, string(hashedPassword)); err != nil {
			fail(w, log, err, "failed to update user password", logrus.Fields{"user_id": userID})
			return
		}

		log.WithField("user_id", userID).Info("user password changed")
		util.WriteJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
	}
}

// DeleteUser removes the caller's account and all data owned by it.
func DeleteUser(pool *pgxpool.Pool, users UserEvicter, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)

		if err := db.DeleteUser(r.Context(), pool, userID); err != nil {
			fail(w, log, err, "failed to delete user", logrus.Fields{"user_id": userID})
			return
		}
		users.Evict(userID)

		log.WithField("user_id", userID).Info("user deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
