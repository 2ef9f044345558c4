package handlers

import (
	"net/http"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	db "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/middleware"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// validateRegistration normalizes req in place.
func validateRegistration(req *models.RegisterRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if !util.ValidateEmail(req.Email) {
		return apperr.Validationf("invalid email format")
	}
	if !util.ValidateUsername(req.Username) {
		return apperr.Validationf("username must be between 3 and 30 characters")
	}
	if !util.ValidatePassword(req.Password) {
		return apperr.Validationf("password must be at least 8 characters with uppercase, lowercase, digit, and special character")
	}
	return nil
}

func Register(pool *pgxpool.Pool, tokens TokenConfig, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode register request body", nil)
			return
		}
		if err := validateRegistration(&req); err != nil {
			fail(w, log, err, "registration rejected", logrus.Fields{"username": req.Username})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(w, log, apperr.Wrap(err, "hash password"), "failed to hash password", logrus.Fields{"username": req.Username})
			return
		}

		resp, err := db.CreateUser(r.Context(), pool, req, string(hashedPassword))
		if err != nil {
			fail(w, log, err, "failed to create user", logrus.Fields{"username": req.Username, "email": req.Email})
			return
		}

		log.WithFields(logrus.Fields{"user_id": resp.ID, "username": resp.Username}).Info("successful registration")

		tokenString, err := middleware.NewToken(tokens.Secret, resp.ID, resp.Username, tokens.TTL)
		if err != nil {
			fail(w, log, apperr.Wrap(err, "sign token"), "failed to generate JWT token", logrus.Fields{"user_id": resp.ID})
			return
		}

		util.WriteJSON(w, http.StatusCreated, map[string]any{
			"token": tokenString,
			"user":  resp,
		})
	}
}

func Login(pool *pgxpool.Pool, tokens TokenConfig, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			UsernameOrEmail string `json:"username"`
			Password        string `json:"password"`
		}
		if err := decodeJSON(r, &credentials); err != nil {
			fail(w, log, err, "failed to decode login request body", nil)
			return
		}

		login := strings.TrimSpace(credentials.UsernameOrEmail)
		user, err := db.GetUserByUsername(r.Context(), pool, login)
		if apperr.KindOf(err) == apperr.NotFound {
			user, err = db.GetUserByEmail(r.Context(), pool, login)
		}
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				log.WithField("login", login).Info("login for unknown user")
				util.WriteStatusError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			fail(w, log, err, "failed to look up user during login", logrus.Fields{"login": login})
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			log.WithFields(logrus.Fields{"login": login, "remote_addr": r.RemoteAddr}).Warn("invalid password attempt")
			util.WriteStatusError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		tokenString, err := middleware.NewToken(tokens.Secret, user.ID, user.Username, tokens.TTL)
		if err != nil {
			fail(w, log, apperr.Wrap(err, "sign token"), "failed to generate JWT token", logrus.Fields{"user_id": user.ID})
			return
		}

		if err := db.UpdateUserLastLogin(r.Context(), pool, user.ID); err != nil {
			log.WithField("user_id", user.ID).WithError(err).Error("failed to update last_login")
		}

		log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("successful login")
		util.WriteJSON(w, http.StatusOK, map[string]string{"token": tokenString})
	}
}
