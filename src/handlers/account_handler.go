package handlers

import (
	"net/http"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	db "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func CreateAccount(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var req struct {
			Name           string           `json:"name"`
			Type           string           `json:"type"`
			InitialBalance *decimal.Decimal `json:"initial_balance"`
			Currency       string           `json:"currency"`
		}
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode create account request body", logrus.Fields{"user_id": userID})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Type = strings.TrimSpace(req.Type)
		if req.Name == "" || req.Type == "" {
			fail(w, log, apperr.Validationf("name and type are required"), "create account rejected", logrus.Fields{"user_id": userID})
			return
		}
		if req.Currency == "" {
			req.Currency = "USD"
		}
		initial := decimal.Zero
		if req.InitialBalance != nil {
			initial = *req.InitialBalance
		}
		if err := util.ValidateMoney("initial_balance", initial); err != nil {
			fail(w, log, err, "create account rejected", logrus.Fields{"user_id": userID})
			return
		}

		created, err := db.CreateAccount(r.Context(), pool, &models.Account{
			UserID:         userID,
			Name:           req.Name,
			Type:           req.Type,
			InitialBalance: initial,
			Currency:       strings.ToUpper(req.Currency),
		})
		if err != nil {
			fail(w, log, err, "failed to create account", logrus.Fields{"user_id": userID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "account_id": created.ID}).Info("created account")
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetAccounts(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		accounts, err := db.GetAccountsForUser(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get accounts", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, accounts)
	}
}

func GetAccount(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		accountID, err := pathID(r, "account_id")
		if err != nil {
			fail(w, log, err, "invalid account id param", logrus.Fields{"user_id": userID})
			return
		}
		account, err := db.GetAccountByID(r.Context(), pool, userID, accountID)
		if err != nil {
			fail(w, log, err, "failed to get account", logrus.Fields{"user_id": userID, "account_id": accountID})
			return
		}
		util.WriteJSON(w, http.StatusOK, account)
	}
}

// UpdateAccount edits name, type and currency. Balance fields in the body are ignored.
func UpdateAccount(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		accountID, err := pathID(r, "account_id")
		if err != nil {
			fail(w, log, err, "invalid account id param", logrus.Fields{"user_id": userID})
			return
		}
		var upd models.AccountUpdate
		if err := decodeJSON(r, &upd); err != nil {
			fail(w, log, err, "failed to decode update account request body", logrus.Fields{"user_id": userID})
			return
		}
		if (upd.Name != nil && strings.TrimSpace(*upd.Name) == "") || (upd.Type != nil && strings.TrimSpace(*upd.Type) == "") {
			fail(w, log, apperr.Validationf("name and type must not be empty"), "update account rejected", logrus.Fields{"user_id": userID})
			return
		}

		updated, err := db.UpdateAccount(r.Context(), pool, userID, accountID, upd)
		if err != nil {
			fail(w, log, err, "failed to update account", logrus.Fields{"user_id": userID, "account_id": accountID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "account_id": accountID}).Info("updated account")
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteAccount(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		accountID, err := pathID(r, "account_id")
		if err != nil {
			fail(w, log, err, "invalid account id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.DeleteAccount(r.Context(), pool, userID, accountID); err != nil {
			fail(w, log, err, "failed to delete account", logrus.Fields{"user_id": userID, "account_id": accountID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "account_id": accountID}).Info("deleted account")
		w.WriteHeader(http.StatusNoContent)
	}
}

// ReconcileAccount reports whether the stored balance matches the transactions.
func ReconcileAccount(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		accountID, err := pathID(r, "account_id")
		if err != nil {
			fail(w, log, err, "invalid account id param", logrus.Fields{"user_id": userID})
			return
		}
		account, sum, err := db.GetAccountTransactionSum(r.Context(), pool, userID, accountID)
		if err != nil {
			fail(w, log, err, "failed to reconcile account", logrus.Fields{"user_id": userID, "account_id": accountID})
			return
		}
		rec := ledger.Reconcile(*account, sum)
		if !rec.Consistent {
			log.WithFields(logrus.Fields{
				"account_id": accountID,
				"stored":     rec.StoredBalance.String(),
				"expected":   rec.Expected.String(),
			}).Error("account balance drift detected")
		}
		util.WriteJSON(w, http.StatusOK, rec)
	}
}
