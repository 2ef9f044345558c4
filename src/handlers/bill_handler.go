package handlers

import (
	"net/http"
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	db "github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/db/sql"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type billBody struct {
	Name       *string          `json:"name"`
	Amount     *decimal.Decimal `json:"amount"`
	DueDate    *string          `json:"due_date"`
	Recurrence *string          `json:"recurrence"`
	CategoryID *int64           `json:"category_id"`
	AccountID  *int64           `json:"account_id"`
	IsPaid     *bool            `json:"is_paid"`
}

func (body billBody) apply(b *models.Bill) error {
	if body.Name != nil {
		b.Name = strings.TrimSpace(*body.Name)
	}
	if body.Amount != nil {
		b.Amount = *body.Amount
	}
	if body.DueDate != nil {
		due, err := util.ParseDate(*body.DueDate)
		if err != nil {
			return err
		}
		b.DueDate = due
	}
	if body.Recurrence != nil {
		b.Recurrence = body.Recurrence
	}
	if body.CategoryID != nil {
		b.CategoryID = body.CategoryID
	}
	if body.AccountID != nil {
		b.AccountID = body.AccountID
	}
	if body.IsPaid != nil {
		b.IsPaid = *body.IsPaid
	}

	if err := util.ValidateMoney("amount", b.Amount); err != nil {
		return err
	}
	switch {
	case b.Name == "":
		return apperr.Validationf("name is required")
	case !b.Amount.IsPositive():
		return apperr.Validationf("amount must be positive")
	case b.DueDate.IsZero():
		return apperr.Validationf("due_date is required")
	}
	return nil
}

// checkBillRefs makes sure a bill only links to the caller's own account and
// to visible categories.
func checkBillRefs(r *http.Request, pool *pgxpool.Pool, userID int64, b *models.Bill) error {
	if b.AccountID != nil {
		if _, err := db.GetAccountByID(r.Context(), pool, userID, *b.AccountID); err != nil {
			return err
		}
	}
	if b.CategoryID != nil {
		if _, err := db.GetCategoryByID(r.Context(), pool, userID, *b.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

func CreateBill(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var body billBody
		if err := decodeJSON(r, &body); err != nil {
			fail(w, log, err, "failed to decode create bill request body", logrus.Fields{"user_id": userID})
			return
		}
		bill := &models.Bill{UserID: userID}
		if err := body.apply(bill); err != nil {
			fail(w, log, err, "create bill rejected", logrus.Fields{"user_id": userID})
			return
		}
		if err := checkBillRefs(r, pool, userID, bill); err != nil {
			fail(w, log, err, "create bill rejected", logrus.Fields{"user_id": userID})
			return
		}
		created, err := db.CreateBill(r.Context(), pool, bill)
		if err != nil {
			fail(w, log, err, "failed to create bill", logrus.Fields{"user_id": userID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "bill_id": created.ID}).Info("created bill")
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetBills lists bills by due date. ?unpaid=true hides paid bills.
func GetBills(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		unpaidOnly := r.URL.Query().Get("unpaid") == "true"
		bills, err := db.GetBillsForUser(r.Context(), pool, userID, unpaidOnly)
		if err != nil {
			fail(w, log, err, "failed to get bills", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, bills)
	}
}

func GetBill(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		billID, err := pathID(r, "bill_id")
		if err != nil {
			fail(w, log, err, "invalid bill id param", logrus.Fields{"user_id": userID})
			return
		}
		bill, err := db.GetBillByID(r.Context(), pool, userID, billID)
		if err != nil {
			fail(w, log, err, "failed to get bill", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		util.WriteJSON(w, http.StatusOK, bill)
	}
}

func UpdateBill(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		billID, err := pathID(r, "bill_id")
		if err != nil {
			fail(w, log, err, "invalid bill id param", logrus.Fields{"user_id": userID})
			return
		}
		var body billBody
		if err := decodeJSON(r, &body); err != nil {
			fail(w, log, err, "failed to decode update bill request body", logrus.Fields{"user_id": userID})
			return
		}
		bill, err := db.GetBillByID(r.Context(), pool, userID, billID)
		if err != nil {
			fail(w, log, err, "failed to get bill", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		if err := body.apply(bill); err != nil {
			fail(w, log, err, "update bill rejected", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		if err := checkBillRefs(r, pool, userID, bill); err != nil {
			fail(w, log, err, "update bill rejected", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		updated, err := db.UpdateBill(r.Context(), pool, bill)
		if err != nil {
			fail(w, log, err, "failed to update bill", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

// PayBill marks a bill paid. No transaction is posted.
func PayBill(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		billID, err := pathID(r, "bill_id")
		if err != nil {
			fail(w, log, err, "invalid bill id param", logrus.Fields{"user_id": userID})
			return
		}
		bill, err := db.MarkBillPaid(r.Context(), pool, userID, billID)
		if err != nil {
			fail(w, log, err, "failed to mark bill paid", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "bill_id": billID}).Info("bill paid")
		util.WriteJSON(w, http.StatusOK, bill)
	}
}

func DeleteBill(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		billID, err := pathID(r, "bill_id")
		if err != nil {
			fail(w, log, err, "invalid bill id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.DeleteBill(r.Context(), pool, userID, billID); err != nil {
			fail(w, log, err, "failed to delete bill", logrus.Fields{"user_id": userID, "bill_id": billID})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
