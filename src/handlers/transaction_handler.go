package handlers

import (
	"net/http"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// transactionBody is the wire form of a transaction write. Dates arrive as
// YYYY-MM-DD or RFC 3339 strings.
type transactionBody struct {
	AccountID   *int64           `json:"account_id"`
	Date        *string          `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"category_id"`
	Recurrence  *string          `json:"recurrence"`
}

func CreateTransaction(l *ledger.Ledger, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var body transactionBody
		if err := decodeJSON(r, &body); err != nil {
			fail(w, log, err, "failed to decode create transaction request body", logrus.Fields{"user_id": userID})
			return
		}
		date, err := util.ParseOptionalDate(body.Date)
		if err != nil {
			fail(w, log, err, "invalid transaction date", logrus.Fields{"user_id": userID})
			return
		}

		req := models.CreateTransactionRequest{
			AccountID:  body.AccountID,
			Date:       date,
			Amount:     body.Amount,
			CategoryID: body.CategoryID,
			Recurrence: body.Recurrence,
		}
		if body.Type != nil {
			req.Type = *body.Type
		}
		if body.Description != nil {
			req.Description = *body.Description
		}

		created, err := l.CreateTransaction(r.Context(), userID, req)
		if err != nil {
			fail(w, log, err, "failed to create transaction", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetTransactions(l *ledger.Ledger, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		filter, err := parseTransactionFilter(r)
		if err != nil {
			fail(w, log, err, "invalid transaction filter", logrus.Fields{"user_id": userID})
			return
		}
		txns, err := l.ListTransactions(r.Context(), userID, filter)
		if err != nil {
			fail(w, log, err, "failed to list transactions", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, txns)
	}
}

func GetTransaction(l *ledger.Ledger, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		id, err := pathID(r, "transaction_id")
		if err != nil {
			fail(w, log, err, "invalid transaction id param", logrus.Fields{"user_id": userID})
			return
		}
		txn, err := l.GetTransaction(r.Context(), userID, id)
		if err != nil {
			fail(w, log, err, "failed to get transaction", logrus.Fields{"user_id": userID, "transaction_id": id})
			return
		}
		util.WriteJSON(w, http.StatusOK, txn)
	}
}

// UpdateTransaction applies a partial update; omitted fields keep their value.
func UpdateTransaction(l *ledger.Ledger, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		id, err := pathID(r, "transaction_id")
		if err != nil {
			fail(w, log, err, "invalid transaction id param", logrus.Fields{"user_id": userID})
			return
		}
		var body transactionBody
		if err := decodeJSON(r, &body); err != nil {
			fail(w, log, err, "failed to decode update transaction request body", logrus.Fields{"user_id": userID})
			return
		}
		var req models.UpdateTransactionRequest
		if body.Date != nil {
			date, err := util.ParseDate(*body.Date)
			if err != nil {
				fail(w, log, err, "invalid transaction date", logrus.Fields{"user_id": userID})
				return
			}
			req.Date = &date
		}
		req.AccountID = body.AccountID
		req.Amount = body.Amount
		req.Type = body.Type
		req.Description = body.Description
		req.CategoryID = body.CategoryID
		req.Recurrence = body.Recurrence

		updated, err := l.UpdateTransaction(r.Context(), userID, id, req)
		if err != nil {
			fail(w, log, err, "failed to update transaction", logrus.Fields{"user_id": userID, "transaction_id": id})
			return
		}
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(l *ledger.Ledger, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		id, err := pathID(r, "transaction_id")
		if err != nil {
			fail(w, log, err, "invalid transaction id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := l.DeleteTransaction(r.Context(), userID, id); err != nil {
			fail(w, log, err, "failed to delete transaction", logrus.Fields{"user_id": userID, "transaction_id": id})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	var f models.TransactionFilter
	if v := q.Get("account_id"); v != "" {
		id, err := util.ParseID("account_id", v)
		if err != nil {
			return f, err
		}
		f.AccountID = &id
	}
	if v := q.Get("category_id"); v != "" {
		id, err := util.ParseID("category_id", v)
		if err != nil {
			return f, err
		}
		f.CategoryID = &id
	}
	if v := q.Get("type"); v != "" {
		f.Type = &v
	}
	if v := q.Get("from"); v != "" {
		t, err := util.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := util.ParseEndDate(v)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	return f, nil
}
