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

type budgetBody struct {
	CategoryID *int64           `json:"category_id"`
	Amount     *decimal.Decimal `json:"amount"`
	Period     *string          `json:"period"`
	StartDate  *string          `json:"start_date"`
	EndDate    *string          `json:"end_date"`
}

// apply merges the set fields of body into b.
func (body budgetBody) apply(b *models.Budget) error {
	if body.CategoryID != nil {
		b.CategoryID = *body.CategoryID
	}
	if body.Amount != nil {
		b.Amount = *body.Amount
	}
	if body.Period != nil {
		b.Period = strings.TrimSpace(*body.Period)
	}
	if body.StartDate != nil {
		start, err := util.ParseDate(*body.StartDate)
		if err != nil {
			return err
		}
		b.StartDate = start
	}
	if body.EndDate != nil {
		end, err := util.ParseOptionalDate(body.EndDate)
		if err != nil {
			return err
		}
		b.EndDate = end
	}

	if err := util.ValidateMoney("amount", b.Amount); err != nil {
		return err
	}
	switch {
	case b.CategoryID <= 0:
		return apperr.Validationf("category_id is required")
	case !b.Amount.IsPositive():
		return apperr.Validationf("amount must be positive")
	case b.StartDate.IsZero():
		return apperr.Validationf("start_date is required")
	case b.EndDate != nil && b.EndDate.Before(b.StartDate):
		return apperr.Validationf("end_date is before start_date")
	}
	if b.Period == "" {
		b.Period = "monthly"
	}
	return nil
}

func CreateBudget(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var body budgetBody
		if err := decodeJSON(r, &body); err != nil {
			fail(w, log, err, "failed to decode create budget request body", logrus.Fields{"user_id": userID})
			return
		}
		budget := &models.Budget{UserID: userID}
		if err := body.apply(budget); err != nil {
			fail(w, log, err, "create budget rejected", logrus.Fields{"user_id": userID})
			return
		}
		if _, err := db.GetCategoryByID(r.Context(), pool, userID, budget.CategoryID); err != nil {
			fail(w, log, err, "budget category not visible", logrus.Fields{"user_id": userID, "category_id": budget.CategoryID})
			return
		}
		created, err := db.CreateBudget(r.Context(), pool, budget)
		if err != nil {
			fail(w, log, err, "failed to create budget", logrus.Fields{"user_id": userID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "budget_id": created.ID, "category_id": created.CategoryID}).Info("created budget")
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetBudgetByID(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		budgetID, err := pathID(r, "budget_id")
		if err != nil {
			fail(w, log, err, "invalid budget id param", logrus.Fields{"user_id": userID})
			return
		}
		budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
		if err != nil {
			fail(w, log, err, "failed to get budget", logrus.Fields{"user_id": userID, "budget_id": budgetID})
			return
		}
		util.WriteJSON(w, http.StatusOK, budget)
	}
}

func GetAllBudgetsForUser(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get budgets", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, budgets)
	}
}

func UpdateBudget(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		budgetID, err := pathID(r, "budget_id")
		if err != nil {
			fail(w, log, err, "invalid budget id param", logrus.Fields{"user_id": userID})
			return
		}
		var body budgetBody
		if err := decodeJSON(r, &body); err != nil {
			fail(w, log, err, "failed to decode update budget request body", logrus.Fields{"user_id": userID})
			return
		}
		budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
		if err != nil {
			fail(w, log, err, "failed to get budget", logrus.Fields{"user_id": userID, "budget_id": budgetID})
			return
		}
		if err := body.apply(budget); err != nil {
			fail(w, log, err, "update budget rejected", logrus.Fields{"user_id": userID, "budget_id": budgetID})
			return
		}
		if body.CategoryID != nil {
			if _, err := db.GetCategoryByID(r.Context(), pool, userID, budget.CategoryID); err != nil {
				fail(w, log, err, "budget category not visible", logrus.Fields{"user_id": userID, "category_id": budget.CategoryID})
				return
			}
		}
		updated, err := db.UpdateBudget(r.Context(), pool, budget)
		if err != nil {
			fail(w, log, err, "failed to update budget", logrus.Fields{"user_id": userID, "budget_id": budgetID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "budget_id": budgetID}).Info("updated budget")
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		budgetID, err := pathID(r, "budget_id")
		if err != nil {
			fail(w, log, err, "invalid budget id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.DeleteBudget(r.Context(), pool, userID, budgetID); err != nil {
			fail(w, log, err, "failed to delete budget", logrus.Fields{"user_id": userID, "budget_id": budgetID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "budget_id": budgetID}).Info("deleted budget")
		w.WriteHeader(http.StatusNoContent)
	}
}
