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

type keywordRuleBody struct {
	Keyword    *string `json:"keyword"`
	CategoryID *int64  `json:"category_id"`
}

// Keyword rules are shared by every user, so a rule may only point at a
// global category.
func requireGlobalCategory(r *http.Request, pool *pgxpool.Pool, userID, categoryID int64) error {
	category, err := db.GetCategoryByID(r.Context(), pool, userID, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != nil {
		return apperr.Validationf("keyword rules can only target global categories")
	}
	return nil
}

func CreateKeywordRule(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var req keywordRuleBody
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode create keyword rule request body", logrus.Fields{"user_id": userID})
			return
		}
		if req.Keyword == nil || strings.TrimSpace(*req.Keyword) == "" || req.CategoryID == nil {
			fail(w, log, apperr.Validationf("keyword and category_id are required"), "create keyword rule rejected", logrus.Fields{"user_id": userID})
			return
		}
		if err := requireGlobalCategory(r, pool, userID, *req.CategoryID); err != nil {
			fail(w, log, err, "create keyword rule rejected", logrus.Fields{"user_id": userID, "category_id": *req.CategoryID})
			return
		}
		created, err := db.CreateKeywordRule(r.Context(), pool, strings.TrimSpace(*req.Keyword), *req.CategoryID)
		if err != nil {
			fail(w, log, err, "failed to create keyword rule", logrus.Fields{"user_id": userID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "rule_id": created.ID, "keyword": created.Keyword}).Info("created keyword rule")
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

func GetAllKeywordRules(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := db.GetAllKeywordRules(r.Context(), pool)
		if err != nil {
			fail(w, log, err, "failed to get keyword rules", logrus.Fields{"user_id": currentUserID(r)})
			return
		}
		util.WriteJSON(w, http.StatusOK, rules)
	}
}

func UpdateKeywordRule(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		ruleID, err := pathID(r, "rule_id")
		if err != nil {
			fail(w, log, err, "invalid rule id param", logrus.Fields{"user_id": userID})
			return
		}
		var req keywordRuleBody
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode update keyword rule request body", logrus.Fields{"user_id": userID})
			return
		}
		if req.Keyword != nil {
			kw := strings.TrimSpace(*req.Keyword)
			if kw == "" {
				fail(w, log, apperr.Validationf("keyword must not be empty"), "update keyword rule rejected", logrus.Fields{"user_id": userID})
				return
			}
			req.Keyword = &kw
		}
		if req.CategoryID != nil {
			if err := requireGlobalCategory(r, pool, userID, *req.CategoryID); err != nil {
				fail(w, log, err, "update keyword rule rejected", logrus.Fields{"user_id": userID, "category_id": *req.CategoryID})
				return
			}
		}
		updated, err := db.UpdateKeywordRule(r.Context(), pool, ruleID, req.Keyword, req.CategoryID)
		if err != nil {
			fail(w, log, err, "failed to update keyword rule", logrus.Fields{"user_id": userID, "rule_id": ruleID})
			return
		}
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteKeywordRule(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		ruleID, err := pathID(r, "rule_id")
		if err != nil {
			fail(w, log, err, "invalid rule id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.DeleteKeywordRule(r.Context(), pool, ruleID); err != nil {
			fail(w, log, err, "failed to delete keyword rule", logrus.Fields{"user_id": userID, "rule_id": ruleID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "rule_id": ruleID}).Info("deleted keyword rule")
		w.WriteHeader(http.StatusNoContent)
	}
}
