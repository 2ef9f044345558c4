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

type categoryBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func CreateCategory(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		var req categoryBody
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode create category request body", logrus.Fields{"user_id": userID})
			return
		}
		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			fail(w, log, apperr.Validationf("name is required"), "create category rejected", logrus.Fields{"user_id": userID})
			return
		}
		var description string
		if req.Description != nil {
			description = *req.Description
		}
		created, err := db.CreateCategory(r.Context(), pool, userID, strings.TrimSpace(*req.Name), description)
		if err != nil {
			fail(w, log, err, "failed to create category", logrus.Fields{"user_id": userID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "category_id": created.ID}).Info("created category")
		util.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetCategories returns the global defaults plus the caller's own categories.
func GetCategories(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		categories, err := db.GetCategoriesForUser(r.Context(), pool, userID)
		if err != nil {
			fail(w, log, err, "failed to get categories", logrus.Fields{"user_id": userID})
			return
		}
		util.WriteJSON(w, http.StatusOK, categories)
	}
}

func GetCategory(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		categoryID, err := pathID(r, "category_id")
		if err != nil {
			fail(w, log, err, "invalid category id param", logrus.Fields{"user_id": userID})
			return
		}
		category, err := db.GetCategoryByID(r.Context(), pool, userID, categoryID)
		if err != nil {
			fail(w, log, err, "failed to get category", logrus.Fields{"user_id": userID, "category_id": categoryID})
			return
		}
		util.WriteJSON(w, http.StatusOK, category)
	}
}

func UpdateCategory(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		categoryID, err := pathID(r, "category_id")
		if err != nil {
			fail(w, log, err, "invalid category id param", logrus.Fields{"user_id": userID})
			return
		}
		var req categoryBody
		if err := decodeJSON(r, &req); err != nil {
			fail(w, log, err, "failed to decode update category request body", logrus.Fields{"user_id": userID})
			return
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			fail(w, log, apperr.Validationf("name must not be empty"), "update category rejected", logrus.Fields{"user_id": userID})
			return
		}
		updated, err := db.UpdateCategory(r.Context(), pool, userID, categoryID, req.Name, req.Description)
		if err != nil {
			fail(w, log, err, "failed to update category", logrus.Fields{"user_id": userID, "category_id": categoryID})
			return
		}
		util.WriteJSON(w, http.StatusOK, updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUserID(r)
		categoryID, err := pathID(r, "category_id")
		if err != nil {
			fail(w, log, err, "invalid category id param", logrus.Fields{"user_id": userID})
			return
		}
		if err := db.DeleteCategory(r.Context(), pool, userID, categoryID); err != nil {
			fail(w, log, err, "failed to delete category", logrus.Fields{"user_id": userID, "category_id": categoryID})
			return
		}
		log.WithFields(logrus.Fields{"user_id": userID, "category_id": categoryID}).Info("deleted category")
		w.WriteHeader(http.StatusNoContent)
	}
}
