package util

import (
	"encoding/json"
	"net/http"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
)

type ErrorResponse struct {
	Error   apperr.Kind `json:"error"`
	Message string      `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError renders err as {"error": kind, "message": ...} with the matching status.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, apperr.HTTPStatus(err), ErrorResponse{Error: apperr.KindOf(err), Message: apperr.Message(err)})
}

// WriteStatusError is for failures outside the apperr taxonomy, such as 401 and 403.
func WriteStatusError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": http.StatusText(status), "message": message})
}
