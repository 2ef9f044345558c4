package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/middleware"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// TokenConfig signs the JWTs handed out at login and registration.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// UserEvicter drops a cached user after it changes or is deleted.
type UserEvicter interface {
	Evict(id int64)
}

func currentUserID(r *http.Request) int64 {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validationf("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return util.ParseID(name, chi.URLParam(r, name))
}

// fail logs err and writes it. Storage errors are logged at error level,
// caller mistakes at info.
func fail(w http.ResponseWriter, log logrus.FieldLogger, err error, msg string, fields logrus.Fields) {
	entry := log.WithFields(fields).WithError(err)
	if apperr.KindOf(err) == apperr.Storage {
		entry.Error(msg)
	} else {
		entry.Info(msg)
	}
	util.WriteError(w, err)
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
