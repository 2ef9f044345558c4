package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const secret = "test-secret"

type fakeUsers map[int64]bool

// downUserID simulates a user lookup against an unreachable database.
const downUserID = 13

func (f fakeUsers) Get(_ context.Context, id int64) (*models.User, error) {
	if id == downUserID {
		return nil, apperr.Wrap(errors.New("connection refused"), "database error")
	}
	if !f[id] {
		return nil, apperr.NotFoundf("user %d not found", id)
	}
	return &models.User{ID: id}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusInternalServerError)
		return
	}
	w.Write([]byte(strings.Repeat("x", int(id))))
}

func TestJWTAuthMiddleware(t *testing.T) {
	h := JWTAuthMiddleware(secret, fakeUsers{3: true}, quietLogger())(http.HandlerFunc(echoUserID))

	valid, err := NewToken(secret, 3, "alice", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	expired, _ := NewToken(secret, 3, "alice", -time.Minute)
	wrongKey, _ := NewToken("other", 3, "alice", time.Hour)
	deleted, _ := NewToken(secret, 9, "ghost", time.Hour)
	dbDown, _ := NewToken(secret, downUserID, "bob", time.Hour)
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 3}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"deleted user", "Bearer " + deleted, http.StatusUnauthorized},
		{"user lookup fails", "Bearer " + dbDown, http.StatusInternalServerError},
		{"alg none", "Bearer " + noneAlg, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "xxx" {
				t.Fatalf("user id not propagated: %q", rec.Body.String())
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware([]string{"https://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" || rec.Code != http.StatusTeapot {
		t.Fatalf("allowed origin not echoed: %v %d", rec.Header(), rec.Code)
	}

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" || rec.Code != http.StatusOK {
		t.Fatalf("preflight from unknown origin: %v %d", rec.Header(), rec.Code)
	}
}

func TestReadOnlyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	tests := []struct {
		enabled bool
		method  string
		path    string
		want    int
	}{
		{false, http.MethodPost, "/api/transactions", http.StatusNoContent},
		{true, http.MethodGet, "/api/transactions", http.StatusNoContent},
		{true, http.MethodPost, "/api/login", http.StatusNoContent},
		{true, http.MethodPost, "/api/transactions", http.StatusServiceUnavailable},
		{true, http.MethodDelete, "/api/accounts/1", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		ReadOnlyMiddleware(tt.enabled)(ok).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Fatalf("%v %s %s: status=%d want %d", tt.enabled, tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	h := chimw.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/accounts/7", nil))

	out := buf.String()
	for _, want := range []string{`"status":404`, `"path":"/api/accounts/7"`, `"request_id":`, `"level":"warning"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line %q missing %s", out, want)
		}
	}
}
