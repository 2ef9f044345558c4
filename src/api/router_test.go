package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/events"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/handlers"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/ledger/memory"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/middleware"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/util"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const testSecret = "router-test-secret"

type stubUsers struct{ known map[int64]bool }

func (s *stubUsers) Get(_ context.Context, id int64) (*models.User, error) {
	if !s.known[id] {
		return nil, apperr.NotFoundf("user %d not found", id)
	}
	return &models.User{ID: id}, nil
}

func (s *stubUsers) Evict(id int64) { delete(s.known, id) }

type fixture struct {
	router *chi.Mux
	store  *memory.Store
	rec    *events.Recorder
}

func newFixture(t *testing.T, readOnly bool) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := memory.NewStore()
	rec := &events.Recorder{}
	r := NewRouter(Deps{
		Ledger:         ledger.New(store, rec, log),
		Users:          &stubUsers{known: map[int64]bool{1: true, 2: true}},
		Tokens:         handlers.TokenConfig{Secret: testSecret, TTL: time.Hour},
		AllowedOrigins: []string{"*"},
		ReadOnly:       readOnly,
		Log:            log,
	})
	return &fixture{router: r, store: store, rec: rec}
}

func (f *fixture) do(t *testing.T, userID int64, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if userID > 0 {
		token, err := middleware.NewToken(testSecret, userID, "user", time.Hour)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t, false)
	if rec := f.do(t, 0, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health status=%d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t, false)
	for _, path := range []string{"/api/transactions", "/api/accounts", "/api/settings"} {
		if rec := f.do(t, 0, http.MethodGet, path, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: status=%d", path, rec.Code)
		}
	}
	// Token for a user that no longer exists.
	if rec := f.do(t, 99, http.MethodGet, "/api/transactions", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status=%d", rec.Code)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	f := newFixture(t, false)
	acct := f.store.CreateAccount(1, "Checking", "checking", "USD", decimal.RequireFromString("1200.00"))
	coffee := f.store.AddCategory(nil, "Coffee")
	f.store.AddKeywordRule("starbucks", coffee.ID)

	body := `{"account_id":` + itoa(acct.ID) + `,"date":"2025-03-01","amount":"-50.00","type":"expense","description":"Starbucks Reserve"}`
	rec := f.do(t, 1, http.MethodPost, "/api/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", rec.Code, rec.Body.String())
	}
	created := decode[models.Transaction](t, rec)
	if created.CategoryID == nil || *created.CategoryID != coffee.ID {
		t.Fatalf("expected auto category %d, got %v", coffee.ID, created.CategoryID)
	}
	if a, _ := f.store.Account(acct.ID); !a.CurrentBalance.Equal(decimal.RequireFromString("1150")) {
		t.Fatalf("balance after create = %s", a.CurrentBalance)
	}

	path := "/api/transactions/" + itoa(created.ID)
	rec = f.do(t, 1, http.MethodPut, path, `{"amount":-75}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rec.Code, rec.Body.String())
	}
	if a, _ := f.store.Account(acct.ID); !a.CurrentBalance.Equal(decimal.RequireFromString("1125")) {
		t.Fatalf("balance after update = %s", a.CurrentBalance)
	}

	if rec := f.do(t, 2, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("other user read: status=%d", rec.Code)
	}

	rec = f.do(t, 1, http.MethodGet, "/api/transactions?account_id="+itoa(acct.ID)+"&from=2025-03-01&to=2025-03-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status=%d", rec.Code)
	}
	if list := decode[[]models.Transaction](t, rec); len(list) != 1 {
		t.Fatalf("list returned %d transactions", len(list))
	}

	if rec := f.do(t, 1, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", rec.Code)
	}
	if a, _ := f.store.Account(acct.ID); !a.CurrentBalance.Equal(decimal.RequireFromString("1200")) {
		t.Fatalf("balance after delete = %s", a.CurrentBalance)
	}
	if len(f.rec.Events()) != 3 {
		t.Fatalf("expected 3 events, got %d", len(f.rec.Events()))
	}
}

func TestTransactionErrors(t *testing.T) {
	f := newFixture(t, false)
	acct := f.store.CreateAccount(1, "Checking", "checking", "USD", decimal.Zero)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		want     int
		wantKind string
	}{
		{"malformed body", http.MethodPost, "/api/transactions", `{"amount":`, http.StatusBadRequest, "validation_error"},
		{"missing fields", http.MethodPost, "/api/transactions", `{"type":"expense"}`, http.StatusBadRequest, "validation_error"},
		{"bad date", http.MethodPost, "/api/transactions", `{"account_id":` + itoa(acct.ID) + `,"date":"03/01/2025","amount":1,"type":"income"}`, http.StatusBadRequest, "validation_error"},
		{"unknown account", http.MethodPost, "/api/transactions", `{"account_id":999,"date":"2025-03-01","amount":1,"type":"income"}`, http.StatusNotFound, "not_found"},
		{"bad id", http.MethodGet, "/api/transactions/abc", "", http.StatusBadRequest, "validation_error"},
		{"missing transaction", http.MethodDelete, "/api/transactions/404", "", http.StatusNotFound, "not_found"},
		{"bad filter", http.MethodGet, "/api/transactions?account_id=x", "", http.StatusBadRequest, "validation_error"},
		{"inverted range", http.MethodGet, "/api/transactions?from=2025-03-10&to=2025-03-01", "", http.StatusBadRequest, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, 1, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want %d body=%s", rec.Code, tt.want, rec.Body.String())
			}
			if got := decode[util.ErrorResponse](t, rec); string(got.Error) != tt.wantKind {
				t.Fatalf("error kind=%q want %q", got.Error, tt.wantKind)
			}
		})
	}
	if a, _ := f.store.Account(acct.ID); !a.CurrentBalance.IsZero() {
		t.Fatalf("failed requests changed the balance: %s", a.CurrentBalance)
	}
}

func TestInvalidPathParamsRejectedBeforeStorage(t *testing.T) {
	f := newFixture(t, false)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/accounts/0"},
		{http.MethodGet, "/api/accounts/x/reconcile"},
		{http.MethodDelete, "/api/categories/nope"},
		{http.MethodGet, "/api/budgets/-1"},
		{http.MethodPost, "/api/bills/abc/pay"},
		{http.MethodPost, "/api/notifications/zz/read"},
		{http.MethodDelete, "/api/keyword-rules/q"},
	} {
		if rec := f.do(t, 1, tc.method, tc.path, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: status=%d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestMoneyFieldsRejectedBeforeStorage(t *testing.T) {
	f := newFixture(t, false)
	acct := f.store.CreateAccount(1, "Checking", "checking", "USD", decimal.RequireFromString("1200.00"))
	tests := []struct {
		name, path, body string
	}{
		{"sub-cent transaction", "/api/transactions", `{"account_id":` + itoa(acct.ID) + `,"date":"2025-03-01","amount":"-0.005","type":"expense"}`},
		{"huge transaction", "/api/transactions", `{"account_id":` + itoa(acct.ID) + `,"date":"2025-03-01","amount":"1e15","type":"income"}`},
		{"sub-cent initial balance", "/api/accounts", `{"name":"Savings","type":"savings","initial_balance":"10.001"}`},
		{"huge initial balance", "/api/accounts", `{"name":"Savings","type":"savings","initial_balance":"1e15"}`},
		{"sub-cent budget", "/api/budgets", `{"category_id":1,"amount":"99.999","start_date":"2025-03-01"}`},
		{"huge bill", "/api/bills", `{"name":"Rent","amount":"1e15","due_date":"2025-03-01"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, 1, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
			}
			if got := decode[util.ErrorResponse](t, rec); got.Error != apperr.Validation {
				t.Fatalf("error kind=%q", got.Error)
			}
		})
	}
	if a, _ := f.store.Account(acct.ID); !a.CurrentBalance.Equal(decimal.RequireFromString("1200.00")) {
		t.Fatalf("rejected amounts changed the balance: %s", a.CurrentBalance)
	}
}

func TestDateOnlyToCoversWholeDay(t *testing.T) {
	f := newFixture(t, false)
	acct := f.store.CreateAccount(1, "Checking", "checking", "USD", decimal.Zero)
	for _, date := range []string{"2025-03-31T18:45:00Z", "2025-04-01T00:00:00Z"} {
		body := `{"account_id":` + itoa(acct.ID) + `,"date":"` + date + `","amount":"-5","type":"expense"}`
		if rec := f.do(t, 1, http.MethodPost, "/api/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("create %s: status=%d body=%s", date, rec.Code, rec.Body.String())
		}
	}
	rec := f.do(t, 1, http.MethodGet, "/api/transactions?from=2025-03-31&to=2025-03-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status=%d", rec.Code)
	}
	list := decode[[]models.Transaction](t, rec)
	if len(list) != 1 || list[0].Date.Hour() != 18 {
		t.Fatalf("expected only the evening transaction, got %+v", list)
	}
}

func TestReadOnlyBlocksTransactionWrites(t *testing.T) {
	f := newFixture(t, true)
	acct := f.store.CreateAccount(1, "Checking", "checking", "USD", decimal.Zero)
	body := `{"account_id":` + itoa(acct.ID) + `,"date":"2025-03-01","amount":"5","type":"income"}`
	if rec := f.do(t, 1, http.MethodPost, "/api/transactions", body); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("write in read-only mode: status=%d", rec.Code)
	}
	if rec := f.do(t, 1, http.MethodGet, "/api/transactions", ""); rec.Code != http.StatusOK {
		t.Fatalf("read in read-only mode: status=%d", rec.Code)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
