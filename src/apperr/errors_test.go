package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   Kind
		status int
		msg    string
	}{
		{Validationf("amount is required"), Validation, http.StatusBadRequest, "amount is required"},
		{NotFoundf("account %d not found", 7), NotFound, http.StatusNotFound, "account 7 not found"},
		{Conflictf("email already exists"), Conflict, http.StatusConflict, "email already exists"},
		{Wrap(errors.New("conn refused"), "insert transaction"), Storage, http.StatusInternalServerError, "internal error"},
		{errors.New("boom"), Storage, http.StatusInternalServerError, "internal error"},
	}
	for i, tc := range cases {
		if got := KindOf(tc.err); got != tc.kind {
			t.Fatalf("case %d: kind=%s want %s", i, got, tc.kind)
		}
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Fatalf("case %d: status=%d want %d", i, got, tc.status)
		}
		if got := Message(tc.err); got != tc.msg {
			t.Fatalf("case %d: message=%q want %q", i, got, tc.msg)
		}
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("update: %w", NotFoundf("transaction 3 not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("not found must not match validation")
	}
}

func TestWrapKeepsKind(t *testing.T) {
	orig := Validationf("bad category")
	if got := Wrap(orig, "insert"); got != orig {
		t.Fatalf("wrap should pass classified errors through, got %v", got)
	}
	if Wrap(nil, "x") != nil {
		t.Fatalf("wrap(nil) should be nil")
	}
	cause := errors.New("disk full")
	if !errors.Is(Wrap(cause, "insert"), cause) {
		t.Fatalf("wrapped storage error should unwrap to cause")
	}
}
