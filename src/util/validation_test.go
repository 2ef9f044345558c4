package util

import (
	"testing"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/shopspring/decimal"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		pw   string
		want bool
	}{
		{"Str0ng!pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"NoDigits!!", false},
		{"NoSpecial123", false},
	}
	for _, tt := range tests {
		if got := ValidatePassword(tt.pw); got != tt.want {
			t.Fatalf("ValidatePassword(%q) = %v, want %v", tt.pw, got, tt.want)
		}
	}
}

func TestValidateEmailAndUsername(t *testing.T) {
	if !ValidateEmail("a.b+c@example.co") || ValidateEmail("not-an-email") {
		t.Fatalf("email validation wrong")
	}
	if ValidateUsername("ab") || !ValidateUsername("alice") {
		t.Fatalf("username validation wrong")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-14")
	if err != nil || !got.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDate(date) = %v, %v", got, err)
	}
	got, err = ParseDate("2025-03-14T10:30:00+02:00")
	if err != nil || !got.Equal(time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("ParseDate(rfc3339) = %v, %v", got, err)
	}
	if _, err := ParseDate("14/03/2025"); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if d, err := ParseOptionalDate(nil); d != nil || err != nil {
		t.Fatalf("nil optional date = %v, %v", d, err)
	}
	blank := " "
	if d, err := ParseOptionalDate(&blank); d != nil || err != nil {
		t.Fatalf("blank optional date = %v, %v", d, err)
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("account_id", "17"); err != nil || id != 17 {
		t.Fatalf("ParseID = %d, %v", id, err)
	}
	for _, raw := range []string{"", "abc", "0", "-4"} {
		if _, err := ParseID("account_id", raw); apperr.KindOf(err) != apperr.Validation {
			t.Fatalf("ParseID(%q) should fail validation, got %v", raw, err)
		}
	}
}

func TestValidateMoney(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"-50.00", true},
		{"12.500", true},
		{"999999999999.99", true},
		{"-999999999999.99", true},
		{"-0.005", false},
		{"0.001", false},
		{"1e15", false},
		{"1000000000000", false},
		{"-1000000000000.00", false},
	}
	for _, tt := range tests {
		err := ValidateMoney("amount", decimal.RequireFromString(tt.in))
		if tt.want && err != nil {
			t.Fatalf("ValidateMoney(%s) = %v", tt.in, err)
		}
		if !tt.want && apperr.KindOf(err) != apperr.Validation {
			t.Fatalf("ValidateMoney(%s) should fail validation, got %v", tt.in, err)
		}
	}
}

func TestParseEndDate(t *testing.T) {
	got, err := ParseEndDate("2025-03-31")
	want := time.Date(2025, 3, 31, 23, 59, 59, 999999000, time.UTC)
	if err != nil || !got.Equal(want) {
		t.Fatalf("ParseEndDate(date) = %v, %v", got, err)
	}
	got, err = ParseEndDate("2025-03-31T12:00:00Z")
	if err != nil || !got.Equal(time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseEndDate(rfc3339) = %v, %v", got, err)
	}
	if _, err := ParseEndDate("31/03/2025"); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
