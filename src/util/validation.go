package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(14,2).
const moneyScale = 2

var maxMoney = decimal.New(1, 12)

var (
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	lowerRe   = regexp.MustCompile("[a-z]")
	upperRe   = regexp.MustCompile("[A-Z]")
	digitRe   = regexp.MustCompile("[0-9]")
	specialRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// ValidateMoney rejects amounts the money columns cannot hold exactly:
// more than two decimal places, or an absolute value of 1e12 or more.
func ValidateMoney(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(moneyScale)) {
		return apperr.Validationf("%s must have at most %d decimal places", field, moneyScale)
	}
	if v.Abs().GreaterThanOrEqual(maxMoney) {
		return apperr.Validationf("%s is out of range", field)
	}
	return nil
}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validationf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
}

// ParseEndDate is ParseDate for the upper bound of an inclusive range. A plain
// date covers the whole day, up to the last microsecond Postgres can store.
func ParseEndDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Add(24*time.Hour - time.Microsecond), nil
	}
	return ParseDate(s)
}

// ParseOptionalDate is ParseDate for optional fields; nil or blank yields nil.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseID parses a positive integer id from a path or query parameter.
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s %q", name, raw)
	}
	return id, nil
}
