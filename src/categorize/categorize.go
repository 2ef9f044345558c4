// Package categorize assigns categories to transactions from keyword rules.
package categorize

import (
	"strings"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
)

// Categorize returns the category of the first rule whose keyword is a
// case-insensitive substring of description. Rules are scanned in the order
// given; there is no priority beyond position, so callers must pass them in
// insertion order.
func Categorize(description string, rules []models.KeywordRule) (int64, bool) {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return 0, false
	}
	for _, rule := range rules {
		kw := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if kw == "" {
			continue
		}
		if strings.Contains(desc, kw) {
			return rule.CategoryID, true // Stop at first matching rule
		}
	}
	return 0, false
}
