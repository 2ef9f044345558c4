package categorize

import (
	"testing"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/models"
)

func TestCategorize(t *testing.T) {
	rules := []models.KeywordRule{
		{ID: 1, Keyword: "Starbucks", CategoryID: 10},
		{ID: 2, Keyword: "Electric", CategoryID: 20},
		{ID: 3, Keyword: "Electricity", CategoryID: 30},
		{ID: 4, Keyword: "  ", CategoryID: 40},
	}

	tests := []struct {
		name        string
		description string
		wantID      int64
		wantOK      bool
	}{
		{"substring match", "Starbucks coffee run", 10, true},
		{"case insensitive", "STARBUCKS #442", 10, true},
		{"first match wins over longer keyword", "Electricity bill", 20, true},
		{"no match", "Grocery store", 0, false},
		{"empty description", "", 0, false},
		{"blank description", "   ", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Categorize(tt.description, rules)
			if id != tt.wantID || ok != tt.wantOK {
				t.Fatalf("Categorize(%q) = (%d, %v), want (%d, %v)", tt.description, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestCategorizeOrderDecides(t *testing.T) {
	rules := []models.KeywordRule{
		{ID: 1, Keyword: "Electricity", CategoryID: 30},
		{ID: 2, Keyword: "Electric", CategoryID: 20},
	}
	if id, _ := Categorize("Electricity bill", rules); id != 30 {
		t.Fatalf("expected rule order to decide, got category %d", id)
	}
}

func TestCategorizeNoRules(t *testing.T) {
	if _, ok := Categorize("anything", nil); ok {
		t.Fatalf("expected no match with empty rule set")
	}
}
