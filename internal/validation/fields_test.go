package validation

import (
	"strings"
	"testing"
	"time"
)

func TestIsValidClientField(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty", "", false},
		{"one char", "a", false},
		{"two chars", "mx", true},
		{"fifty chars", strings.Repeat("a", 50), true},
		{"fifty one chars", strings.Repeat("a", 51), false},
		{"multibyte counted as runes", strings.Repeat("й", 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidClientField(tt.value); got != tt.want {
				t.Errorf("IsValidClientField(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsValidPurchaseCountry(t *testing.T) {
	if IsValidPurchaseCountry("M") {
		t.Error("single character country must be invalid")
	}
	if !IsValidPurchaseCountry("MX") {
		t.Error("two character country must be valid")
	}
}

func TestParsePurchaseDate(t *testing.T) {
	d, err := ParsePurchaseDate("2024-01-01")
	if err != nil {
		t.Fatalf("parse valid date: %v", err)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("2024-01-01 weekday = %s, want Monday", d.Weekday())
	}

	if _, err := ParsePurchaseDate("01/01/2024"); err == nil {
		t.Error("expected error for wrong date format")
	}
	if _, err := ParsePurchaseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}
