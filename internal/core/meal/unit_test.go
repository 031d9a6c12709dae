package meal_test

import (
	"testing"

	"meal-planner/internal/core/meal"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "g", "g"},
		{"gram alias", "gram", "g"},
		{"grams alias", "grams", "g"},
		{"gam alias", "gam", "g"},
		{"kilogram alias", "kilogram", "kg"},
		{"milliliter alias", "milliliters", "ml"},
		{"liter alias", "liter", "l"},
		{"uppercase", "G", "g"},
		{"mixed case with spaces", "  Grams ", "g"},
		{"countable unit untouched", "顆", "顆"},
		{"unknown unit untouched", "scoop", "scoop"},
		{"empty string", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := meal.NormalizeUnit(tc.raw)
			if got != tc.want {
				t.Errorf("NormalizeUnit(%q) = %q; want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestIsWeightOrVolume(t *testing.T) {
	tests := []struct {
		name string
		unit string
		want bool
	}{
		{"grams", "g", true},
		{"kilograms", "kg", true},
		{"milligrams", "mg", true},
		{"milliliters", "ml", true},
		{"liters", "l", true},
		{"alias resolves first", "gram", true},
		{"countable", "顆", false},
		{"portion", "份", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := meal.IsWeightOrVolume(tc.unit)
			if got != tc.want {
				t.Errorf("IsWeightOrVolume(%q) = %v; want %v", tc.unit, got, tc.want)
			}
		})
	}
}
