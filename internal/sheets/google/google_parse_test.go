package google

import "testing"

func TestFindMonthRow(t *testing.T) {
	values := [][]any{
		{"Month"}, // header
		{1.0},
		{"2"},
		{},
		{"not a month"},
		{4},
	}

	tests := []struct {
		name  string
		month int
		want  int
	}{
		{"float cell", 1, 2},
		{"string cell", 2, 3},
		{"int cell after gaps", 4, 6},
		{"absent month", 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findMonthRow(values, tt.month); got != tt.want {
				t.Errorf("findMonthRow(%d) = %d, want %d", tt.month, got, tt.want)
			}
		})
	}
}

func TestCentsToEuros(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100000, "1000.00"},
		{-15000, "-150.00"},
		{-7, "-0.07"},
		{123456, "1234.56"},
	}
	for _, tt := range tests {
		if got := centsToEuros(tt.cents); got != tt.want {
			t.Errorf("centsToEuros(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		base string
		year int
		want string
	}{
		{"Forecast", 2024, "2024 Forecast"},
		{"2023 Forecast", 2024, "2023 Forecast"},
		{"  Forecast  ", 2025, "2025 Forecast"},
		{"", 2024, ""},
	}
	for _, tt := range tests {
		if got := yearPrefixedName(tt.base, tt.year); got != tt.want {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.want)
		}
	}
}
