package http

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"bilancio/internal/core"
)

func TestParseExpenseRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCents int64
		wantErr   bool
	}{
		{
			name:      "decimal amount with comma",
			body:      `{"description":"spesa","amount":"150,00","anchorDay":15,"frequency":"monthly","category":"cibo"}`,
			wantCents: 15000,
		},
		{
			name:      "decimal amount with dot",
			body:      `{"description":"spesa","amount":"12.34","frequency":"weekly","category":"cibo"}`,
			wantCents: 1234,
		},
		{
			name:      "cents only",
			body:      `{"description":"spesa","amountCents":999,"frequency":"monthly","category":"cibo"}`,
			wantCents: 999,
		},
		{
			name:      "decimal wins over cents",
			body:      `{"description":"spesa","amount":"1,00","amountCents":999,"frequency":"monthly","category":"cibo"}`,
			wantCents: 100,
		},
		{
			name:    "invalid decimal",
			body:    `{"description":"spesa","amount":"abc","frequency":"monthly","category":"cibo"}`,
			wantErr: true,
		},
		{
			name:    "negative decimal rejected",
			body:    `{"description":"spesa","amount":"-5,00","frequency":"monthly","category":"cibo"}`,
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			body:    `{"description":"spesa","importo":"5,00"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/expenses", bytes.NewBufferString(tt.body))
			item, err := parseExpenseRequest(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseExpenseRequest() error: %v", err)
			}
			if item.Amount.Cents != tt.wantCents {
				t.Errorf("cents = %d, want %d", item.Amount.Cents, tt.wantCents)
			}
		})
	}
}

func TestParseIncomeRequestFields(t *testing.T) {
	body := `{"description":"  stipendio  ","amountCents":100000,"anchorDay":10,"frequency":"monthly","received":true}`
	r := httptest.NewRequest("POST", "/api/income", bytes.NewBufferString(body))

	item, err := parseIncomeRequest(r)
	if err != nil {
		t.Fatalf("parseIncomeRequest() error: %v", err)
	}
	if item.Description != "stipendio" {
		t.Errorf("description = %q, want trimmed", item.Description)
	}
	if item.Frequency != core.Monthly || item.AnchorDay != 10 || !item.Received {
		t.Errorf("parsed item = %+v", item)
	}
}

func TestParseSettingsRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCents int64
		wantCur   string
		wantErr   bool
	}{
		{"positive balance", `{"startingBalance":"100,50","currency":"EUR"}`, 10050, "EUR", false},
		{"negative balance", `{"startingBalance":"-7.00","currency":"eur"}`, -700, "EUR", false},
		{"empty balance keeps zero", `{"currency":"RUB"}`, 0, "RUB", false},
		{"invalid balance", `{"startingBalance":"dieci","currency":"EUR"}`, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("PUT", "/api/settings", bytes.NewBufferString(tt.body))
			s, err := parseSettingsRequest(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSettingsRequest() error: %v", err)
			}
			if s.StartingBalance.Cents != tt.wantCents || s.Currency != tt.wantCur {
				t.Errorf("settings = %+v, want %d/%s", s, tt.wantCents, tt.wantCur)
			}
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantYear  int
		wantMonth int
		wantErr   bool
	}{
		{"explicit", "?year=2024&month=2", 2024, 2, false},
		{"month out of range", "?year=2024&month=13", 0, 0, true},
		{"month zero", "?year=2024&month=0", 0, 0, true},
		{"garbage year", "?year=abc&month=2", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/forecast"+tt.query, nil)
			year, month, err := parseYearMonth(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseYearMonth() error: %v", err)
			}
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("parsed = %d-%d, want %d-%d", year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}

	t.Run("defaults to current month", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/forecast", nil)
		year, month, err := parseYearMonth(r)
		if err != nil {
			t.Fatalf("parseYearMonth() error: %v", err)
		}
		if year < 2024 || month < 1 || month > 12 {
			t.Errorf("default = %d-%d", year, month)
		}
	})
}

func TestParseItemID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{"/api/income/42", 42, false},
		{"/api/income/42/", 42, false},
		{"/api/income/", 0, true},
		{"/api/income/abc", 0, true},
		{"/api/income/-1", 0, true},
		{"/api/income/1/extra", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, err := parseItemID(tt.path, "/api/income/")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseItemID() error: %v", err)
			}
			if id != tt.want {
				t.Errorf("id = %d, want %d", id, tt.want)
			}
		})
	}
}
