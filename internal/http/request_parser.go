package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bilancio/internal/core"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// itemRequest carries the fields shared by income and expense payloads.
// Amount is accepted either as a decimal string ("150,00" or "150.00") or as
// integer cents; the decimal form wins when both are present.
type itemRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amountCents"`
	AnchorDay   int    `json:"anchorDay"`
	Frequency   string `json:"frequency"`
	TargetYear  int    `json:"targetYear"`
	TargetMonth int    `json:"targetMonth"`
}

type incomeRequest struct {
	itemRequest
	Received bool `json:"received"`
}

type expenseRequest struct {
	itemRequest
	Paid     bool   `json:"paid"`
	Category string `json:"category"`
	Required bool   `json:"required"`
}

type settingsRequest struct {
	StartingBalance string `json:"startingBalance"`
	Currency        string `json:"currency"`
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (req itemRequest) toItem() (core.Item, error) {
	cents := req.AmountCents
	if strings.TrimSpace(req.Amount) != "" {
		parsed, err := core.ParseDecimalToCents(req.Amount)
		if err != nil {
			return core.Item{}, fmt.Errorf("parse amount: %w", err)
		}
		cents = parsed
	}

	return core.Item{
		Description: strings.TrimSpace(req.Description),
		Amount:      core.Money{Cents: cents},
		AnchorDay:   req.AnchorDay,
		Frequency:   core.Frequency(strings.TrimSpace(req.Frequency)),
		TargetYear:  req.TargetYear,
		TargetMonth: req.TargetMonth,
	}, nil
}

func parseIncomeRequest(r *http.Request) (core.IncomeItem, error) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.IncomeItem{}, err
	}
	item, err := req.toItem()
	if err != nil {
		return core.IncomeItem{}, err
	}
	return core.IncomeItem{Item: item, Received: req.Received}, nil
}

func parseExpenseRequest(r *http.Request) (core.ExpenseItem, error) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.ExpenseItem{}, err
	}
	item, err := req.toItem()
	if err != nil {
		return core.ExpenseItem{}, err
	}
	return core.ExpenseItem{
		Item:     item,
		Paid:     req.Paid,
		Category: strings.TrimSpace(req.Category),
		Required: req.Required,
	}, nil
}

func parseSettingsRequest(r *http.Request) (core.Settings, error) {
	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.Settings{}, err
	}

	var balance core.Money
	if strings.TrimSpace(req.StartingBalance) != "" {
		cents, err := core.ParseSignedDecimalToCents(req.StartingBalance)
		if err != nil {
			return core.Settings{}, fmt.Errorf("parse starting balance: %w", err)
		}
		balance = core.Money{Cents: cents}
	}

	return core.Settings{
		StartingBalance: balance,
		Currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
	}, nil
}

// parseYearMonth reads the year and month query parameters, defaulting to the
// current month. Month range errors surface to the caller; the forecast
// engine never sees an invalid month.
func parseYearMonth(r *http.Request) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year: %q", v)
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid month: %q", v)
		}
		month = m
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range: %d", month)
	}
	return year, month, nil
}

// parseItemID extracts the numeric item ID from paths like /api/income/42.
func parseItemID(path, prefix string) (int64, error) {
	raw := strings.TrimPrefix(path, prefix)
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("invalid item path: %q", path)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id: %q", raw)
	}
	return id, nil
}
