// Package google writes forecast summaries to a Google Sheets spreadsheet
// using a Service Account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"bilancio/internal/core"
	ports "bilancio/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base name without year (e.g. "Forecast"); code prefixes the year.
	forecastBase string
}

// Ensure interface conformance
var _ ports.ForecastWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SHEET_NAME (default "Forecast"), credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	forecastBase := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if forecastBase == "" {
		forecastBase = "Forecast"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		forecastBase:  forecastBase,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created", "scope", gsheet.SpreadsheetsScope)
	return service, nil
}

// WriteMonthlySummary upserts one row per month into the year's forecast
// sheet: Month, Starting, Income, Expenses, Ending, GapDays, ComputedAt.
// The month column is scanned first so a recomputed month overwrites its row
// instead of appending a duplicate.
func (c *Client) WriteMonthlySummary(ctx context.Context, f core.MonthlyForecast) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if f.Month < 1 || f.Month > 12 {
		return "", fmt.Errorf("invalid month: %d", f.Month)
	}

	sheetName := yearPrefixedName(c.forecastBase, f.Year)

	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read month column of %s: %w", sheetName, err)
	}

	row := findMonthRow(resp.Values, f.Month)
	if row == 0 {
		row = len(resp.Values) + 1
	}

	dataRange := fmt.Sprintf("%s!A%d:G%d", sheetName, row, row)
	vr := &gsheet.ValueRange{Values: [][]any{{
		f.Month,
		centsToEuros(f.StartingBalance.Cents),
		centsToEuros(f.TotalIncome.Cents),
		centsToEuros(f.TotalExpenses.Cents),
		centsToEuros(f.EndingBalance.Cents),
		len(f.CashGaps),
		time.Now().UTC().Format(time.RFC3339),
	}}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update summary row in %s: %w", sheetName, err)
	}

	slog.InfoContext(ctx, "Forecast summary written",
		"sheet", sheetName,
		"row", row,
		"year", f.Year,
		"month", f.Month,
		"ending_balance_cents", f.EndingBalance.Cents)

	return dataRange, nil
}
