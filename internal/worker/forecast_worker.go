package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
	"bilancio/internal/export"
	"bilancio/internal/forecast"
	"bilancio/internal/sheets"
	"bilancio/internal/storage"
)

// ForecastWorker recomputes forecast snapshots when items change and mirrors
// the headline numbers to an external sheet. All months are recomputed in one
// chronological chain so carry-over balances stay consistent.
type ForecastWorker struct {
	storage    *storage.SQLiteRepository
	sheets     sheets.ForecastWriter
	horizon    int
	exportPath string
}

// NewForecastWorker creates a worker projecting horizon months ahead of the
// requested month. The sheet writer may be nil; snapshots are then only
// stored locally. When exportPath is non-empty, every recompute also rewrites
// the portable budget document there as an on-disk backup.
func NewForecastWorker(storage *storage.SQLiteRepository, sheets sheets.ForecastWriter, horizon int, exportPath string) *ForecastWorker {
	if horizon < 1 {
		horizon = 1
	}
	return &ForecastWorker{
		storage:    storage,
		sheets:     sheets,
		horizon:    horizon,
		exportPath: exportPath,
	}
}

// HandleRefreshMessage processes a single forecast refresh request from AMQP.
func (w *ForecastWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.ForecastRefreshMessage) error {
	slog.InfoContext(ctx, "Processing refresh message",
		"year", msg.Year,
		"month", msg.Month,
		"reason", msg.Reason)

	if msg.Month < 1 || msg.Month > 12 {
		// Malformed request; retrying cannot fix it.
		slog.ErrorContext(ctx, "Dropping refresh message with invalid month",
			"year", msg.Year, "month", msg.Month)
		return nil
	}

	return w.Recompute(ctx, msg.Year, msg.Month)
}

// Recompute projects the chain covering (year, month) through the horizon and
// persists one snapshot per month. The chain starts at the earliest item
// creation month so each snapshot carries the accumulated balance.
func (w *ForecastWorker) Recompute(ctx context.Context, year, month int) error {
	income, err := w.storage.ListIncomeItems(ctx)
	if err != nil {
		return fmt.Errorf("list income items: %w", err)
	}
	expenses, err := w.storage.ListExpenseItems(ctx)
	if err != nil {
		return fmt.Errorf("list expense items: %w", err)
	}
	settings, err := w.storage.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	toYear, toMonth := year, month
	for i := 1; i < w.horizon; i++ {
		toYear, toMonth = forecast.NextMonth(toYear, toMonth)
	}

	chain := w.projectWindow(income, expenses, settings.StartingBalance, year, month, toYear, toMonth)

	var saved int
	for _, f := range chain {
		if before(f.Year, f.Month, year, month) {
			// Months projected only to build up the carry-over.
			continue
		}
		if err := w.storage.SaveSnapshot(ctx, f); err != nil {
			return fmt.Errorf("save snapshot %d-%02d: %w", f.Year, f.Month, err)
		}
		saved++
		w.writeSummary(ctx, f)
	}

	slog.InfoContext(ctx, "Forecast recomputed",
		"from_year", year,
		"from_month", month,
		"months", saved)

	w.exportBudget(ctx, income, expenses, settings)
	return nil
}

// exportBudget rewrites the on-disk budget document. Best-effort: snapshots
// are already saved, a failed export only costs the backup.
func (w *ForecastWorker) exportBudget(ctx context.Context, income []core.IncomeItem, expenses []core.ExpenseItem, settings core.Settings) {
	if w.exportPath == "" {
		return
	}
	doc := export.NewDocument(income, expenses, settings, time.Now())
	if err := export.Save(w.exportPath, doc); err != nil {
		slog.ErrorContext(ctx, "Failed to export budget document",
			"path", w.exportPath, "error", err)
		return
	}
	slog.InfoContext(ctx, "Budget document exported",
		"path", w.exportPath,
		"income_items", len(income),
		"expense_items", len(expenses))
}

// RecomputeCurrent recomputes from the current month. Used as the periodic
// backup when refresh messages are lost and as the startup check.
func (w *ForecastWorker) RecomputeCurrent(ctx context.Context) error {
	now := time.Now()
	return w.Recompute(ctx, now.Year(), int(now.Month()))
}

// RunPeriodic recomputes on a fixed interval until the context is cancelled.
func (w *ForecastWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.RecomputeCurrent(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic recompute failed", "error", err)
			}
		}
	}
}

func (w *ForecastWorker) projectWindow(income []core.IncomeItem, expenses []core.ExpenseItem, opening core.Money, fromYear, fromMonth, toYear, toMonth int) []core.MonthlyForecast {
	startYear, startMonth := fromYear, fromMonth
	if y, m, ok := earliestCreation(income, expenses); ok && before(y, m, fromYear, fromMonth) {
		startYear, startMonth = y, m
	}
	return forecast.ProjectChain(income, expenses, startYear, startMonth, toYear, toMonth, opening)
}

func (w *ForecastWorker) writeSummary(ctx context.Context, f core.MonthlyForecast) {
	if w.sheets == nil {
		return
	}
	ref, err := w.sheets.WriteMonthlySummary(ctx, f)
	if err != nil {
		// Sheet mirroring is best-effort; the snapshot is already stored.
		slog.ErrorContext(ctx, "Failed to write forecast summary",
			"year", f.Year, "month", f.Month, "error", err)
		return
	}
	slog.InfoContext(ctx, "Forecast summary mirrored",
		"year", f.Year, "month", f.Month, "sheets_ref", ref)
}

func before(aYear, aMonth, bYear, bMonth int) bool {
	return aYear*12+aMonth < bYear*12+bMonth
}

func earliestCreation(income []core.IncomeItem, expenses []core.ExpenseItem) (int, int, bool) {
	var earliest time.Time
	consider := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	for _, it := range income {
		consider(it.CreatedAt)
	}
	for _, it := range expenses {
		consider(it.CreatedAt)
	}
	if earliest.IsZero() {
		return 0, 0, false
	}
	return earliest.Year(), int(earliest.Month()), true
}
