// Package services orchestrates budget operations across SQLite, the forecast
// engine and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/core"
	"bilancio/internal/forecast"
	"bilancio/internal/storage"
)

// ForecastService is the single entry point the HTTP API goes through. Writes
// land in SQLite first and then publish a refresh message; a broker outage
// never fails the write.
type ForecastService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewForecastService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *ForecastService {
	return &ForecastService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateIncome validates and saves an income item, then requests a forecast
// refresh from the current month.
func (s *ForecastService) CreateIncome(ctx context.Context, it core.IncomeItem) (int64, error) {
	if err := it.Validate(); err != nil {
		return 0, fmt.Errorf("validate income item: %w", err)
	}

	id, err := s.storage.CreateIncome(ctx, it)
	if err != nil {
		return 0, fmt.Errorf("save income item: %w", err)
	}

	s.publishRefresh(ctx, amqp.ReasonItemCreated)
	return id, nil
}

// CreateExpense validates and saves an expense item, then requests a forecast
// refresh from the current month.
func (s *ForecastService) CreateExpense(ctx context.Context, it core.ExpenseItem) (int64, error) {
	if err := it.Validate(); err != nil {
		return 0, fmt.Errorf("validate expense item: %w", err)
	}

	id, err := s.storage.CreateExpense(ctx, it)
	if err != nil {
		return 0, fmt.Errorf("save expense item: %w", err)
	}

	s.publishRefresh(ctx, amqp.ReasonItemCreated)
	return id, nil
}

// DeleteIncome soft deletes an income item and requests a refresh.
func (s *ForecastService) DeleteIncome(ctx context.Context, id int64) error {
	if err := s.storage.DeleteIncome(ctx, id); err != nil {
		return err
	}
	s.publishRefresh(ctx, amqp.ReasonItemDeleted)
	return nil
}

// DeleteExpense soft deletes an expense item and requests a refresh.
func (s *ForecastService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publishRefresh(ctx, amqp.ReasonItemDeleted)
	return nil
}

// ListIncomeItems returns all live income items in creation order.
func (s *ForecastService) ListIncomeItems(ctx context.Context) ([]core.IncomeItem, error) {
	return s.storage.ListIncomeItems(ctx)
}

// ListExpenseItems returns all live expense items in creation order.
func (s *ForecastService) ListExpenseItems(ctx context.Context) ([]core.ExpenseItem, error) {
	return s.storage.ListExpenseItems(ctx)
}

// GetSettings returns the budget settings.
func (s *ForecastService) GetSettings(ctx context.Context) (core.Settings, error) {
	return s.storage.GetSettings(ctx)
}

// UpdateSettings replaces the budget settings and requests a refresh, since a
// new starting balance shifts every projected month.
func (s *ForecastService) UpdateSettings(ctx context.Context, settings core.Settings) error {
	if settings.Currency == "" {
		return fmt.Errorf("currency must not be empty")
	}
	if err := s.storage.UpdateSettings(ctx, settings); err != nil {
		return err
	}
	s.publishRefresh(ctx, amqp.ReasonSettings)
	return nil
}

// GetForecast computes the forecast for one month from the current items,
// carrying over ending balances from every month since the oldest item.
func (s *ForecastService) GetForecast(ctx context.Context, year, month int) (core.MonthlyForecast, error) {
	if month < 1 || month > 12 {
		return core.MonthlyForecast{}, core.ErrInvalidMonth
	}

	income, expenses, settings, err := s.loadBudget(ctx)
	if err != nil {
		return core.MonthlyForecast{}, err
	}

	return forecast.ProjectAt(income, expenses, year, month, settings.StartingBalance), nil
}

// GetCashGaps returns the days of the given month where the projected balance
// goes negative.
func (s *ForecastService) GetCashGaps(ctx context.Context, year, month int) ([]core.CashGap, error) {
	f, err := s.GetForecast(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return f.CashGaps, nil
}

// GetCategoryStats aggregates expenses created in the given month by category.
func (s *ForecastService) GetCategoryStats(ctx context.Context, year, month int) ([]core.CategoryStat, error) {
	if month < 1 || month > 12 {
		return nil, core.ErrInvalidMonth
	}

	expenses, err := s.storage.ListExpenseItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expense items: %w", err)
	}
	return forecast.AggregateByCategory(expenses, year, month), nil
}

func (s *ForecastService) loadBudget(ctx context.Context) ([]core.IncomeItem, []core.ExpenseItem, core.Settings, error) {
	income, err := s.storage.ListIncomeItems(ctx)
	if err != nil {
		return nil, nil, core.Settings{}, fmt.Errorf("list income items: %w", err)
	}
	expenses, err := s.storage.ListExpenseItems(ctx)
	if err != nil {
		return nil, nil, core.Settings{}, fmt.Errorf("list expense items: %w", err)
	}
	settings, err := s.storage.GetSettings(ctx)
	if err != nil {
		return nil, nil, core.Settings{}, err
	}
	return income, expenses, settings, nil
}

func (s *ForecastService) publishRefresh(ctx context.Context, reason string) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping refresh message", "reason", reason)
		return
	}

	now := time.Now()
	if err := s.amqpClient.PublishForecastRefresh(ctx, now.Year(), int(now.Month()), reason); err != nil {
		// The write already succeeded locally; the periodic recompute
		// catches up if the broker is down.
		slog.ErrorContext(ctx, "Failed to publish refresh message",
			"reason", reason, "error", err)
	}
}

// Close closes both storage and AMQP connections.
func (s *ForecastService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close forecast service: %v", errs)
	}

	return nil
}
