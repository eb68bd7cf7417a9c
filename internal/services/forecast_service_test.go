package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/storage"
)

// Tests run without an AMQP client; publishing is best-effort and the service
// must work the same without a broker.
func newTestService(t *testing.T) *ForecastService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "bilancio.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error: %v", err)
	}
	svc := NewForecastService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestCreateItemsAndForecast(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.CreateIncome(ctx, core.IncomeItem{
		Item: core.Item{
			Description: "stipendio",
			Amount:      core.Money{Cents: 100000},
			AnchorDay:   10,
			Frequency:   core.Monthly,
		},
		Received: true,
	})
	if err != nil {
		t.Fatalf("CreateIncome() error: %v", err)
	}

	_, err = svc.CreateExpense(ctx, core.ExpenseItem{
		Item: core.Item{
			Description: "rata prestito",
			Amount:      core.Money{Cents: 15000},
			AnchorDay:   15,
			Frequency:   core.Monthly,
		},
		Category: "кредиты",
		Required: true,
	})
	if err != nil {
		t.Fatalf("CreateExpense() error: %v", err)
	}

	f, err := svc.GetForecast(ctx, now.Year(), int(now.Month()))
	if err != nil {
		t.Fatalf("GetForecast() error: %v", err)
	}
	if f.EndingBalance.Cents != 85000 {
		t.Errorf("ending balance = %d, want 85000", f.EndingBalance.Cents)
	}
	if f.TotalIncome.Cents != 100000 || f.TotalExpenses.Cents != 15000 {
		t.Errorf("totals = %d/%d, want 100000/15000", f.TotalIncome.Cents, f.TotalExpenses.Cents)
	}
	if want := core.DaysInMonth(now.Year(), int(now.Month())); len(f.DailyBalances) != want {
		t.Errorf("daily balances = %d, want %d", len(f.DailyBalances), want)
	}
}

func TestCreateRejectsInvalidItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, core.ExpenseItem{
		Item: core.Item{
			Description: "negativo",
			Amount:      core.Money{Cents: -1},
			Frequency:   core.Monthly,
		},
		Category: "altro",
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("CreateExpense() = %v, want ErrInvalidAmount", err)
	}

	items, err := svc.ListExpenseItems(ctx)
	if err != nil {
		t.Fatalf("ListExpenseItems() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("invalid item was stored: %+v", items)
	}
}

func TestDeleteExpenseRemovesFromForecast(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	id, err := svc.CreateExpense(ctx, core.ExpenseItem{
		Item: core.Item{
			Description: "abbonamento",
			Amount:      core.Money{Cents: 999},
			AnchorDay:   1,
			Frequency:   core.Monthly,
		},
		Category: "svago",
	})
	if err != nil {
		t.Fatalf("CreateExpense() error: %v", err)
	}

	if err := svc.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("DeleteExpense() error: %v", err)
	}

	f, err := svc.GetForecast(ctx, now.Year(), int(now.Month()))
	if err != nil {
		t.Fatalf("GetForecast() error: %v", err)
	}
	if f.TotalExpenses.Cents != 0 {
		t.Errorf("deleted expense still counted: %d", f.TotalExpenses.Cents)
	}
}

func TestGetForecastRejectsInvalidMonth(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.GetForecast(context.Background(), 2024, 13); !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("GetForecast(13) = %v, want ErrInvalidMonth", err)
	}
	if _, err := svc.GetCategoryStats(context.Background(), 2024, 0); !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("GetCategoryStats(0) = %v, want ErrInvalidMonth", err)
	}
}

func TestCategoryStatsForCurrentMonth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	for _, e := range []struct {
		desc     string
		cents    int64
		category string
	}{
		{"affitto", 80000, "casa"},
		{"bollette", 20000, "casa"},
		{"cinema", 1500, "svago"},
	} {
		_, err := svc.CreateExpense(ctx, core.ExpenseItem{
			Item: core.Item{
				Description: e.desc,
				Amount:      core.Money{Cents: e.cents},
				AnchorDay:   1,
				Frequency:   core.Monthly,
			},
			Category: e.category,
		})
		if err != nil {
			t.Fatalf("CreateExpense(%s) error: %v", e.desc, err)
		}
	}

	stats, err := svc.GetCategoryStats(ctx, now.Year(), int(now.Month()))
	if err != nil {
		t.Fatalf("GetCategoryStats() error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats rows = %d, want 2", len(stats))
	}
	if stats[0].Category != "casa" || stats[0].Count != 2 || stats[0].Total.Cents != 100000 {
		t.Errorf("casa stats = %+v", stats[0])
	}
	if stats[1].Category != "svago" || stats[1].Count != 1 {
		t.Errorf("svago stats = %+v", stats[1])
	}
}

func TestUpdateSettingsShiftsForecast(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	s, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	s.StartingBalance = core.Money{Cents: 42000}
	if err := svc.UpdateSettings(ctx, s); err != nil {
		t.Fatalf("UpdateSettings() error: %v", err)
	}

	f, err := svc.GetForecast(ctx, now.Year(), int(now.Month()))
	if err != nil {
		t.Fatalf("GetForecast() error: %v", err)
	}
	if f.StartingBalance.Cents != 42000 || f.EndingBalance.Cents != 42000 {
		t.Errorf("forecast balances = %d/%d, want 42000/42000",
			f.StartingBalance.Cents, f.EndingBalance.Cents)
	}

	s.Currency = ""
	if err := svc.UpdateSettings(ctx, s); err == nil {
		t.Error("UpdateSettings() accepted empty currency")
	}
}
