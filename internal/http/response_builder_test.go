package http

import (
	"testing"
	"time"

	"bilancio/internal/core"
)

func TestBuildMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{85000, "850.00"},
		{-700, "-7.00"},
		{5, "0.05"},
	}
	for _, tt := range tests {
		got := buildMoney(core.Money{Cents: tt.cents})
		if got.Cents != tt.cents || got.Decimal != tt.want {
			t.Errorf("buildMoney(%d) = %+v, want decimal %q", tt.cents, got, tt.want)
		}
	}
}

func TestBuildForecastCarriesOccurrenceIDs(t *testing.T) {
	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	f := core.MonthlyForecast{
		Year:  2024,
		Month: 2,
		DailyBalances: []core.DailyBalance{{
			Date:    day,
			Day:     10,
			Balance: core.Money{Cents: 100000},
			IncomeOccurrences: []core.IncomeItem{
				{Item: core.Item{ID: 7, Description: "stipendio"}},
			},
		}},
		CashGaps: []core.CashGap{{
			Date:      day,
			Day:       10,
			Balance:   core.Money{Cents: -500},
			GapAmount: core.Money{Cents: 500},
		}},
		EndingBalance: core.Money{Cents: 100000},
	}

	resp := buildForecast(f)
	if len(resp.DailyBalances) != 1 {
		t.Fatalf("daily balances = %d, want 1", len(resp.DailyBalances))
	}
	d := resp.DailyBalances[0]
	if d.Date != "2024-02-10" || d.Day != 10 {
		t.Errorf("day = %+v", d)
	}
	if len(d.Income) != 1 || d.Income[0] != 7 {
		t.Errorf("income item ids = %v, want [7]", d.Income)
	}
	if len(d.Expenses) != 0 {
		t.Errorf("expense item ids = %v, want empty", d.Expenses)
	}
	if len(resp.CashGaps) != 1 || resp.CashGaps[0].GapAmount.Cents != 500 {
		t.Errorf("cash gaps = %+v", resp.CashGaps)
	}
}

func TestBuildCategoryStatsOrderPreserved(t *testing.T) {
	stats := []core.CategoryStat{
		{Category: "casa", Count: 2, Total: core.Money{Cents: 100000}},
		{Category: "svago", Count: 1, Total: core.Money{Cents: 1500}},
	}

	resp := buildCategoryStats(stats)
	if len(resp) != 2 {
		t.Fatalf("rows = %d, want 2", len(resp))
	}
	if resp[0].Category != "casa" || resp[1].Category != "svago" {
		t.Errorf("order = %s, %s", resp[0].Category, resp[1].Category)
	}
}

func TestBuildListsAreNeverNil(t *testing.T) {
	if buildIncomeList(nil) == nil {
		t.Error("buildIncomeList(nil) should return empty slice")
	}
	if buildExpenseList(nil) == nil {
		t.Error("buildExpenseList(nil) should return empty slice")
	}
	if buildCashGaps(nil) == nil {
		t.Error("buildCashGaps(nil) should return empty slice")
	}
	if buildCategoryStats(nil) == nil {
		t.Error("buildCategoryStats(nil) should return empty slice")
	}
}
