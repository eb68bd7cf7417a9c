package forecast

import (
	"testing"

	"bilancio/internal/core"
)

func TestProjectSalaryAndLoanScenario(t *testing.T) {
	salary := incomeItem(core.Monthly, 10)
	salary.Amount = core.Money{Cents: 100000}
	salary.Received = true

	loan := expenseItem(core.Monthly, 15, "кредиты")
	loan.Amount = core.Money{Cents: 15000}

	f := Project([]core.IncomeItem{salary}, []core.ExpenseItem{loan}, 2024, 2, core.Money{})

	if len(f.DailyBalances) != 29 {
		t.Fatalf("expected 29 daily balances for Feb 2024, got %d", len(f.DailyBalances))
	}
	if got := f.DailyBalances[9].Balance.Cents; got != 100000 {
		t.Errorf("day 10 balance = %d, want 100000", got)
	}
	if got := f.DailyBalances[14].Balance.Cents; got != 85000 {
		t.Errorf("day 15 balance = %d, want 85000", got)
	}
	if f.EndingBalance.Cents != 85000 {
		t.Errorf("ending balance = %d, want 85000", f.EndingBalance.Cents)
	}
	if len(f.CashGaps) != 0 {
		t.Errorf("expected no cash gaps, got %d", len(f.CashGaps))
	}
	if f.TotalIncome.Cents != 100000 || f.TotalExpenses.Cents != 15000 {
		t.Errorf("totals = %d/%d, want 100000/15000", f.TotalIncome.Cents, f.TotalExpenses.Cents)
	}
}

func TestProjectCashGap(t *testing.T) {
	loan := expenseItem(core.Monthly, 15, "кредиты")
	loan.Amount = core.Money{Cents: 15000}

	f := Project(nil, []core.ExpenseItem{loan}, 2024, 2, core.Money{})

	if got := f.DailyBalances[14].Balance.Cents; got != -15000 {
		t.Errorf("day 15 balance = %d, want -15000", got)
	}
	if len(f.CashGaps) == 0 {
		t.Fatal("expected cash gaps")
	}
	if f.CashGaps[0].Day != 15 {
		t.Errorf("first gap day = %d, want 15", f.CashGaps[0].Day)
	}
	if f.CashGaps[0].GapAmount.Cents != 15000 {
		t.Errorf("gap amount = %d, want 15000", f.CashGaps[0].GapAmount.Cents)
	}
	// The balance stays negative until month end, so every day from the 15th is a gap.
	if len(f.CashGaps) != 29-14 {
		t.Errorf("gap count = %d, want %d", len(f.CashGaps), 29-14)
	}
}

func TestProjectEmptyMonth(t *testing.T) {
	start := core.Money{Cents: 4200}
	f := Project(nil, nil, 2024, 4, start)

	if len(f.DailyBalances) != 30 {
		t.Fatalf("expected 30 daily balances, got %d", len(f.DailyBalances))
	}
	for _, db := range f.DailyBalances {
		if db.Balance != start {
			t.Fatalf("day %d balance = %d, want %d", db.Day, db.Balance.Cents, start.Cents)
		}
		if db.IsCashGap {
			t.Fatalf("day %d unexpectedly flagged as cash gap", db.Day)
		}
	}
	if len(f.CashGaps) != 0 {
		t.Errorf("expected no gaps, got %d", len(f.CashGaps))
	}
	if f.EndingBalance != start {
		t.Errorf("ending balance = %d, want %d", f.EndingBalance.Cents, start.Cents)
	}
}

func TestProjectNegativeStartingBalance(t *testing.T) {
	f := Project(nil, nil, 2024, 2, core.Money{Cents: -100})

	if !f.DailyBalances[0].IsCashGap {
		t.Error("day 1 should be a cash gap with a negative opening balance")
	}
	if len(f.CashGaps) != 29 {
		t.Errorf("gap count = %d, want 29", len(f.CashGaps))
	}
	if f.CashGaps[0].GapAmount.Cents != 100 {
		t.Errorf("gap amount = %d, want 100", f.CashGaps[0].GapAmount.Cents)
	}
}

func TestProjectPendingFlagsAsymmetry(t *testing.T) {
	planned := incomeItem(core.Monthly, 5)
	planned.Amount = core.Money{Cents: 50000}
	planned.Received = false

	unpaid := expenseItem(core.Monthly, 5, "bollette")
	unpaid.Amount = core.Money{Cents: 20000}
	unpaid.Paid = false

	f := Project([]core.IncomeItem{planned}, []core.ExpenseItem{unpaid}, 2024, 3, core.Money{})

	day := f.DailyBalances[4]
	if day.IncomeRealized.Cents != 0 {
		t.Errorf("unreceived income counted as realized: %d", day.IncomeRealized.Cents)
	}
	if day.IncomeAll.Cents != 50000 {
		t.Errorf("IncomeAll = %d, want 50000", day.IncomeAll.Cents)
	}
	// An unpaid expense is still due: it must reduce the balance.
	if day.ExpenseTotal.Cents != 20000 {
		t.Errorf("ExpenseTotal = %d, want 20000", day.ExpenseTotal.Cents)
	}
	if day.Balance.Cents != -20000 {
		t.Errorf("day 5 balance = %d, want -20000", day.Balance.Cents)
	}
}

func TestProjectBalanceContinuity(t *testing.T) {
	salary := incomeItem(core.Biweekly, 4)
	salary.Amount = core.Money{Cents: 120000}
	salary.Received = true

	rent := expenseItem(core.Monthly, 1, "casa")
	rent.Amount = core.Money{Cents: 95000}

	groceries := expenseItem(core.Weekly, 0, "spesa")
	groceries.Amount = core.Money{Cents: 8000}

	f := Project([]core.IncomeItem{salary}, []core.ExpenseItem{rent, groceries}, 2024, 1, core.Money{Cents: 30000})

	prev := f.StartingBalance
	var totalIncome, totalExpenses core.Money
	for i, db := range f.DailyBalances {
		delta := db.Balance.Sub(prev)
		want := db.IncomeRealized.Sub(db.ExpenseTotal)
		if delta != want {
			t.Fatalf("day %d: balance delta %d != income-expense %d", i+1, delta.Cents, want.Cents)
		}
		prev = db.Balance
		totalIncome = totalIncome.Add(db.IncomeRealized)
		totalExpenses = totalExpenses.Add(db.ExpenseTotal)
	}

	if f.TotalIncome != totalIncome {
		t.Errorf("TotalIncome = %d, want %d", f.TotalIncome.Cents, totalIncome.Cents)
	}
	if f.TotalExpenses != totalExpenses {
		t.Errorf("TotalExpenses = %d, want %d", f.TotalExpenses.Cents, totalExpenses.Cents)
	}
	wantEnding := f.StartingBalance.Add(totalIncome).Sub(totalExpenses)
	if f.EndingBalance != wantEnding {
		t.Errorf("EndingBalance = %d, want %d", f.EndingBalance.Cents, wantEnding.Cents)
	}
	last := f.DailyBalances[len(f.DailyBalances)-1]
	if f.EndingBalance != last.Balance {
		t.Errorf("EndingBalance = %d, want last day balance %d", f.EndingBalance.Cents, last.Balance.Cents)
	}
}

func TestCollectCashGapsMatchesInlineCollection(t *testing.T) {
	loan := expenseItem(core.Weekly, 2, "кредиты")
	loan.Amount = core.Money{Cents: 7000}

	salary := incomeItem(core.Monthly, 20)
	salary.Amount = core.Money{Cents: 60000}
	salary.Received = true

	f := Project([]core.IncomeItem{salary}, []core.ExpenseItem{loan}, 2024, 5, core.Money{})

	derived := CollectCashGaps(f.DailyBalances)
	if len(derived) != len(f.CashGaps) {
		t.Fatalf("derived %d gaps, inline collected %d", len(derived), len(f.CashGaps))
	}
	for i := range derived {
		if derived[i].Day != f.CashGaps[i].Day || derived[i].GapAmount != f.CashGaps[i].GapAmount {
			t.Errorf("gap %d mismatch: derived %+v, inline %+v", i, derived[i], f.CashGaps[i])
		}
	}
	// Gap days must be exactly the negative-balance days, ascending.
	j := 0
	for _, db := range f.DailyBalances {
		if db.Balance.IsNegative() {
			if j >= len(f.CashGaps) || f.CashGaps[j].Day != db.Day {
				t.Fatalf("gap list out of sync at day %d", db.Day)
			}
			j++
		}
	}
	if j != len(f.CashGaps) {
		t.Errorf("gap list has %d extra entries", len(f.CashGaps)-j)
	}
}
