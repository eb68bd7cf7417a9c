package forecast

import (
	"time"

	"bilancio/internal/core"
)

// Project walks the days of (year, month) in order, carrying a running balance
// seeded with startingBalance, and returns the full monthly forecast.
//
// Only income flagged received moves the balance; expenses always do,
// regardless of their paid flag. Cash gaps are collected inline during the
// walk so the gap list can never drift from the daily balances.
func Project(income []core.IncomeItem, expenses []core.ExpenseItem, year, month int, startingBalance core.Money) core.MonthlyForecast {
	incomeLedger := BuildIncomeLedger(income, year, month)
	expenseLedger := BuildExpenseLedger(expenses, year, month)
	return ProjectLedgers(incomeLedger, expenseLedger, year, month, startingBalance)
}

// ProjectLedgers is the ledger-level entry point for callers that have already
// expanded their items, e.g. when projecting several scenarios over the same
// occurrence sets.
func ProjectLedgers(incomeLedger IncomeLedger, expenseLedger ExpenseLedger, year, month int, startingBalance core.Money) core.MonthlyForecast {
	days := core.DaysInMonth(year, month)

	f := core.MonthlyForecast{
		Year:            year,
		Month:           month,
		StartingBalance: startingBalance,
		DailyBalances:   make([]core.DailyBalance, 0, days),
	}

	balance := startingBalance
	for day := 1; day <= days; day++ {
		incomes := incomeLedger[day]
		var incomeRealized, incomeAll core.Money
		for _, it := range incomes {
			incomeAll = incomeAll.Add(it.Amount)
			if it.Received {
				incomeRealized = incomeRealized.Add(it.Amount)
			}
		}

		outgoings := expenseLedger[day]
		var expenseTotal core.Money
		for _, it := range outgoings {
			expenseTotal = expenseTotal.Add(it.Amount)
		}

		balance = balance.Add(incomeRealized).Sub(expenseTotal)

		db := core.DailyBalance{
			Date:               time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
			Day:                day,
			Balance:            balance,
			IncomeRealized:     incomeRealized,
			ExpenseTotal:       expenseTotal,
			IncomeAll:          incomeAll,
			ExpenseAll:         expenseTotal,
			IsCashGap:          balance.IsNegative(),
			IncomeOccurrences:  incomes,
			ExpenseOccurrences: outgoings,
		}
		f.DailyBalances = append(f.DailyBalances, db)

		if db.IsCashGap {
			f.CashGaps = append(f.CashGaps, core.CashGap{
				Date:               db.Date,
				Day:                day,
				Balance:            balance,
				GapAmount:          balance.Abs(),
				IncomeOccurrences:  incomes,
				ExpenseOccurrences: outgoings,
			})
		}

		f.TotalIncome = f.TotalIncome.Add(incomeRealized)
		f.TotalExpenses = f.TotalExpenses.Add(expenseTotal)
	}

	f.EndingBalance = balance
	return f
}

// CollectCashGaps derives the gap list from the daily balances of an existing
// forecast. Project already collects gaps inline; this exists for callers
// holding only the daily slice, e.g. after deserializing a stored snapshot.
func CollectCashGaps(dailyBalances []core.DailyBalance) []core.CashGap {
	var gaps []core.CashGap
	for _, db := range dailyBalances {
		if !db.IsCashGap {
			continue
		}
		gaps = append(gaps, core.CashGap{
			Date:               db.Date,
			Day:                db.Day,
			Balance:            db.Balance,
			GapAmount:          db.Balance.Abs(),
			IncomeOccurrences:  db.IncomeOccurrences,
			ExpenseOccurrences: db.ExpenseOccurrences,
		})
	}
	return gaps
}
