package forecast

import (
	"time"

	"bilancio/internal/core"
)

// ProjectChain projects every month from (fromYear, fromMonth) to
// (toYear, toMonth) inclusive, in strict chronological order, seeding each
// month with the previous month's ending balance. The opening balance seeds
// the first month.
//
// An out-of-order or partial chain silently produces a wrong carry-over, so
// callers that need month N should always obtain it through this function (or
// through ProjectAt) rather than chaining Project calls by hand.
func ProjectChain(income []core.IncomeItem, expenses []core.ExpenseItem, fromYear, fromMonth, toYear, toMonth int, opening core.Money) []core.MonthlyForecast {
	if monthIndex(fromYear, fromMonth) > monthIndex(toYear, toMonth) {
		return nil
	}

	var out []core.MonthlyForecast
	balance := opening
	year, month := fromYear, fromMonth
	for {
		f := Project(income, expenses, year, month, balance)
		out = append(out, f)
		balance = f.EndingBalance

		if year == toYear && month == toMonth {
			return out
		}
		year, month = NextMonth(year, month)
	}
}

// ProjectAt returns the forecast for a single target month with the carry-over
// balance accumulated by projecting every month from the earliest item's
// creation month forward. When the target predates every item, the opening
// balance is used directly.
func ProjectAt(income []core.IncomeItem, expenses []core.ExpenseItem, year, month int, opening core.Money) core.MonthlyForecast {
	startYear, startMonth, ok := earliestCreation(income, expenses)
	if !ok || monthIndex(startYear, startMonth) >= monthIndex(year, month) {
		return Project(income, expenses, year, month, opening)
	}

	chain := ProjectChain(income, expenses, startYear, startMonth, year, month, opening)
	return chain[len(chain)-1]
}

// NextMonth returns the month following (year, month).
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// monthIndex linearizes (year, month) for ordering comparisons.
func monthIndex(year, month int) int {
	return year*12 + month - 1
}

// earliestCreation finds the oldest creation month across both item lists.
func earliestCreation(income []core.IncomeItem, expenses []core.ExpenseItem) (year, month int, ok bool) {
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
