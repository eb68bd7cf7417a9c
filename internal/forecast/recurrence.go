// Package forecast implements the monthly cash-flow projection engine.
//
// The engine is a pure function of an in-memory snapshot of budget items plus
// a target month: it expands recurring items into concrete calendar days,
// walks the month with a running balance, and reports the days where the
// projected balance goes negative. It performs no I/O and never fails on
// structurally valid input.
package forecast

import "bilancio/internal/core"

// weeklyStep and biweeklyStep are the day offsets between consecutive
// occurrences within a month.
const (
	weeklyStep   = 7
	biweeklyStep = 14
)

// occurrences expands one item into the sorted set of days in [1, daysInMonth]
// on which it occurs during (year, month).
//
// Candidates past the end of the month are dropped, never wrapped into the
// next month or shifted to the last day. defaultAnchor enables the
// expense-side relaxation: weekly and biweekly items without an anchor day
// fall back to day 1 instead of producing nothing.
func occurrences(it core.Item, year, month int, defaultAnchor bool) []int {
	days := core.DaysInMonth(year, month)
	anchor := it.AnchorDay

	switch it.Frequency {
	case core.Monthly:
		if anchor < 1 || anchor > days {
			return nil
		}
		return []int{anchor}

	case core.Weekly, core.Biweekly:
		if anchor < 1 {
			if !defaultAnchor {
				return nil
			}
			anchor = 1
		}
		step := weeklyStep
		if it.Frequency == core.Biweekly {
			step = biweeklyStep
		}
		var out []int
		for day := anchor; day <= days; day += step {
			out = append(out, day)
		}
		return out

	case core.Once:
		if it.TargetYear != year || it.TargetMonth != month {
			return nil
		}
		if anchor < 1 || anchor > days {
			return nil
		}
		return []int{anchor}
	}

	// Unknown frequencies contribute nothing; upstream validation rejects them
	// before they ever reach the engine.
	return nil
}

// IncomeOccurrences returns the days of (year, month) on which the income item
// occurs. Income items without an anchor day produce no occurrences.
func IncomeOccurrences(it core.IncomeItem, year, month int) []int {
	return occurrences(it.Item, year, month, false)
}

// ExpenseOccurrences returns the days of (year, month) on which the expense
// item occurs. Weekly and biweekly expenses without an anchor day default to
// day 1.
func ExpenseOccurrences(it core.ExpenseItem, year, month int) []int {
	return occurrences(it.Item, year, month, true)
}
