package core

import "time"

// DailyBalance is the projected state at the end of one calendar day.
// IncomeRealized counts only income flagged received; IncomeAll and ExpenseAll
// sum every occurrence regardless of flag and exist for display purposes.
// Expenses always count toward the balance whether or not they were paid.
type DailyBalance struct {
	Date               time.Time
	Day                int
	Balance            Money
	IncomeRealized     Money
	ExpenseTotal       Money
	IncomeAll          Money
	ExpenseAll         Money
	IsCashGap          bool
	IncomeOccurrences  []IncomeItem
	ExpenseOccurrences []ExpenseItem
}

// CashGap marks a day on which the projected running balance is negative.
// GapAmount is the shortfall magnitude, always positive.
type CashGap struct {
	Date               time.Time
	Day                int
	Balance            Money
	GapAmount          Money
	IncomeOccurrences  []IncomeItem
	ExpenseOccurrences []ExpenseItem
}

// MonthlyForecast is the full day-by-day projection for one calendar month.
//
// Invariants: DailyBalances is ordered by day ascending and has exactly
// DaysInMonth(Year, Month) entries; CashGaps holds exactly the days where the
// balance is negative; EndingBalance equals the last day's balance and
// StartingBalance + TotalIncome - TotalExpenses.
type MonthlyForecast struct {
	Year            int
	Month           int
	StartingBalance Money
	DailyBalances   []DailyBalance
	CashGaps        []CashGap
	TotalIncome     Money
	TotalExpenses   Money
	EndingBalance   Money
}

// CategoryStat aggregates the expenses of one category for a month.
type CategoryStat struct {
	Category string
	Total    Money
	Count    int
	Average  Money
	Min      Money
	Max      Money
}

// Settings holds the per-budget configuration the surrounding application
// persists alongside the item lists.
type Settings struct {
	StartingBalance Money
	Currency        string
}
