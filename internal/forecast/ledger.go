package forecast

import "bilancio/internal/core"

// IncomeLedger maps each day of a month to the income items occurring on it.
type IncomeLedger map[int][]core.IncomeItem

// ExpenseLedger maps each day of a month to the expense items occurring on it.
type ExpenseLedger map[int][]core.ExpenseItem

// BuildIncomeLedger expands every income item into its occurrence days for
// (year, month). Within a day, items keep input list order.
func BuildIncomeLedger(items []core.IncomeItem, year, month int) IncomeLedger {
	ledger := make(IncomeLedger)
	for _, it := range items {
		for _, day := range IncomeOccurrences(it, year, month) {
			ledger[day] = append(ledger[day], it)
		}
	}
	return ledger
}

// BuildExpenseLedger expands every expense item into its occurrence days for
// (year, month). Within a day, items keep input list order.
func BuildExpenseLedger(items []core.ExpenseItem, year, month int) ExpenseLedger {
	ledger := make(ExpenseLedger)
	for _, it := range items {
		for _, day := range ExpenseOccurrences(it, year, month) {
			ledger[day] = append(ledger[day], it)
		}
	}
	return ledger
}
