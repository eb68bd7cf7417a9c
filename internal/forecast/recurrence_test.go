package forecast

import (
	"reflect"
	"testing"

	"bilancio/internal/core"
)

func incomeItem(freq core.Frequency, anchor int) core.IncomeItem {
	return core.IncomeItem{Item: core.Item{
		Description: "entrata",
		Amount:      core.Money{Cents: 1000},
		AnchorDay:   anchor,
		Frequency:   freq,
	}}
}

func expenseItem(freq core.Frequency, anchor int, category string) core.ExpenseItem {
	return core.ExpenseItem{
		Item: core.Item{
			Description: "uscita",
			Amount:      core.Money{Cents: 1000},
			AnchorDay:   anchor,
			Frequency:   freq,
		},
		Category: category,
	}
}

func TestIncomeOccurrences(t *testing.T) {
	tests := []struct {
		name        string
		item        core.IncomeItem
		year, month int
		want        []int
	}{
		{
			name: "monthly single occurrence",
			item: incomeItem(core.Monthly, 10),
			year: 2024, month: 2,
			want: []int{10},
		},
		{
			name: "monthly anchor 31 dropped in 30-day month",
			item: incomeItem(core.Monthly, 31),
			year: 2024, month: 4,
			want: nil,
		},
		{
			name: "monthly anchor 29 kept in leap february",
			item: incomeItem(core.Monthly, 29),
			year: 2024, month: 2,
			want: []int{29},
		},
		{
			name: "monthly anchor 29 dropped in plain february",
			item: incomeItem(core.Monthly, 29),
			year: 2023, month: 2,
			want: nil,
		},
		{
			name: "monthly without anchor produces nothing",
			item: incomeItem(core.Monthly, 0),
			year: 2024, month: 2,
			want: nil,
		},
		{
			name: "weekly from day 1 in 31-day month",
			item: incomeItem(core.Weekly, 1),
			year: 2024, month: 1,
			want: []int{1, 8, 15, 22, 29},
		},
		{
			name: "weekly anchored 28 in 30-day month truncates to one",
			item: incomeItem(core.Weekly, 28),
			year: 2024, month: 4,
			want: []int{28},
		},
		{
			name: "weekly anchored 25 never wraps into next month",
			item: incomeItem(core.Weekly, 25),
			year: 2024, month: 4,
			want: []int{25},
		},
		{
			name: "weekly without anchor produces nothing for income",
			item: incomeItem(core.Weekly, 0),
			year: 2024, month: 1,
			want: nil,
		},
		{
			name: "biweekly three occurrences",
			item: incomeItem(core.Biweekly, 3),
			year: 2024, month: 1,
			want: []int{3, 17, 31},
		},
		{
			name: "biweekly truncated in short month",
			item: incomeItem(core.Biweekly, 3),
			year: 2023, month: 2,
			want: []int{3, 17},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IncomeOccurrences(tt.item, tt.year, tt.month)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IncomeOccurrences() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnceOccurrenceIsolation(t *testing.T) {
	item := incomeItem(core.Once, 12)
	item.TargetYear = 2024
	item.TargetMonth = 3

	if got := IncomeOccurrences(item, 2024, 3); !reflect.DeepEqual(got, []int{12}) {
		t.Errorf("matching target month: got %v, want [12]", got)
	}
	if got := IncomeOccurrences(item, 2024, 4); got != nil {
		t.Errorf("non-matching month: got %v, want none", got)
	}
	if got := IncomeOccurrences(item, 2023, 3); got != nil {
		t.Errorf("non-matching year: got %v, want none", got)
	}
}

func TestExpenseOccurrencesDefaultAnchor(t *testing.T) {
	tests := []struct {
		name        string
		item        core.ExpenseItem
		year, month int
		want        []int
	}{
		{
			name: "weekly without anchor defaults to day 1",
			item: expenseItem(core.Weekly, 0, "spesa"),
			year: 2024, month: 1,
			want: []int{1, 8, 15, 22, 29},
		},
		{
			name: "biweekly without anchor defaults to day 1",
			item: expenseItem(core.Biweekly, 0, "spesa"),
			year: 2024, month: 1,
			want: []int{1, 15, 29},
		},
		{
			name: "monthly without anchor still produces nothing",
			item: expenseItem(core.Monthly, 0, "spesa"),
			year: 2024, month: 1,
			want: nil,
		},
		{
			name: "explicit anchor wins over default",
			item: expenseItem(core.Weekly, 20, "spesa"),
			year: 2024, month: 4,
			want: []int{20, 27},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpenseOccurrences(tt.item, tt.year, tt.month)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpenseOccurrences() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildLedgersKeepInputOrder(t *testing.T) {
	first := expenseItem(core.Monthly, 5, "casa")
	first.Description = "prima"
	second := expenseItem(core.Monthly, 5, "spesa")
	second.Description = "seconda"

	ledger := BuildExpenseLedger([]core.ExpenseItem{first, second}, 2024, 6)
	day := ledger[5]
	if len(day) != 2 {
		t.Fatalf("expected 2 items on day 5, got %d", len(day))
	}
	if day[0].Description != "prima" || day[1].Description != "seconda" {
		t.Errorf("day order = [%s %s], want input order", day[0].Description, day[1].Description)
	}
	if len(ledger) != 1 {
		t.Errorf("expected single populated day, got %d", len(ledger))
	}
}
