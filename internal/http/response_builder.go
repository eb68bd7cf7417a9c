package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"bilancio/internal/core"
)

// Response DTOs. Money travels as integer cents plus a preformatted decimal
// string so clients don't have to reimplement cent formatting.

type moneyResponse struct {
	Cents   int64  `json:"cents"`
	Decimal string `json:"decimal"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      moneyResponse `json:"amount"`
	AnchorDay   int    `json:"anchorDay,omitempty"`
	Frequency   string `json:"frequency"`
	TargetYear  int    `json:"targetYear,omitempty"`
	TargetMonth int    `json:"targetMonth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type incomeResponse struct {
	itemResponse
	Received bool `json:"received"`
}

type expenseResponse struct {
	itemResponse
	Paid     bool   `json:"paid"`
	Category string `json:"category"`
	Required bool   `json:"required"`
}

type dailyBalanceResponse struct {
	Date           string        `json:"date"`
	Day            int           `json:"day"`
	Balance        moneyResponse `json:"balance"`
	IncomeRealized moneyResponse `json:"incomeRealized"`
	ExpenseTotal   moneyResponse `json:"expenseTotal"`
	IsCashGap      bool          `json:"isCashGap"`
	Income         []int64       `json:"incomeItemIds,omitempty"`
	Expenses       []int64       `json:"expenseItemIds,omitempty"`
}

type cashGapResponse struct {
	Date      string        `json:"date"`
	Day       int           `json:"day"`
	Balance   moneyResponse `json:"balance"`
	GapAmount moneyResponse `json:"gapAmount"`
}

type forecastResponse struct {
	Year            int                    `json:"year"`
	Month           int                    `json:"month"`
	StartingBalance moneyResponse          `json:"startingBalance"`
	TotalIncome     moneyResponse          `json:"totalIncome"`
	TotalExpenses   moneyResponse          `json:"totalExpenses"`
	EndingBalance   moneyResponse          `json:"endingBalance"`
	DailyBalances   []dailyBalanceResponse `json:"dailyBalances"`
	CashGaps        []cashGapResponse      `json:"cashGaps"`
}

type categoryStatResponse struct {
	Category string        `json:"category"`
	Count    int           `json:"count"`
	Total    moneyResponse `json:"total"`
	Average  moneyResponse `json:"average"`
	Min      moneyResponse `json:"min"`
	Max      moneyResponse `json:"max"`
}

type settingsResponse struct {
	StartingBalance moneyResponse `json:"startingBalance"`
	Currency        string        `json:"currency"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const dateLayout = "2006-01-02"

func buildMoney(m core.Money) moneyResponse {
	return moneyResponse{Cents: m.Cents, Decimal: m.Decimal()}
}

func buildItem(it core.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Description: it.Description,
		Amount:      buildMoney(it.Amount),
		AnchorDay:   it.AnchorDay,
		Frequency:   string(it.Frequency),
		TargetYear:  it.TargetYear,
		TargetMonth: it.TargetMonth,
		CreatedAt:   it.CreatedAt,
	}
}

func buildIncomeList(items []core.IncomeItem) []incomeResponse {
	out := make([]incomeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, incomeResponse{itemResponse: buildItem(it.Item), Received: it.Received})
	}
	return out
}

func buildExpenseList(items []core.ExpenseItem) []expenseResponse {
	out := make([]expenseResponse, 0, len(items))
	for _, it := range items {
		out = append(out, expenseResponse{
			itemResponse: buildItem(it.Item),
			Paid:         it.Paid,
			Category:     it.Category,
			Required:     it.Required,
		})
	}
	return out
}

func buildForecast(f core.MonthlyForecast) forecastResponse {
	resp := forecastResponse{
		Year:            f.Year,
		Month:           f.Month,
		StartingBalance: buildMoney(f.StartingBalance),
		TotalIncome:     buildMoney(f.TotalIncome),
		TotalExpenses:   buildMoney(f.TotalExpenses),
		EndingBalance:   buildMoney(f.EndingBalance),
		DailyBalances:   make([]dailyBalanceResponse, 0, len(f.DailyBalances)),
		CashGaps:        buildCashGaps(f.CashGaps),
	}
	for _, d := range f.DailyBalances {
		resp.DailyBalances = append(resp.DailyBalances, dailyBalanceResponse{
			Date:           d.Date.Format(dateLayout),
			Day:            d.Day,
			Balance:        buildMoney(d.Balance),
			IncomeRealized: buildMoney(d.IncomeRealized),
			ExpenseTotal:   buildMoney(d.ExpenseTotal),
			IsCashGap:      d.IsCashGap,
			Income:         itemIDs(d.IncomeOccurrences),
			Expenses:       expenseIDs(d.ExpenseOccurrences),
		})
	}
	return resp
}

func buildCashGaps(gaps []core.CashGap) []cashGapResponse {
	out := make([]cashGapResponse, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, cashGapResponse{
			Date:      g.Date.Format(dateLayout),
			Day:       g.Day,
			Balance:   buildMoney(g.Balance),
			GapAmount: buildMoney(g.GapAmount),
		})
	}
	return out
}

func buildCategoryStats(stats []core.CategoryStat) []categoryStatResponse {
	out := make([]categoryStatResponse, 0, len(stats))
	for _, st := range stats {
		out = append(out, categoryStatResponse{
			Category: st.Category,
			Count:    st.Count,
			Total:    buildMoney(st.Total),
			Average:  buildMoney(st.Average),
			Min:      buildMoney(st.Min),
			Max:      buildMoney(st.Max),
		})
	}
	return out
}

func itemIDs(items []core.IncomeItem) []int64 {
	if len(items) == 0 {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func expenseIDs(items []core.ExpenseItem) []int64 {
	if len(items) == 0 {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
