package forecast

import "bilancio/internal/core"

// AggregateByCategory groups expenses by category and computes per-category
// count, sum, average, min and max for (year, month).
//
// The aggregation window is the expense's creation timestamp, not its
// occurrence days: the statistics answer "what did I add this month", while
// the projector answers "what is due this month". Categories with no matching
// expenses produce no row; result order follows first-seen category order.
func AggregateByCategory(expenses []core.ExpenseItem, year, month int) []core.CategoryStat {
	var order []string
	groups := make(map[string]*core.CategoryStat)

	for _, e := range expenses {
		created := e.CreatedAt
		if created.Year() != year || int(created.Month()) != month {
			continue
		}

		stat, ok := groups[e.Category]
		if !ok {
			stat = &core.CategoryStat{
				Category: e.Category,
				Min:      e.Amount,
				Max:      e.Amount,
			}
			groups[e.Category] = stat
			order = append(order, e.Category)
		}

		stat.Count++
		stat.Total = stat.Total.Add(e.Amount)
		if e.Amount.Cents < stat.Min.Cents {
			stat.Min = e.Amount
		}
		if e.Amount.Cents > stat.Max.Cents {
			stat.Max = e.Amount
		}
	}

	stats := make([]core.CategoryStat, 0, len(order))
	for _, category := range order {
		stat := groups[category]
		stat.Average = core.Money{Cents: stat.Total.Cents / int64(stat.Count)}
		stats = append(stats, *stat)
	}
	return stats
}
