package google

import (
	"fmt"
	"strconv"
	"strings"
)

// findMonthRow scans a month column read from the sheet and returns the
// 1-based row holding the given month, or 0 when absent. Header and
// non-numeric rows are skipped.
func findMonthRow(values [][]any, month int) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(fmt.Sprint(row[0]))
		m, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		if m == month {
			return i + 1
		}
	}
	return 0
}

// centsToEuros formats a cent amount as a decimal string with two places,
// keeping the sheet free of float rounding noise.
func centsToEuros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
