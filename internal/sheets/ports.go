package sheets

import (
	"context"

	"bilancio/internal/core"
)

// Ports for outbound adapters.
type (
	// ForecastWriter publishes the headline numbers of a computed month to an
	// external sheet, one row per month.
	ForecastWriter interface {
		WriteMonthlySummary(ctx context.Context, f core.MonthlyForecast) (rowRef string, err error)
	}
)
