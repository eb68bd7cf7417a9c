package http

import (
	"errors"
	"log/slog"
	"net/http"

	"bilancio/internal/core"
)

// handleForecast serves GET /api/forecast?year=&month= with the full daily
// projection for one month.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.getForecast(r, year, month)
	if err != nil {
		if errors.Is(err, core.ErrInvalidMonth) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Forecast error", "error", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to compute forecast")
		return
	}

	writeJSON(w, http.StatusOK, buildForecast(f))
}

// handleCashGaps serves GET /api/forecast/gaps?year=&month= with just the
// negative-balance days.
func (s *Server) handleCashGaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.getForecast(r, year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Cash gap error", "error", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to compute cash gaps")
		return
	}

	writeJSON(w, http.StatusOK, buildCashGaps(f.CashGaps))
}

// handleCategoryStats serves GET /api/stats/categories?year=&month= with the
// per-category aggregation of expenses created in that month.
func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(year, month)
	if stats, found := s.statsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Stats cache hit", "year", year, "month", month)
		writeJSON(w, http.StatusOK, buildCategoryStats(stats))
		return
	}

	stats, err := s.svc.GetCategoryStats(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category stats error", "error", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to compute category stats")
		return
	}

	s.statsCache.Set(key, stats)
	writeJSON(w, http.StatusOK, buildCategoryStats(stats))
}

// getForecast returns the month's forecast, serving from cache when possible.
func (s *Server) getForecast(r *http.Request, year, month int) (core.MonthlyForecast, error) {
	key := cacheKey(year, month)
	if f, found := s.forecastCache.Get(key); found {
		slog.DebugContext(r.Context(), "Forecast cache hit", "year", year, "month", month)
		return f, nil
	}

	f, err := s.svc.GetForecast(r.Context(), year, month)
	if err != nil {
		return core.MonthlyForecast{}, err
	}

	s.forecastCache.Set(key, f)
	slog.DebugContext(r.Context(), "Forecast cached", "year", year, "month", month,
		"ending_balance_cents", f.EndingBalance.Cents, "gap_days", len(f.CashGaps))
	return f, nil
}
