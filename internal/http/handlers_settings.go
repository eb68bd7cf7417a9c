package http

import (
	"log/slog"
	"net/http"
	"time"

	"bilancio/internal/export"
)

// handleSettings serves GET and PUT on /api/settings.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.svc.GetSettings(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Get settings error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			StartingBalance: buildMoney(settings.StartingBalance),
			Currency:        settings.Currency,
		})

	case http.MethodPut:
		settings, err := parseSettingsRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.svc.UpdateSettings(r.Context(), settings); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.invalidateComputed()
		writeJSON(w, http.StatusOK, settingsResponse{
			StartingBalance: buildMoney(settings.StartingBalance),
			Currency:        settings.Currency,
		})

	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleExport serves GET /api/export with the whole budget as a portable
// document, the same format the file exporter writes to disk.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	income, err := s.svc.ListIncomeItems(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list income error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export budget")
		return
	}
	expenses, err := s.svc.ListExpenseItems(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list expenses error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export budget")
		return
	}
	settings, err := s.svc.GetSettings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export settings error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export budget")
		return
	}

	doc := export.NewDocument(income, expenses, settings, time.Now())
	w.Header().Set("Content-Disposition", `attachment; filename="budget.json"`)
	writeJSON(w, http.StatusOK, doc)
}
