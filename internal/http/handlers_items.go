package http

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"bilancio/internal/core"
)

// handleIncome serves GET (list) and POST (create) on /api/income.
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.svc.ListIncomeItems(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "List income error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list income items")
			return
		}
		writeJSON(w, http.StatusOK, buildIncomeList(items))

	case http.MethodPost:
		item, err := parseIncomeRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := s.svc.CreateIncome(r.Context(), item)
		if err != nil {
			if isValidationError(err) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			slog.ErrorContext(r.Context(), "Create income error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save income item")
			return
		}
		s.invalidateComputed()
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleIncomeByID serves DELETE on /api/income/{id}.
func (s *Server) handleIncomeByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := parseItemID(r.URL.Path, "/api/income/")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.DeleteIncome(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "income item not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete income error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete income item")
		return
	}
	s.invalidateComputed()
	w.WriteHeader(http.StatusNoContent)
}

// handleExpenses serves GET (list) and POST (create) on /api/expenses.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.svc.ListExpenseItems(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "List expenses error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list expense items")
			return
		}
		writeJSON(w, http.StatusOK, buildExpenseList(items))

	case http.MethodPost:
		item, err := parseExpenseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := s.svc.CreateExpense(r.Context(), item)
		if err != nil {
			if isValidationError(err) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			slog.ErrorContext(r.Context(), "Create expense error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save expense item")
			return
		}
		s.invalidateComputed()
		writeJSON(w, http.StatusCreated, createdResponse{ID: id})

	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleExpenseByID serves DELETE on /api/expenses/{id}.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := parseItemID(r.URL.Path, "/api/expenses/")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "expense item not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete expense error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete expense item")
		return
	}
	s.invalidateComputed()
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidAnchorDay) ||
		errors.Is(err, core.ErrInvalidFrequency) ||
		errors.Is(err, core.ErrMissingTarget) ||
		errors.Is(err, core.ErrInvalidMonth) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrEmptyCategory)
}
