// Package memory is an in-process ForecastWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"bilancio/internal/core"
)

type Store struct {
	mu        sync.Mutex
	summaries []core.MonthlyForecast
}

func New() *Store {
	return &Store{}
}

// WriteMonthlySummary records the forecast and returns a synthetic row
// reference. A month written twice replaces the earlier entry, matching how
// the sheet adapter updates rows in place.
func (s *Store) WriteMonthlySummary(_ context.Context, f core.MonthlyForecast) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.summaries {
		if existing.Year == f.Year && existing.Month == f.Month {
			s.summaries[i] = f
			return fmt.Sprintf("mem:%d", i+1), nil
		}
	}
	s.summaries = append(s.summaries, f)
	return fmt.Sprintf("mem:%d", len(s.summaries)), nil
}

// Summaries returns a copy of everything written so far.
func (s *Store) Summaries() []core.MonthlyForecast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.MonthlyForecast(nil), s.summaries...)
}
