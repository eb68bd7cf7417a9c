package memory

import (
	"context"
	"testing"

	"bilancio/internal/core"
)

func TestMemoryStoreWriteAndReplace(t *testing.T) {
	s := New()

	ref, err := s.WriteMonthlySummary(context.Background(), core.MonthlyForecast{
		Year: 2024, Month: 2, EndingBalance: core.Money{Cents: 85000},
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected write: ref=%q err=%v", ref, err)
	}

	ref, err = s.WriteMonthlySummary(context.Background(), core.MonthlyForecast{
		Year: 2024, Month: 3, EndingBalance: core.Money{Cents: 90000},
	})
	if err != nil || ref != "mem:2" {
		t.Fatalf("unexpected write: ref=%q err=%v", ref, err)
	}

	// Rewriting a month replaces it instead of appending.
	ref, err = s.WriteMonthlySummary(context.Background(), core.MonthlyForecast{
		Year: 2024, Month: 2, EndingBalance: core.Money{Cents: 70000},
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected rewrite: ref=%q err=%v", ref, err)
	}

	got := s.Summaries()
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].EndingBalance.Cents != 70000 {
		t.Errorf("replaced summary ending = %d, want 70000", got[0].EndingBalance.Cents)
	}
}
