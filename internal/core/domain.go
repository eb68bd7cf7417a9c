package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Monthly  Frequency = "monthly"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Once     Frequency = "once"
)

type (
	// Frequency describes how often a budget item recurs within a month.
	Frequency string

	Money struct {
		Cents int64
	}

	// Item is the shared shape of income and expense entries. AnchorDay is the
	// day-of-month occurrence base; zero means unset. TargetYear and TargetMonth
	// are populated only for one-off items.
	Item struct {
		ID          int64 // Database ID for operations
		Description string
		Amount      Money
		AnchorDay   int
		Frequency   Frequency
		TargetYear  int
		TargetMonth int
		CreatedAt   time.Time
	}

	// IncomeItem is a recurring or one-off income entry. Received marks the
	// income as realized; only realized income moves the projected balance.
	IncomeItem struct {
		Item
		Received bool
	}

	// ExpenseItem is a recurring or one-off expense entry. Paid is informational
	// only: a due expense reduces available cash whether or not it was settled.
	ExpenseItem struct {
		Item
		Paid     bool
		Category string
		Required bool
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidAnchorDay = errors.New("anchor day out of range")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrMissingTarget    = errors.New("one-off item requires target year and month")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// IsValid reports whether the frequency is one of the supported kinds.
func (f Frequency) IsValid() bool {
	switch f {
	case Monthly, Weekly, Biweekly, Once:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the structural invariants shared by income and expense items.
// Validation happens once at construction time so the forecast engine can
// assume well-formed input and stay total.
func (it Item) Validate() error {
	if len(strings.TrimSpace(it.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(it.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := it.Amount.Validate(); err != nil {
		return err
	}
	if it.AnchorDay < 0 || it.AnchorDay > 31 {
		return ErrInvalidAnchorDay
	}
	if !it.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	if it.Frequency == Once {
		if it.TargetYear == 0 || it.TargetMonth == 0 {
			return ErrMissingTarget
		}
		if it.TargetMonth < 1 || it.TargetMonth > 12 {
			return ErrInvalidMonth
		}
	}
	return nil
}

func (inc IncomeItem) Validate() error {
	// Income never gets an implicit anchor; a monthly or weekly income without
	// an anchor day simply produces no occurrences.
	return inc.Item.Validate()
}

func (e ExpenseItem) Validate() error {
	if err := e.Item.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
