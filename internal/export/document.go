// Package export reads and writes the portable budget document: a single JSON
// file holding the item lists and settings, used for seeding, backup and
// interchange with other frontends. The forecast engine never touches this
// format directly.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bilancio/internal/core"
)

// DocumentVersion is the current schema version of the budget document.
const DocumentVersion = 1

// monthLayout is the format of the currentMonth field.
const monthLayout = "2006-01"

// Document is the top-level shape of the budget file.
type Document struct {
	Version      int            `json:"version"`
	LastUpdated  time.Time      `json:"lastUpdated"`
	CurrentMonth string         `json:"currentMonth"`
	Income       []IncomeEntry  `json:"income"`
	Expenses     []ExpenseEntry `json:"expenses"`
	Settings     SettingsEntry  `json:"settings"`
}

// IncomeEntry is the wire form of one income item.
type IncomeEntry struct {
	ID          int64     `json:"id,omitempty"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	AnchorDay   int       `json:"anchorDay,omitempty"`
	Frequency   string    `json:"frequency"`
	TargetYear  int       `json:"targetYear,omitempty"`
	TargetMonth int       `json:"targetMonth,omitempty"`
	Received    bool      `json:"received"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// ExpenseEntry is the wire form of one expense item.
type ExpenseEntry struct {
	ID          int64     `json:"id,omitempty"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amountCents"`
	AnchorDay   int       `json:"anchorDay,omitempty"`
	Frequency   string    `json:"frequency"`
	TargetYear  int       `json:"targetYear,omitempty"`
	TargetMonth int       `json:"targetMonth,omitempty"`
	Paid        bool      `json:"paid"`
	Category    string    `json:"category"`
	Required    bool      `json:"required"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// SettingsEntry is the wire form of the budget settings.
type SettingsEntry struct {
	StartingBalanceCents int64  `json:"startingBalanceCents"`
	Currency             string `json:"currency"`
}

var ErrUnsupportedVersion = errors.New("unsupported document version")

// NewDocument assembles a document from domain values, stamping the current
// month and update time from now.
func NewDocument(income []core.IncomeItem, expenses []core.ExpenseItem, settings core.Settings, now time.Time) Document {
	doc := Document{
		Version:      DocumentVersion,
		LastUpdated:  now.UTC(),
		CurrentMonth: now.Format(monthLayout),
		Settings: SettingsEntry{
			StartingBalanceCents: settings.StartingBalance.Cents,
			Currency:             settings.Currency,
		},
	}
	for _, it := range income {
		doc.Income = append(doc.Income, IncomeEntry{
			ID:          it.ID,
			Description: it.Description,
			AmountCents: it.Amount.Cents,
			AnchorDay:   it.AnchorDay,
			Frequency:   string(it.Frequency),
			TargetYear:  it.TargetYear,
			TargetMonth: it.TargetMonth,
			Received:    it.Received,
			CreatedAt:   it.CreatedAt,
		})
	}
	for _, it := range expenses {
		doc.Expenses = append(doc.Expenses, ExpenseEntry{
			ID:          it.ID,
			Description: it.Description,
			AmountCents: it.Amount.Cents,
			AnchorDay:   it.AnchorDay,
			Frequency:   string(it.Frequency),
			TargetYear:  it.TargetYear,
			TargetMonth: it.TargetMonth,
			Paid:        it.Paid,
			Category:    it.Category,
			Required:    it.Required,
			CreatedAt:   it.CreatedAt,
		})
	}
	return doc
}

// Items converts the document's entries back into validated domain items.
// Entries failing validation abort the conversion: a budget file is either
// fully usable or rejected.
func (d Document) Items() ([]core.IncomeItem, []core.ExpenseItem, core.Settings, error) {
	var income []core.IncomeItem
	for i, e := range d.Income {
		it := core.IncomeItem{
			Item: core.Item{
				ID:          e.ID,
				Description: e.Description,
				Amount:      core.Money{Cents: e.AmountCents},
				AnchorDay:   e.AnchorDay,
				Frequency:   core.Frequency(e.Frequency),
				TargetYear:  e.TargetYear,
				TargetMonth: e.TargetMonth,
				CreatedAt:   e.CreatedAt,
			},
			Received: e.Received,
		}
		if err := it.Validate(); err != nil {
			return nil, nil, core.Settings{}, fmt.Errorf("income entry %d: %w", i, err)
		}
		income = append(income, it)
	}

	var expenses []core.ExpenseItem
	for i, e := range d.Expenses {
		it := core.ExpenseItem{
			Item: core.Item{
				ID:          e.ID,
				Description: e.Description,
				Amount:      core.Money{Cents: e.AmountCents},
				AnchorDay:   e.AnchorDay,
				Frequency:   core.Frequency(e.Frequency),
				TargetYear:  e.TargetYear,
				TargetMonth: e.TargetMonth,
				CreatedAt:   e.CreatedAt,
			},
			Paid:     e.Paid,
			Category: e.Category,
			Required: e.Required,
		}
		if err := it.Validate(); err != nil {
			return nil, nil, core.Settings{}, fmt.Errorf("expense entry %d: %w", i, err)
		}
		expenses = append(expenses, it)
	}

	settings := core.Settings{
		StartingBalance: core.Money{Cents: d.Settings.StartingBalanceCents},
		Currency:        d.Settings.Currency,
	}
	return income, expenses, settings, nil
}

// Save writes the document atomically: to a temp file first, then renamed
// into place so a crash mid-write never truncates the budget file.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".budget-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads and parses a budget document from disk.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read budget document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse budget document: %w", err)
	}
	if doc.Version > DocumentVersion {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return doc, nil
}
