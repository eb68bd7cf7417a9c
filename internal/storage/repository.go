package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bilancio/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists budget items, settings and computed forecast
// snapshots. Deletes are soft so a recomputed chain can still explain past
// months if needed.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateIncome stores a new income item and returns its database ID.
func (r *SQLiteRepository) CreateIncome(ctx context.Context, it core.IncomeItem) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO income_items (description, amount_cents, anchor_day, frequency, target_year, target_month, received)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.Description, it.Amount.Cents, it.AnchorDay, string(it.Frequency),
		it.TargetYear, it.TargetMonth, boolToInt(it.Received))
	if err != nil {
		return 0, fmt.Errorf("insert income item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income item id: %w", err)
	}

	slog.InfoContext(ctx, "Income item saved",
		"id", id,
		"description", it.Description,
		"amount_cents", it.Amount.Cents,
		"frequency", it.Frequency)

	return id, nil
}

// CreateExpense stores a new expense item and returns its database ID.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, it core.ExpenseItem) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expense_items (description, amount_cents, anchor_day, frequency, target_year, target_month, paid, category, required)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.Description, it.Amount.Cents, it.AnchorDay, string(it.Frequency),
		it.TargetYear, it.TargetMonth, boolToInt(it.Paid), it.Category, boolToInt(it.Required))
	if err != nil {
		return 0, fmt.Errorf("insert expense item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense item id: %w", err)
	}

	slog.InfoContext(ctx, "Expense item saved",
		"id", id,
		"description", it.Description,
		"amount_cents", it.Amount.Cents,
		"category", it.Category,
		"frequency", it.Frequency)

	return id, nil
}

// DeleteIncome soft deletes an income item.
func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "income_items", id)
}

// DeleteExpense soft deletes an expense item.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "expense_items", id)
}

func (r *SQLiteRepository) softDelete(ctx context.Context, table string, id int64) error {
	// table is always one of the two fixed item tables, never user input.
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL", table), id)
	if err != nil {
		return fmt.Errorf("soft delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	slog.InfoContext(ctx, "Item soft deleted", "table", table, "id", id)
	return nil
}

// ListIncomeItems returns all live income items in creation order.
func (r *SQLiteRepository) ListIncomeItems(ctx context.Context) ([]core.IncomeItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, anchor_day, frequency, target_year, target_month, received, created_at
		FROM income_items WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list income items: %w", err)
	}
	defer rows.Close()

	var items []core.IncomeItem
	for rows.Next() {
		var it core.IncomeItem
		var freq string
		var received int
		var createdAt time.Time
		if err := rows.Scan(&it.ID, &it.Description, &it.Amount.Cents, &it.AnchorDay,
			&freq, &it.TargetYear, &it.TargetMonth, &received, &createdAt); err != nil {
			return nil, fmt.Errorf("scan income item: %w", err)
		}
		it.Frequency = core.Frequency(freq)
		it.Received = received != 0
		it.CreatedAt = createdAt
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate income items: %w", err)
	}
	return items, nil
}

// ListExpenseItems returns all live expense items in creation order.
func (r *SQLiteRepository) ListExpenseItems(ctx context.Context) ([]core.ExpenseItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, anchor_day, frequency, target_year, target_month, paid, category, required, created_at
		FROM expense_items WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expense items: %w", err)
	}
	defer rows.Close()

	var items []core.ExpenseItem
	for rows.Next() {
		var it core.ExpenseItem
		var freq string
		var paid, required int
		var createdAt time.Time
		if err := rows.Scan(&it.ID, &it.Description, &it.Amount.Cents, &it.AnchorDay,
			&freq, &it.TargetYear, &it.TargetMonth, &paid, &it.Category, &required, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense item: %w", err)
		}
		it.Frequency = core.Frequency(freq)
		it.Paid = paid != 0
		it.Required = required != 0
		it.CreatedAt = createdAt
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense items: %w", err)
	}
	return items, nil
}

// GetSettings returns the singleton budget settings row.
func (r *SQLiteRepository) GetSettings(ctx context.Context) (core.Settings, error) {
	var s core.Settings
	err := r.db.QueryRowContext(ctx,
		"SELECT starting_balance_cents, currency FROM settings WHERE id = 1").
		Scan(&s.StartingBalance.Cents, &s.Currency)
	if err != nil {
		return core.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// UpdateSettings replaces the singleton budget settings row.
func (r *SQLiteRepository) UpdateSettings(ctx context.Context, s core.Settings) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE settings SET starting_balance_cents = ?, currency = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1",
		s.StartingBalance.Cents, s.Currency)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings updated",
		"starting_balance_cents", s.StartingBalance.Cents,
		"currency", s.Currency)
	return nil
}

// SaveSnapshot upserts the computed forecast for one month. The full forecast
// is stored as a JSON payload next to the headline numbers so the API can
// serve stored months without recomputing.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, f core.MonthlyForecast) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal forecast payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO forecast_snapshots (year, month, starting_balance_cents, ending_balance_cents, total_income_cents, total_expenses_cents, gap_days, payload, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (year, month) DO UPDATE SET
			starting_balance_cents = excluded.starting_balance_cents,
			ending_balance_cents = excluded.ending_balance_cents,
			total_income_cents = excluded.total_income_cents,
			total_expenses_cents = excluded.total_expenses_cents,
			gap_days = excluded.gap_days,
			payload = excluded.payload,
			computed_at = CURRENT_TIMESTAMP`,
		f.Year, f.Month, f.StartingBalance.Cents, f.EndingBalance.Cents,
		f.TotalIncome.Cents, f.TotalExpenses.Cents, len(f.CashGaps), string(payload))
	if err != nil {
		return fmt.Errorf("save forecast snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Forecast snapshot saved",
		"year", f.Year,
		"month", f.Month,
		"ending_balance_cents", f.EndingBalance.Cents,
		"gap_days", len(f.CashGaps))
	return nil
}

// GetSnapshot loads a stored monthly forecast. Returns sql.ErrNoRows when the
// month was never computed.
func (r *SQLiteRepository) GetSnapshot(ctx context.Context, year, month int) (core.MonthlyForecast, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		"SELECT payload FROM forecast_snapshots WHERE year = ? AND month = ?", year, month).
		Scan(&payload)
	if err != nil {
		return core.MonthlyForecast{}, fmt.Errorf("get forecast snapshot: %w", err)
	}

	var f core.MonthlyForecast
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return core.MonthlyForecast{}, fmt.Errorf("unmarshal forecast payload: %w", err)
	}
	return f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
