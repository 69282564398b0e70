package out

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"fittrack/internal/modules/tracker/domain"
	trackerout "fittrack/internal/modules/tracker/port/out"
	apperrors "fittrack/internal/platform/errors"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore serves both repositories from one database. Entries are keyed by date.
type SQLiteStore struct {
	db *sqlx.DB
}

var (
	_ trackerout.EntryRepository = (*SQLiteStore)(nil)
	_ trackerout.GoalsRepository = (*SQLiteStore)(nil)
)

type entryRow struct {
	ID     string          `db:"id"`
	Date   string          `db:"date"`
	Weight sql.NullFloat64 `db:"weight"`
	Steps  sql.NullInt64   `db:"steps"`
	Water  sql.NullInt64   `db:"water"`
}

type goalsRow struct {
	DailySteps   int             `db:"daily_steps"`
	DailyWater   int             `db:"daily_water"`
	TargetWeight sql.NullFloat64 `db:"target_weight"`
}

// Read rows keep the measurement columns untyped so a value of the wrong type is
// a decode error rather than a query error.
type storedEntryRow struct {
	ID     string `db:"id"`
	Date   string `db:"date"`
	Weight any    `db:"weight"`
	Steps  any    `db:"steps"`
	Water  any    `db:"water"`
}

type storedGoalsRow struct {
	DailySteps   any `db:"daily_steps"`
	DailyWater   any `db:"daily_water"`
	TargetWeight any `db:"target_weight"`
}

func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer keeps read-modify-write sequences from interleaving.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrate(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, dir)
	if err != nil {
		return fmt.Errorf("new migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Upsert(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO entries (date, id, weight, steps, water)
VALUES (:date, :id, :weight, :steps, :water)
ON CONFLICT(date) DO UPDATE SET
  id=excluded.id,
  weight=excluded.weight,
  steps=excluded.steps,
  water=excluded.water;
`
	if _, err := s.db.NamedExecContext(ctx, stmt, toEntryRow(entry)); err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// List skips rows that cannot be decoded.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryxContext(ctx, `SELECT id, date, weight, steps, water FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	out := []domain.Entry{}
	for rows.Next() {
		var row storedEntryRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry, err := row.toDomain()
		if err != nil {
			slog.Warn("skipping unreadable entry row", "date", row.Date, "error", err)
			continue
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

// FindByDate reports an unreadable row as missing so the next save replaces it.
func (s *SQLiteStore) FindByDate(ctx context.Context, date string) (domain.Entry, error) {
	var row storedEntryRow
	err := s.db.GetContext(ctx, &row, `SELECT id, date, weight, steps, water FROM entries WHERE date = ?`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("find entry: %w", err)
	}
	entry, err := row.toDomain()
	if err != nil {
		slog.Warn("entry row is unreadable", "date", date, "error", err)
		return domain.Entry{}, apperrors.ErrNotFound
	}
	return entry, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, goals domain.Goals) error {
	const stmt = `
INSERT INTO goals (singleton, daily_steps, daily_water, target_weight)
VALUES (1, :daily_steps, :daily_water, :target_weight)
ON CONFLICT(singleton) DO UPDATE SET
  daily_steps=excluded.daily_steps,
  daily_water=excluded.daily_water,
  target_weight=excluded.target_weight;
`
	row := goalsRow{DailySteps: goals.DailySteps, DailyWater: goals.DailyWater}
	if goals.TargetWeight != nil {
		row.TargetWeight = sql.NullFloat64{Float64: *goals.TargetWeight, Valid: true}
	}
	if _, err := s.db.NamedExecContext(ctx, stmt, row); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

// Load falls back to defaults when no row exists or the row cannot be decoded.
// Query failures are returned.
func (s *SQLiteStore) Load(ctx context.Context) (domain.Goals, error) {
	var row storedGoalsRow
	err := s.db.GetContext(ctx, &row, `SELECT daily_steps, daily_water, target_weight FROM goals WHERE singleton = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultGoals(), nil
	}
	if err != nil {
		return domain.Goals{}, fmt.Errorf("load goals: %w", err)
	}
	goals, err := row.toDomain()
	if err != nil {
		slog.Warn("goals row is unreadable, using defaults", "error", err)
		return domain.DefaultGoals(), nil
	}
	return goals.Normalize(), nil
}

func toEntryRow(e domain.Entry) entryRow {
	row := entryRow{ID: e.ID, Date: e.Date}
	if e.Weight != nil {
		row.Weight = sql.NullFloat64{Float64: *e.Weight, Valid: true}
	}
	if e.Steps != nil {
		row.Steps = sql.NullInt64{Int64: int64(*e.Steps), Valid: true}
	}
	if e.Water != nil {
		row.Water = sql.NullInt64{Int64: int64(*e.Water), Valid: true}
	}
	return row
}

func (r storedEntryRow) toDomain() (domain.Entry, error) {
	e := domain.Entry{ID: r.ID, Date: r.Date}
	var err error
	if e.Weight, err = decodeFloat(r.Weight); err != nil {
		return domain.Entry{}, fmt.Errorf("weight: %w", err)
	}
	if e.Steps, err = decodeInt(r.Steps); err != nil {
		return domain.Entry{}, fmt.Errorf("steps: %w", err)
	}
	if e.Water, err = decodeInt(r.Water); err != nil {
		return domain.Entry{}, fmt.Errorf("water: %w", err)
	}
	return e, nil
}

func (r storedGoalsRow) toDomain() (domain.Goals, error) {
	steps, err := decodeInt(r.DailySteps)
	if err != nil || steps == nil {
		return domain.Goals{}, fmt.Errorf("daily_steps: %v", r.DailySteps)
	}
	water, err := decodeInt(r.DailyWater)
	if err != nil || water == nil {
		return domain.Goals{}, fmt.Errorf("daily_water: %v", r.DailyWater)
	}
	target, err := decodeFloat(r.TargetWeight)
	if err != nil {
		return domain.Goals{}, fmt.Errorf("target_weight: %w", err)
	}
	return domain.Goals{DailySteps: *steps, DailyWater: *water, TargetWeight: target}, nil
}

func decodeFloat(v any) (*float64, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return domain.Float(n), nil
	case int64:
		return domain.Float(float64(n)), nil
	default:
		return nil, fmt.Errorf("not a number: %v", v)
	}
}

func decodeInt(v any) (*int, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case int64:
		return domain.Int(int(n)), nil
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("not a whole number: %v", n)
		}
		return domain.Int(int(n)), nil
	default:
		return nil, fmt.Errorf("not a number: %v", v)
	}
}
