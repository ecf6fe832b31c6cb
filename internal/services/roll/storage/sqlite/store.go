package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/dicenotation/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DefaultListLimit caps ListRolls when the caller passes no positive limit.
const DefaultListLimit = 50

// Store is a SQLite-backed storage.RollStore.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutRoll inserts a roll record. IDs are unique.
func (s *Store) PutRoll(ctx context.Context, record storage.RollRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("roll id is required")
	}
	if strings.TrimSpace(record.Expression) == "" {
		return fmt.Errorf("roll expression is required")
	}
	if record.RolledAt.IsZero() {
		record.RolledAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO rolls (id, expression, detail, total, seed, seed_source, rolled_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Expression,
		record.Detail,
		record.Total,
		record.Seed,
		record.SeedSource,
		record.RolledAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("put roll %s: %w", record.ID, err)
	}
	return nil
}

// GetRoll returns the record with the given ID, or storage.ErrNotFound.
func (s *Store) GetRoll(ctx context.Context, id string) (storage.RollRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RollRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RollRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, expression, detail, total, seed, seed_source, rolled_at
FROM rolls WHERE id = ?`, id)
	record, err := scanRoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.RollRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.RollRecord{}, fmt.Errorf("get roll %s: %w", id, err)
	}
	return record, nil
}

// ListRolls returns up to limit records, newest first. Rolls recorded at the
// same instant come back in reverse insertion order.
func (s *Store) ListRolls(ctx context.Context, limit int) ([]storage.RollRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, expression, detail, total, seed, seed_source, rolled_at
FROM rolls ORDER BY rolled_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()

	var records []storage.RollRecord
	for rows.Next() {
		record, err := scanRoll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoll(row scanner) (storage.RollRecord, error) {
	var (
		record   storage.RollRecord
		rolledAt int64
	)
	if err := row.Scan(
		&record.ID,
		&record.Expression,
		&record.Detail,
		&record.Total,
		&record.Seed,
		&record.SeedSource,
		&rolledAt,
	); err != nil {
		return storage.RollRecord{}, err
	}
	record.RolledAt = time.Unix(0, rolledAt).UTC()
	return record, nil
}

var _ storage.RollStore = (*Store)(nil)
