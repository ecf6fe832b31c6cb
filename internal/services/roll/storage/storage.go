package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
)

// ErrNotFound is returned when a roll ID has no record.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "roll not found")

// RollRecord is one evaluated expression.
type RollRecord struct {
	ID string
	// Expression is the canonical notation before rolling, e.g. "4d6kh3".
	Expression string
	// Detail is the notation after rolling, e.g. "[~1, 5, 3, 6]kh3".
	Detail     string
	Total      float64
	Seed       int64
	SeedSource string
	RolledAt   time.Time
}

// RollStore persists roll records.
type RollStore interface {
	PutRoll(ctx context.Context, record RollRecord) error
	GetRoll(ctx context.Context, id string) (RollRecord, error)
	// ListRolls returns up to limit records, newest first.
	ListRolls(ctx context.Context, limit int) ([]RollRecord, error)
	Close() error
}
