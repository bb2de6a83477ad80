package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"personal-site/internal/domain/entity"
	"personal-site/internal/observability/metrics"
	"personal-site/internal/repository"
)

// counterID is the singleton visit counter document.
const counterID = "visits"

// maxIncrementRetries bounds the internal retry loop for conflicting
// increment transactions before giving up with entity.ErrStoreConflict.
const maxIncrementRetries = 5

// CounterRepo wraps the singleton counter row. The value column is
// JSONB, mirroring the dynamically shaped document it models, so a
// corrupted non-numeric value is representable and recoverable.
type CounterRepo struct {
	db *sql.DB
}

func NewCounterRepo(db *sql.DB) repository.CounterRepository {
	return &CounterRepo{db: db}
}

// Increment advances the counter by exactly one inside a serializable
// transaction: read current, create with 1 if absent, reset to 1 if
// non-numeric, otherwise write current+1. Conflicting transactions are
// retried internally; exhausting the retries reports ErrStoreConflict.
func (repo *CounterRepo) Increment(ctx context.Context) (int64, error) {
	defer observe("counter_increment")()
	var lastErr error
	for attempt := 0; attempt < maxIncrementRetries; attempt++ {
		value, err := repo.incrementOnce(ctx)
		if err == nil {
			return value, nil
		}
		if !isSerializationFailure(err) {
			return 0, classifyStoreError("Increment", err)
		}
		metrics.RecordCounterRetry()
		lastErr = err
	}
	return 0, fmt.Errorf("Increment: %w: %v", entity.ErrStoreConflict, lastErr)
}

func (repo *CounterRepo) incrementOnce(ctx context.Context) (int64, error) {
	tx, err := repo.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE id = $1 FOR UPDATE`, counterID).Scan(&raw)

	var next int64
	switch {
	case err == sql.ErrNoRows:
		next = 1
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO counters (id, value) VALUES ($1, '1'::jsonb)`, counterID); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		// 数値でない値は破損として 1 にリセットする
		next = decodeCounterValue(raw) + 1
		encoded, err := json.Marshal(next)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE counters SET value = $2::jsonb WHERE id = $1`, counterID, encoded); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

// Read returns the current counter value without writing, defaulting to
// 1 when the record is absent or corrupt. This is the fallback path for
// callers that must not increment.
func (repo *CounterRepo) Read(ctx context.Context) (int64, error) {
	defer observe("counter_read")()
	var raw []byte
	err := repo.db.QueryRowContext(ctx,
		`SELECT value FROM counters WHERE id = $1`, counterID).Scan(&raw)
	if err == sql.ErrNoRows {
		return 1, nil
	}
	if err != nil {
		return 0, classifyStoreError("Read", err)
	}
	value := decodeCounterValue(raw)
	if value == 0 {
		return 1, nil
	}
	return value, nil
}

// decodeCounterValue parses the stored JSON value, returning 0 for
// anything that is not a number (the caller treats 0 as "start over").
func decodeCounterValue(raw []byte) int64 {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0
	}
	return int64(f)
}

// isSerializationFailure reports whether the error is a transient
// transaction conflict worth retrying: serialization failure or
// deadlock (SQLSTATE 40001/40P01), or a unique violation (23505).
// The latter happens when two transactions race to create the counter
// row; the loser re-reads the now-present row on the next attempt.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01" || pgErr.Code == "23505"
	}
	return false
}

// classifyStoreError maps driver-level failures onto the domain's store
// errors. Network-level failures and timeouts become
// entity.ErrStoreUnavailable; anything else passes through wrapped.
func classifyStoreError(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
