package repository

import "context"

// CounterRepository wraps the singleton visit counter record.
//
// Increment performs the whole read-modify-write as one transaction:
// two concurrent callers must never observe the same current value and
// both write current+1. The store's transaction primitive serializes
// conflicting pairs, retrying internally a bounded number of times
// before giving up with entity.ErrStoreConflict. An unreachable store
// yields entity.ErrStoreUnavailable.
//
// Read is the read-only fallback for callers that cannot or should not
// mutate. It defaults to 1 when the record is absent and never writes.
type CounterRepository interface {
	Increment(ctx context.Context) (int64, error)
	Read(ctx context.Context) (int64, error)
}
