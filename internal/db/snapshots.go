package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/scoracle-standings/internal/cache"
)

// querier is the subset of Pool the snapshot store needs.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SnapshotStore persists dataset snapshots in the dataset_snapshots table.
// It satisfies cache.Store.
type SnapshotStore struct {
	q querier
}

// NewSnapshotStore creates a store over pool.
func NewSnapshotStore(pool *Pool) *SnapshotStore {
	return &SnapshotStore{q: pool}
}

// Load returns the stored payload for name, or cache.ErrSnapshotMissing.
func (s *SnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	var payload string
	if err := s.q.QueryRow(ctx, "snapshot_load", name).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", name, cache.ErrSnapshotMissing)
		}
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return []byte(payload), nil
}

// Save upserts the payload for name.
func (s *SnapshotStore) Save(ctx context.Context, name string, data []byte) error {
	if _, err := s.q.Exec(ctx, "snapshot_save", name, string(data)); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}
