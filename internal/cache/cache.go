// Package cache keeps one persisted snapshot per upstream dataset and
// refreshes it from the remote API once it is older than the dataset's
// maximum age.
//
// Refreshes for the same dataset are serialized: concurrent callers share a
// single in-flight load/refresh, and a per-dataset mutex guards every write.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store persists raw snapshot bytes by dataset name.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Fetcher retrieves a dataset payload from the remote API. A nil body with a
// nil error means the upstream reported the data as not modified. A non-nil
// empty body is invalid.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Cache is the time-based snapshot cache.
type Cache struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
	clock   func() time.Time

	group singleflight.Group
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) { c.clock = clock }
}

// New creates a cache over store that refreshes through fetcher.
func New(store Store, fetcher Fetcher, logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		clock:   time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the persisted snapshot for ds. A missing or corrupt snapshot is
// an error; deployments must seed one.
func (c *Cache) Load(ctx context.Context, ds Dataset) (*Snapshot, error) {
	data, err := c.store.Load(ctx, ds.Name)
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", ds.Name, err)
	}
	return parseSnapshot(ds, data)
}

// RefreshIfStale returns snap unchanged while it is younger than
// ds.MaxAgeHours. Otherwise it fetches, stamps and persists a new snapshot.
// A failed fetch is logged and snap is returned as-is.
func (c *Cache) RefreshIfStale(ctx context.Context, snap *Snapshot, ds Dataset) *Snapshot {
	hours := snap.HoursSinceCheck(c.clock())
	if hours <= ds.MaxAgeHours {
		c.logger.Info("Serving cached snapshot",
			"dataset", ds.Name, "hours_since_check", hours, "max_age_hours", ds.MaxAgeHours)
		return snap
	}

	c.logger.Info("Snapshot stale, fetching from remote",
		"dataset", ds.Name, "hours_since_check", hours, "max_age_hours", ds.MaxAgeHours)

	fresh, err := c.fetchAndStore(ctx, snap, ds)
	switch {
	case fresh != nil && err != nil:
		c.logger.Error("Failed to persist refreshed snapshot", "dataset", ds.Name, "error", err)
		return fresh
	case err != nil:
		c.logger.Warn("Refresh failed, serving stale snapshot",
			"dataset", ds.Name, "last_checked_at", snap.LastCheckedAt, "error", err)
		return snap
	default:
		return fresh
	}
}

// Resolve loads the snapshot for ds and refreshes it if stale. Concurrent
// calls for the same dataset share one result. The shared work runs detached
// from the caller's cancellation so one departing caller cannot cancel it for
// the others; the fetcher's own timeout still bounds it.
func (c *Cache) Resolve(ctx context.Context, ds Dataset) (*Snapshot, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(ds.Name, func() (interface{}, error) {
		lock := c.lockFor(ds.Name)
		lock.Lock()
		defer lock.Unlock()

		snap, err := c.Load(shared, ds)
		if err != nil {
			return nil, err
		}
		return c.RefreshIfStale(shared, snap, ds), nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// ForceRefresh fetches ds regardless of age. Unlike RefreshIfStale it reports
// fetch failures, and it can seed a dataset that has no snapshot yet.
func (c *Cache) ForceRefresh(ctx context.Context, ds Dataset) (*Snapshot, error) {
	lock := c.lockFor(ds.Name)
	lock.Lock()
	defer lock.Unlock()

	prev, err := c.Load(ctx, ds)
	if err != nil && !errors.Is(err, ErrSnapshotMissing) {
		return nil, err
	}
	return c.fetchAndStore(ctx, prev, ds)
}

// Status describes a dataset's snapshot age.
type Status struct {
	Dataset         string    `json:"dataset"`
	LastCheckedAt   time.Time `json:"last_checked_at"`
	HoursSinceCheck float64   `json:"hours_since_check"`
	MaxAgeHours     float64   `json:"max_age_hours"`
	Stale           bool      `json:"stale"`
}

// Status reports the age of the persisted snapshot for ds without refreshing.
func (c *Cache) Status(ctx context.Context, ds Dataset) (Status, error) {
	snap, err := c.Load(ctx, ds)
	if err != nil {
		return Status{Dataset: ds.Name, MaxAgeHours: ds.MaxAgeHours}, err
	}
	hours := snap.HoursSinceCheck(c.clock())
	st := Status{
		Dataset:       ds.Name,
		LastCheckedAt: snap.LastCheckedAt,
		MaxAgeHours:   ds.MaxAgeHours,
		Stale:         hours > ds.MaxAgeHours,
	}
	if !snap.LastCheckedAt.IsZero() {
		st.HoursSinceCheck = hours
	}
	return st, nil
}

// fetchAndStore fetches ds, stamps the payload and persists it. When only the
// save fails it returns both the fresh snapshot and the error.
func (c *Cache) fetchAndStore(ctx context.Context, prev *Snapshot, ds Dataset) (*Snapshot, error) {
	body, err := c.fetcher.Fetch(ctx, ds.RemotePath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ds.Name, err)
	}

	if body == nil {
		if prev == nil {
			return nil, fmt.Errorf("fetch %s: not modified but no snapshot is cached", ds.Name)
		}
		c.logger.Info("Remote reports not modified", "dataset", ds.Name)
		body = prev.Payload
	}

	now := c.clock().UTC()
	stamped, err := stamp(body, now)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: invalid payload: %w", ds.Name, err)
	}

	fresh := &Snapshot{
		Dataset:       ds.Name,
		Payload:       stamped,
		LastCheckedAt: now,
		Refreshed:     true,
	}
	if err := c.store.Save(ctx, ds.Name, stamped); err != nil {
		return fresh, fmt.Errorf("save %s snapshot: %w", ds.Name, err)
	}
	c.logger.Info("Snapshot refreshed", "dataset", ds.Name, "bytes", len(stamped))
	return fresh, nil
}

func (c *Cache) lockFor(name string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.locks[name]; ok {
		return l
	}
	l := &sync.Mutex{}
	c.locks[name] = l
	return l
}
