package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/albapepper/scoracle-standings/internal/cache"
)

type fakeRefresher struct {
	mu       sync.Mutex
	calls    []string
	resolved chan string
	errs     map[string]error
}

func (f *fakeRefresher) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeRefresher) Resolve(_ context.Context, ds cache.Dataset) (*cache.Snapshot, error) {
	f.record("resolve:" + ds.Name)
	if f.resolved != nil {
		select {
		case f.resolved <- ds.Name:
		default:
		}
	}
	return &cache.Snapshot{Dataset: ds.Name}, nil
}

func (f *fakeRefresher) ForceRefresh(_ context.Context, ds cache.Dataset) (*cache.Snapshot, error) {
	f.record("force:" + ds.Name)
	if err := f.errs[ds.Name]; err != nil {
		return nil, err
	}
	return &cache.Snapshot{Dataset: ds.Name, Refreshed: true}, nil
}

func (f *fakeRefresher) Status(_ context.Context, ds cache.Dataset) (cache.Status, error) {
	f.record("status:" + ds.Name)
	return cache.Status{Dataset: ds.Name, Stale: true}, nil
}

var datasets = []cache.Dataset{{Name: "team-stats"}, {Name: "standings"}}

func TestRefreshAll(t *testing.T) {
	f := &fakeRefresher{}
	res := RefreshAll(context.Background(), f, datasets, false)
	if strings.Join(f.calls, ",") != "resolve:team-stats,resolve:standings" {
		t.Fatalf("unexpected calls %v", f.calls)
	}
	if res.Summary() != "refreshed=0 cached=2 errors=0" {
		t.Fatalf("unexpected summary %s", res.Summary())
	}
}

func TestRefreshAllForceReportsErrors(t *testing.T) {
	f := &fakeRefresher{errs: map[string]error{"standings": errors.New("upstream 503")}}
	res := RefreshAll(context.Background(), f, datasets, true)
	if !res.Failed() {
		t.Fatal("expected failure")
	}
	if len(res.Refreshed) != 1 || res.Refreshed[0] != "team-stats" {
		t.Fatalf("unexpected refreshed %v", res.Refreshed)
	}
	if !strings.Contains(res.Errors[0], "standings: upstream 503") {
		t.Fatalf("unexpected error %q", res.Errors[0])
	}
}

func TestRecordSaveFailure(t *testing.T) {
	var res RefreshResult
	res.Record("standings", &cache.Snapshot{Refreshed: true}, errors.New("disk full"))
	if len(res.Refreshed) != 1 || !res.Failed() {
		t.Fatalf("expected refreshed and failed, got %+v", res)
	}
}

func TestStartRunsRefreshUntilCancelled(t *testing.T) {
	f := &fakeRefresher{resolved: make(chan string, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Start(ctx, f, datasets, Config{RefreshInterval: 10 * time.Millisecond},
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	select {
	case <-f.resolved:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a background resolve")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Start to return after cancel")
	}
}
