package maintenance

import (
	"fmt"

	"github.com/albapepper/scoracle-standings/internal/cache"
)

// RefreshResult tracks counts and errors from a refresh pass.
type RefreshResult struct {
	Refreshed []string
	Cached    []string
	Errors    []string
}

// Record files one dataset outcome. A snapshot returned alongside an error
// (persisting failed after a good fetch) counts as both refreshed and failed.
func (r *RefreshResult) Record(name string, snap *cache.Snapshot, err error) {
	if snap != nil {
		if snap.Refreshed {
			r.Refreshed = append(r.Refreshed, name)
		} else {
			r.Cached = append(r.Cached, name)
		}
	}
	if err != nil {
		r.AddErrorf("%s: %v", name, err)
	}
}

// AddErrorf records a formatted error message.
func (r *RefreshResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Failed reports whether any dataset failed.
func (r *RefreshResult) Failed() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary of the refresh pass.
func (r *RefreshResult) Summary() string {
	return fmt.Sprintf("refreshed=%d cached=%d errors=%d",
		len(r.Refreshed), len(r.Cached), len(r.Errors))
}
