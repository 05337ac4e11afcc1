package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// LastCheckedField is the top-level field stamped into every persisted
// snapshot on a successful refresh.
const LastCheckedField = "lastCheckedAt"

// legacyLastCheckedField is the stamp written by earlier deployments.
const legacyLastCheckedField = "nbaAppLastCheck"

// lastCheckedLayout matches JavaScript's Date.toISOString.
const lastCheckedLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrSnapshotMissing means no snapshot has been persisted for a dataset.
	ErrSnapshotMissing = errors.New("snapshot missing")
	// ErrSnapshotCorrupt means the persisted snapshot is not a JSON object.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// Dataset describes one upstream dataset and how long its snapshot stays fresh.
type Dataset struct {
	Name        string  // snapshot name, e.g. "standings"
	RemotePath  string  // path under the API prefix, e.g. "nba/standings.json"
	DateField   string  // payload field holding the API's own as-of date
	MaxAgeHours float64 // fractional hours permitted
}

// Snapshot is the last known payload of a dataset.
type Snapshot struct {
	Dataset       string
	Payload       json.RawMessage
	LastCheckedAt time.Time // zero when neither a stamp nor a date field parses
	Refreshed     bool      // true when this snapshot was fetched by the current call
}

// HoursSinceCheck returns the hours elapsed between the last check and now.
// An unknown check time is infinitely old.
func (s *Snapshot) HoursSinceCheck(now time.Time) float64 {
	if s.LastCheckedAt.IsZero() {
		return math.Inf(1)
	}
	return now.Sub(s.LastCheckedAt).Hours()
}

// parseSnapshot validates a persisted payload and resolves its effective
// last-checked time.
func parseSnapshot(ds Dataset, data []byte) (*Snapshot, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", ds.Name, ErrSnapshotCorrupt, err)
	}
	return &Snapshot{
		Dataset:       ds.Name,
		Payload:       json.RawMessage(data),
		LastCheckedAt: effectiveCheckTime(fields, ds.DateField),
	}, nil
}

// effectiveCheckTime prefers the stamp written by this cache and falls back
// to the dataset's own date field, which may carry no time of day.
func effectiveCheckTime(fields map[string]json.RawMessage, dateField string) time.Time {
	keys := []string{LastCheckedField, legacyLastCheckedField}
	if dateField != "" {
		keys = append(keys, dateField)
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if t, ok := parseTime(s); ok {
			return t
		}
	}
	return time.Time{}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts ISO-8601 timestamps and bare dates. Values without a zone
// are read as UTC.
func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stamp returns payload with LastCheckedField set to at.
func stamp(payload []byte, at time.Time) ([]byte, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	ts, err := json.Marshal(at.UTC().Format(lastCheckedLayout))
	if err != nil {
		return nil, err
	}
	fields[LastCheckedField] = ts
	delete(fields, legacyLastCheckedField)
	return json.Marshal(fields)
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("payload is not a JSON object")
	}
	return fields, nil
}
