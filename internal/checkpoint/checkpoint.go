// Package checkpoint records which page units (seasons within a league)
// have been fully extracted, so an interrupted run resumes instead of
// re-scraping. At most the work since the last autosave is repeated.
package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// snapshot is the durable form: one file per scope.
type snapshot struct {
	Scope     string    `json:"scope"`
	Completed []string  `json:"completed_units"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker tracks completed units for one scope and autosaves periodically.
type Tracker struct {
	path      string
	scope     string
	done      map[string]bool
	dirty     int // units completed since last save
	saveEvery int
}

// Open loads the tracker for a scope, starting empty when no checkpoint
// file exists or when the file belongs to a different scope. saveEvery is
// the autosave interval in completed units (values < 1 mean save on every
// unit).
func Open(path, scope string, saveEvery int) (*Tracker, error) {
	if saveEvery < 1 {
		saveEvery = 1
	}
	t := &Tracker{
		path:      path,
		scope:     scope,
		done:      make(map[string]bool),
		saveEvery: saveEvery,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "checkpoint: read %s", path)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, eris.Wrapf(err, "checkpoint: parse %s", path)
	}
	if snap.Scope != scope {
		zap.L().Warn("checkpoint: scope mismatch, starting fresh",
			zap.String("file_scope", snap.Scope),
			zap.String("scope", scope),
		)
		return t, nil
	}
	for _, u := range snap.Completed {
		t.done[u] = true
	}
	zap.L().Info("checkpoint: resuming",
		zap.String("scope", scope),
		zap.Int("completed", len(t.done)),
	)
	return t, nil
}

// IsDone reports whether a unit has already been fully extracted.
func (t *Tracker) IsDone(unit string) bool {
	return t.done[unit]
}

// MarkDone records a unit as fully extracted and autosaves when the
// interval is reached.
func (t *Tracker) MarkDone(unit string) error {
	if t.done[unit] {
		return nil
	}
	t.done[unit] = true
	t.dirty++
	if t.dirty >= t.saveEvery {
		return t.Save()
	}
	return nil
}

// Count returns the number of completed units.
func (t *Tracker) Count() int {
	return len(t.done)
}

// Snapshot returns the completed unit IDs, sorted.
func (t *Tracker) Snapshot() []string {
	units := make([]string, 0, len(t.done))
	for u := range t.done {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// Save persists the checkpoint unconditionally.
func (t *Tracker) Save() error {
	snap := snapshot{
		Scope:     t.scope,
		Completed: t.Snapshot(),
		Timestamp: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return eris.Wrap(err, "checkpoint: marshal")
	}

	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "checkpoint: create dir %s", dir)
		}
	}
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "checkpoint: write %s", tmp)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return eris.Wrapf(err, "checkpoint: replace %s", t.path)
	}
	t.dirty = 0
	return nil
}
