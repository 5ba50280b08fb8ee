package store

import (
	"context"
	"time"

	"github.com/wickgo/wick"
)

// Autosaver saves a project to a store at most once per interval. Poll it
// from the goroutine that edits the project.
type Autosaver struct {
	store    *Store
	project  *wick.Project
	interval time.Duration
	last     time.Time

	// now is replaced in tests.
	now func() time.Time
}

// NewAutosaver returns an autosaver whose first save is due one interval
// from now.
func NewAutosaver(s *Store, p *wick.Project, interval time.Duration) *Autosaver {
	a := &Autosaver{store: s, project: p, interval: interval, now: time.Now}
	a.last = a.now()
	return a
}

// Poll saves the project when the interval has elapsed since the last save.
// Saves are skipped while the project is playing, since playback changes
// are discarded on stop. Returns whether a save happened.
func (a *Autosaver) Poll(ctx context.Context) (bool, error) {
	now := a.now()
	if now.Sub(a.last) < a.interval || a.project.IsPlaying() {
		return false, nil
	}
	a.last = now
	if err := a.store.Save(ctx, a.project); err != nil {
		return false, err
	}
	wick.Logger().Debug("autosaved", "project", a.project.Name, "store", a.store.Path())
	return true, nil
}
