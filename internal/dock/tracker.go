package dock

// Change describes how the resolved zone moved between two frames.
type Change int

const (
	// Unchanged means the same zone (or no zone) as before.
	Unchanged Change = iota
	// Entered means a zone became active or the active zone id changed.
	Entered
	// Left means the previously active zone is no longer active.
	Left
)

// Tracker remembers the zone resolved on the previous frame so callers
// fire preview/leave callbacks only when the zone id changes.
type Tracker struct {
	current Match
	active  bool
}

// Update records the latest resolution and reports the change.
func (t *Tracker) Update(m Match, ok bool) Change {
	switch {
	case !ok && !t.active:
		return Unchanged
	case !ok:
		t.active = false
		t.current = Match{}
		return Left
	case t.active && t.current.ZoneID == m.ZoneID:
		t.current = m
		return Unchanged
	default:
		t.current = m
		t.active = true
		return Entered
	}
}

// Current returns the active zone, if any.
func (t *Tracker) Current() (Match, bool) {
	return t.current, t.active
}

// Reset forgets the active zone and reports whether one was active.
func (t *Tracker) Reset() bool {
	was := t.active
	t.current = Match{}
	t.active = false
	return was
}
