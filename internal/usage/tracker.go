package usage

import (
	"sync"
	"time"
)

// DefaultDailyLimit applies to any source without an explicit override.
const DefaultDailyLimit = 1000

// Tracker counts provider calls per source against a daily ceiling. It is an
// injected component, not process-global state, so tests can scope one per
// case. WithinLimit is advisory: the router consults it before attempting a
// quota-limited source but does not hold the lock across the attempt, so a
// small overcount under contention is acceptable.
type Tracker struct {
	mu     sync.Mutex
	counts map[string]int
	limits map[string]int
	day    time.Time
	now    func() time.Time
}

// NewTracker builds a tracker with per-source limit overrides. Sources
// missing from overrides get DefaultDailyLimit.
func NewTracker(overrides map[string]int) *Tracker {
	limits := make(map[string]int, len(overrides))
	for k, v := range overrides {
		limits[k] = v
	}
	t := &Tracker{
		counts: make(map[string]int),
		limits: limits,
		now:    time.Now,
	}
	t.day = startOfDay(t.now())
	return t
}

// SetClock replaces the time source. Test hook.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
	t.day = startOfDay(now())
}

// Track records one call against the source's daily counter.
func (t *Tracker) Track(source string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
	t.counts[source]++
}

// WithinLimit reports whether the source still has daily quota left.
func (t *Tracker) WithinLimit(source string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
	return t.counts[source] < t.limitFor(source)
}

// ResetDaily clears every counter immediately, without waiting for the day
// rollover.
func (t *Tracker) ResetDaily() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[string]int)
	t.day = startOfDay(t.now())
}

// Snapshot returns a copy of the current counters, for test harnesses and
// the quota endpoint.
func (t *Tracker) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// LimitFor returns the effective daily ceiling for a source.
func (t *Tracker) LimitFor(source string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limitFor(source)
}

func (t *Tracker) limitFor(source string) int {
	if l, ok := t.limits[source]; ok {
		return l
	}
	return DefaultDailyLimit
}

// rolloverLocked lazily resets counters when the calendar day has changed
// since the last call. Caller holds the lock.
func (t *Tracker) rolloverLocked() {
	today := startOfDay(t.now())
	if today.After(t.day) {
		t.counts = make(map[string]int)
		t.day = today
	}
}

func startOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
