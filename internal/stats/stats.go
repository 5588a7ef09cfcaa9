package stats

import "sync/atomic"

// Recorder accumulates run statistics. Implementations must be safe for
// concurrent use and must never decrement.
type Recorder interface {
	AddFound()
	AddMoved()
	AddFailed()
	AddSkipped()
	AddPreviewed()
	Snapshot() Snapshot
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Found     int64 `json:"found"`
	Moved     int64 `json:"moved"`
	Failed    int64 `json:"failed"`
	Skipped   int64 `json:"skipped"`   // vanished or changed before disposal
	Previewed int64 `json:"previewed"` // matches reported in dry-run mode
}

// Conserved reports whether moved+failed stays within found.
func (s Snapshot) Conserved() bool {
	return s.Moved+s.Failed <= s.Found
}

// Counters is the lock-free Recorder used by the sweeper.
type Counters struct {
	found     atomic.Int64
	moved     atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
	previewed atomic.Int64
}

// New returns zeroed counters for a single run
func New() *Counters {
	return &Counters{}
}

func (c *Counters) AddFound()     { c.found.Add(1) }
func (c *Counters) AddMoved()     { c.moved.Add(1) }
func (c *Counters) AddFailed()    { c.failed.Add(1) }
func (c *Counters) AddSkipped()   { c.skipped.Add(1) }
func (c *Counters) AddPreviewed() { c.previewed.Add(1) }

// Snapshot reads the outcome counters before found. Found is always
// incremented before its outcome, so Conserved holds even mid-run.
func (c *Counters) Snapshot() Snapshot {
	var s Snapshot
	s.Moved = c.moved.Load()
	s.Failed = c.failed.Load()
	s.Skipped = c.skipped.Load()
	s.Previewed = c.previewed.Load()
	s.Found = c.found.Load()
	return s
}
