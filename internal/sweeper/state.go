package sweeper

import (
	"dsclean/internal/cleanup"
)

// State is the lifecycle phase of a single run
type State int32

const (
	StateInitializing State = iota
	StateScanning
	StateReporting
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateScanning:
		return "scanning"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// EventKind distinguishes discovery from disposal
type EventKind int

const (
	// EventFound is emitted when a target is matched, before disposal
	EventFound EventKind = iota
	// EventDisposed is emitted once the target's outcome is known
	EventDisposed
)

func (k EventKind) String() string {
	if k == EventFound {
		return "found"
	}
	return "disposed"
}

// Event is delivered to the event handler as the run progresses.
// Outcome is only meaningful for EventDisposed.
type Event struct {
	Kind    EventKind
	Path    string
	Outcome cleanup.Outcome
}

// EventHandler receives run events. Calls are serialized.
type EventHandler func(Event)
