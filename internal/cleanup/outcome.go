package cleanup

import "fmt"

// Status is the result of one disposal attempt.
type Status int

const (
	StatusMoved Status = iota
	StatusWouldMove
	StatusSkippedNotFound
	StatusSkippedNotAFile
	StatusFailed
	// StatusSkippedCancelled means the run stopped before the trash was tried
	StatusSkippedCancelled
)

func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusWouldMove:
		return "would_move"
	case StatusSkippedNotFound:
		return "skipped_not_found"
	case StatusSkippedNotAFile:
		return "skipped_not_a_file"
	case StatusFailed:
		return "failed"
	case StatusSkippedCancelled:
		return "skipped_cancelled"
	default:
		return "unknown"
	}
}

// Outcome captures what happened to a single candidate.
// Err is set for every status except StatusMoved and StatusWouldMove.
type Outcome struct {
	Path   string
	Status Status
	Err    error
}

// Succeeded returns true if the file was moved, or would have been in a dry run.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusMoved || o.Status == StatusWouldMove
}

// Skipped returns true if the candidate changed or vanished before disposal,
// or the run was interrupted before it was tried.
func (o Outcome) Skipped() bool {
	switch o.Status {
	case StatusSkippedNotFound, StatusSkippedNotAFile, StatusSkippedCancelled:
		return true
	}
	return false
}

// ToLogString formats the outcome for structured logging.
// Example: "failed: move to trash: permission denied"
func (o Outcome) ToLogString() string {
	if o.Err == nil {
		return o.Status.String()
	}
	return fmt.Sprintf("%s: %v", o.Status, o.Err)
}

// ToHumanReadable formats the outcome for console display.
// Example: "Failed to move file: permission denied"
func (o Outcome) ToHumanReadable() string {
	switch o.Status {
	case StatusMoved:
		return "Moved to trash"
	case StatusWouldMove:
		return "Would move to trash"
	case StatusSkippedNotFound:
		return "Skipped: file no longer exists"
	case StatusSkippedNotAFile:
		return "Skipped: no longer a regular .DS_Store file"
	case StatusSkippedCancelled:
		return "Skipped: run interrupted before the file was moved"
	case StatusFailed:
		if o.Err != nil {
			return fmt.Sprintf("Failed to move file: %v", o.Err)
		}
		return "Failed to move file"
	default:
		return "Unknown outcome"
	}
}
