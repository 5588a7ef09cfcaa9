package cleanup

import (
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusMoved, "moved"},
		{StatusWouldMove, "would_move"},
		{StatusSkippedNotFound, "skipped_not_found"},
		{StatusSkippedNotAFile, "skipped_not_a_file"},
		{StatusFailed, "failed"},
		{StatusSkippedCancelled, "skipped_cancelled"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestOutcome_Classification(t *testing.T) {
	tests := []struct {
		name        string
		outcome     Outcome
		wantSuccess bool
		wantSkipped bool
	}{
		{"moved", Outcome{Status: StatusMoved}, true, false},
		{"would move", Outcome{Status: StatusWouldMove}, true, false},
		{"not found", Outcome{Status: StatusSkippedNotFound}, false, true},
		{"not a file", Outcome{Status: StatusSkippedNotAFile}, false, true},
		{"failed", Outcome{Status: StatusFailed}, false, false},
		{"cancelled", Outcome{Status: StatusSkippedCancelled}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Succeeded(); got != tt.wantSuccess {
				t.Errorf("Succeeded() = %v, want %v", got, tt.wantSuccess)
			}
			if got := tt.outcome.Skipped(); got != tt.wantSkipped {
				t.Errorf("Skipped() = %v, want %v", got, tt.wantSkipped)
			}
		})
	}
}

func TestOutcome_ToLogString(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"moved", Outcome{Status: StatusMoved}, "moved"},
		{"failed with cause", Outcome{Status: StatusFailed, Err: errors.New("permission denied")}, "failed: permission denied"},
		{"not found", Outcome{Status: StatusSkippedNotFound, Err: errors.New("file no longer exists")}, "skipped_not_found: file no longer exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.ToLogString(); got != tt.want {
				t.Errorf("ToLogString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcome_ToHumanReadable(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"moved", Outcome{Status: StatusMoved}, "Moved to trash"},
		{"would move", Outcome{Status: StatusWouldMove}, "Would move to trash"},
		{"not found", Outcome{Status: StatusSkippedNotFound}, "Skipped: file no longer exists"},
		{"not a file", Outcome{Status: StatusSkippedNotAFile}, "Skipped: no longer a regular .DS_Store file"},
		{"failed", Outcome{Status: StatusFailed, Err: errors.New("trash unavailable")}, "Failed to move file: trash unavailable"},
		{"failed without cause", Outcome{Status: StatusFailed}, "Failed to move file"},
		{"cancelled", Outcome{Status: StatusSkippedCancelled}, "Skipped: run interrupted before the file was moved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.ToHumanReadable(); got != tt.want {
				t.Errorf("ToHumanReadable() = %v, want %v", got, tt.want)
			}
		})
	}
}
