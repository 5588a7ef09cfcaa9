package stats

import (
	"sync"
	"testing"
)

func TestCountersStartAtZero(t *testing.T) {
	if got := New().Snapshot(); got != (Snapshot{}) {
		t.Errorf("fresh snapshot = %+v, want zero", got)
	}
}

func TestCountersConcurrentIncrements(t *testing.T) {
	c := New()
	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.AddFound()
				if (i+j)%3 == 0 {
					c.AddFailed()
				} else {
					c.AddMoved()
				}
			}
		}(i)
	}
	wg.Wait()

	s := c.Snapshot()
	if s.Found != workers*perWorker {
		t.Errorf("found = %d, want %d", s.Found, workers*perWorker)
	}
	if s.Moved+s.Failed != s.Found {
		t.Errorf("moved+failed = %d, want %d", s.Moved+s.Failed, s.Found)
	}
}

// TestSnapshotConservedDuringRun observes the counters while writers are
// active and checks the invariant at every observation
func TestSnapshotConservedDuringRun(t *testing.T) {
	c := New()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20000; i++ {
			c.AddFound()
			c.AddMoved()
		}
		close(done)
	}()

	for {
		s := c.Snapshot()
		if !s.Conserved() {
			t.Fatalf("invariant violated: %+v", s)
		}
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
	}
}

func TestSnapshotConserved(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"empty", Snapshot{}, true},
		{"all moved", Snapshot{Found: 3, Moved: 3}, true},
		{"partial failure", Snapshot{Found: 3, Moved: 2, Failed: 1}, true},
		{"skipped", Snapshot{Found: 3, Moved: 1, Skipped: 2}, true},
		{"over counted", Snapshot{Found: 1, Moved: 1, Failed: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Conserved(); got != tt.want {
				t.Errorf("Conserved() = %v, want %v", got, tt.want)
			}
		})
	}
}

var _ Recorder = (*Counters)(nil)
