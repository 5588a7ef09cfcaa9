package fsops

import (
	"sync"

	"github.com/spf13/afero"
)

// FakeTrasher implements Trasher for testing.
// Records every call; when Fs is set, a successful call also removes the
// file from Fs so later scans observe the move.
type FakeTrasher struct {
	Fs    afero.Fs
	Fail  map[string]error // per-path failures
	mu    sync.Mutex
	calls []string
}

func (f *FakeTrasher) Trash(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, path)
	if err, ok := f.Fail[path]; ok {
		return err
	}
	if f.Fs != nil {
		return f.Fs.Remove(path)
	}
	return nil
}

// Calls returns a copy of the recorded paths in call order
func (f *FakeTrasher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}
