package disk

import (
	"io/fs"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestIsStaleHealthyPath(t *testing.T) {
	if IsStale(t.TempDir(), time.Second) {
		t.Error("temp dir reported as stale")
	}
}

func TestIsStaleMissingPathIsNotStale(t *testing.T) {
	if IsStale("/definitely/not/here", time.Second) {
		t.Error("missing path must not be reported as stale")
	}
}

func TestIsStaleErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"estale", &fs.PathError{Op: "stat", Path: "/mnt", Err: syscall.ESTALE}, true},
		{"eio", &fs.PathError{Op: "stat", Path: "/mnt", Err: syscall.EIO}, true},
		{"enxio", &fs.PathError{Op: "stat", Path: "/mnt", Err: syscall.ENXIO}, true},
		{"permission", &fs.PathError{Op: "stat", Path: "/mnt", Err: syscall.EACCES}, false},
		{"not exist", &fs.PathError{Op: "stat", Path: "/mnt", Err: syscall.ENOENT}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stat := func(string) (os.FileInfo, error) { return nil, tt.err }
			if got := isStale("/mnt", time.Second, stat); got != tt.want {
				t.Errorf("isStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsStaleTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	stat := func(string) (os.FileInfo, error) {
		<-release
		return nil, nil
	}
	if !isStale("/mnt", 20*time.Millisecond, stat) {
		t.Error("hung stat should be reported as stale")
	}
}
