package scan

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// WalkOptions bounds a traversal.
type WalkOptions struct {
	// MaxDepth is the deepest level yielded; the root's immediate children
	// are level 0. Negative means unbounded.
	MaxDepth int
	// SkipHidden prunes every directory below the root whose name starts
	// with a dot.
	SkipHidden bool
}

// Unbounded walks the whole tree.
const Unbounded = -1

// Scanner performs lazy, depth-first file system walks
type Scanner struct {
	fs     afero.Fs
	logger Logger
}

// NewScanner creates a new Scanner over fsys with the given logger
func NewScanner(fsys afero.Fs, logger Logger) *Scanner {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Scanner{
		fs:     fsys,
		logger: logger,
	}
}

// Walk returns a demand-driven sequence of the entries below root. Siblings
// are visited in lexical order, so a given tree always produces the same
// sequence. Depth limits and hidden-directory pruning are applied before an
// entry is yielded, and pruned directories are never read.
//
// Errors reading a directory are yielded alongside the directory's entry and
// the walk continues with its next sibling. Breaking out of the range loop
// stops the walk immediately.
func (s *Scanner) Walk(root string, opts WalkOptions) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		root = filepath.Clean(root)
		s.logger.Debug("Starting walk",
			"root", root,
			"max_depth", opts.MaxDepth,
			"skip_hidden", opts.SkipHidden,
		)
		if s.walkDir(root, 0, opts, yield) {
			s.logger.Debug("Walk complete", "root", root)
		}
	}
}

// walkDir yields the children of dir, all of which sit at depth. It returns
// false once the consumer has stopped the iteration.
func (s *Scanner) walkDir(dir string, depth int, opts WalkOptions, yield func(Entry, error) bool) bool {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return yield(Entry{Path: dir, Name: filepath.Base(dir), Kind: KindDir, Depth: depth - 1},
			fmt.Errorf("read dir %s: %w", dir, err))
	}

	for _, info := range infos {
		entry := newEntry(dir, depth, info)

		if entry.Kind == KindDir && opts.SkipHidden && isHidden(entry.Name) {
			s.logger.Debug("Pruning hidden directory", "path", entry.Path)
			continue
		}

		if !yield(entry, nil) {
			return false
		}

		if entry.Kind == KindDir && descend(depth, opts) {
			if !s.walkDir(entry.Path, depth+1, opts, yield) {
				return false
			}
		}
	}
	return true
}

func newEntry(dir string, depth int, info os.FileInfo) Entry {
	return Entry{
		Path:  filepath.Join(dir, info.Name()),
		Name:  info.Name(),
		Kind:  KindOf(info.Mode()),
		Depth: depth,
		Mode:  info.Mode(),
	}
}

func descend(depth int, opts WalkOptions) bool {
	return opts.MaxDepth < 0 || depth+1 <= opts.MaxDepth
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// KindOf classifies a mode obtained without following symlinks.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
