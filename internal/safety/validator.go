package safety

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// TargetName is the only file name dsclean will ever touch.
const TargetName = ".DS_Store"

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrTraversal   = errors.New("path traversal detected")
	ErrOutsideRoot = errors.New("outside scan root")
	ErrNotTarget   = errors.New("not a .DS_Store file")
	ErrNotFound    = errors.New("file no longer exists")
	ErrNotRegular  = errors.New("not a regular file")
)

// IsTarget reports whether an entry with the given base name and mode is a
// disposal target: the name must be exactly ".DS_Store" and the mode must
// describe a regular file. Symlinks, directories and special files never
// qualify.
func IsTarget(name string, mode fs.FileMode) bool {
	return name == TargetName && mode.IsRegular()
}

// IsTargetInfo applies IsTarget to a FileInfo obtained with lstat semantics.
func IsTargetInfo(info fs.FileInfo) bool {
	if info == nil {
		return false
	}
	return IsTarget(info.Name(), info.Mode())
}

// Validator enforces the safety contract for every trash operation.
// It is stateless between calls: each check reads the filesystem again.
type Validator struct {
	Root string
	fs   afero.Fs
}

// NewValidator creates a validator confined to root on the given filesystem
func NewValidator(fsys afero.Fs, root string) *Validator {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	normalized, err := NormalizePath(root)
	if err != nil {
		normalized = filepath.Clean(root)
	}
	return &Validator{
		Root: normalized,
		fs:   fsys,
	}
}

// ValidateTarget is the single source of truth for trash authorization.
// Returns a typed error on any violation.
func (v *Validator) ValidateTarget(path string) error {
	// 1. Reject empty input
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}

	// 2. Detect path traversal in raw input
	if DetectTraversal(path) {
		return ErrTraversal
	}

	p, err := NormalizePath(path)
	if err != nil {
		return err
	}

	// 3. Ensure within the scan root
	if !IsWithinRoot(p, v.Root) {
		return ErrOutsideRoot
	}

	// 4. Exact name match
	if filepath.Base(p) != TargetName {
		return ErrNotTarget
	}

	// 5. Current type on disk, without following symlinks
	info, err := lstat(v.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("stat %s: %w", p, err)
	}
	if !IsTargetInfo(info) {
		return ErrNotRegular
	}

	return nil
}

// NormalizePath converts path to absolute, cleaned form
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrInvalidPath
	}
	return filepath.Clean(abs), nil
}

// DetectTraversal blocks any ".." segment in raw input
func DetectTraversal(raw string) bool {
	parts := strings.Split(filepath.ToSlash(raw), "/")
	for _, p := range parts {
		if p == ".." {
			return true
		}
	}
	return false
}

// IsWithinRoot checks if path is strictly below root
func IsWithinRoot(path, root string) bool {
	p := filepath.Clean(path)
	r := filepath.Clean(root)
	if p == r {
		return false
	}
	return hasPathPrefix(p, r)
}

// hasPathPrefix checks if path has the given directory prefix
func hasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)

	if path == prefix {
		return true
	}
	if prefix == string(os.PathSeparator) {
		return strings.HasPrefix(path, prefix)
	}
	return strings.HasPrefix(path, prefix+string(os.PathSeparator))
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}
