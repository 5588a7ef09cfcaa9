package scan

import "io/fs"

// Kind is the type of a directory entry as seen without following symlinks.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is one item produced by Walk. It is not retained by the scanner.
type Entry struct {
	Path  string
	Name  string
	Kind  Kind
	Depth int // directories between the root and this entry
	Mode  fs.FileMode
}
