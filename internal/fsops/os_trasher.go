package fsops

import "github.com/Bios-Marcel/wastebasket/v2"

// OSTrasher implements Trasher using the native trash facility: the
// freedesktop.org trash on Linux and BSD, Finder's trash on macOS and the
// Recycle Bin on Windows.
type OSTrasher struct{}

func (OSTrasher) Trash(path string) error {
	return wastebasket.Trash(path)
}
