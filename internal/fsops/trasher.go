package fsops

// Trasher abstracts moving a file into the platform's recoverable trash.
// Enables fakes in tests to prove dry-run never trashes anything.
type Trasher interface {
	Trash(path string) error
}
