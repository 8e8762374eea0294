package ports

import (
	"context"
	"iter"
)

//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// WatchOp is the kind of change reported for a path.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// String returns the lower-case name of the operation.
func (op WatchOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// WatchEvent is a change to one path below the watched root.
type WatchEvent struct {
	// Path is the absolute path that changed.
	Path string
	// Operation is the type of change.
	Operation WatchOp
}

// Watcher reports file system changes below a project root.
type Watcher interface {
	// Start begins watching root recursively. Events stop when ctx is done.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher.
	Stop() error
	// Events returns the changes observed since Start.
	Events() iter.Seq[WatchEvent]
}
