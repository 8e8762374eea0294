package ports

import "go.trai.ch/kiln/internal/core/domain"

// BuildRecordStore persists the last successful link or archive of each artifact.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the record for output under the project root.
	// Returns nil, nil if not found.
	Get(root, output string) (*domain.BuildRecord, error)

	// Put stores the record under the project root.
	Put(root string, record domain.BuildRecord) error
}
