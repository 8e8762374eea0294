package ports

import "go.trai.ch/kiln/internal/core/domain"

// DescriptionLoader locates and parses project descriptions.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type DescriptionLoader interface {
	// Discover walks upward from startDir to the first directory holding a
	// recognized description file and loads it. The returned description's
	// Root is that directory.
	Discover(startDir string) (*domain.Description, error)
	// Load parses the description file at path. Its directory becomes the root.
	Load(path string) (*domain.Description, error)
}

// SourceDiscoverer finds the compilation units of a project.
type SourceDiscoverer interface {
	// Discover walks the project's source roots below root and returns every
	// source file with its modification time. Paths are relative to root.
	Discover(root string, project domain.Project) (domain.FileModMap, error)
}
