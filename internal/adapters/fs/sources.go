package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceDiscoverer = (*SourceDiscoverer)(nil)

// SourceDiscoverer finds source files below the project's source roots.
type SourceDiscoverer struct {
	walker *Walker
}

// NewSourceDiscoverer creates a SourceDiscoverer using walker.
func NewSourceDiscoverer(walker *Walker) *SourceDiscoverer {
	return &SourceDiscoverer{walker: walker}
}

// Discover returns every source of project's language below its source roots,
// keyed by target, with the source modification time.
func (d *SourceDiscoverer) Discover(root string, project domain.Project) (domain.FileModMap, error) {
	if _, ok := domain.SourceExtensions(project.Lang); !ok {
		return nil, zerr.With(domain.ErrInvalidConfig, "lang", project.Lang)
	}

	ignores, err := NewIgnoreSet(project.Ignore)
	if err != nil {
		return nil, err
	}

	dirs := project.SourceDirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	mods := make(domain.FileModMap)
	for _, dir := range dirs {
		for rel, err := range d.walker.WalkFiles(root, filepath.Join(root, dir), ignores) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceDiscoveryFailed.Error()), "dir", dir)
			}
			if !domain.IsSource(rel, project.Lang) {
				continue
			}

			info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceDiscoveryFailed.Error()), "path", rel)
			}
			mods[domain.NewTarget(filepath.FromSlash(rel))] = info.ModTime()
		}
	}
	return mods, nil
}
