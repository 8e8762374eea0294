package builder

import (
	"go.trai.ch/kiln/internal/core/domain"
)

// ArtifactStatus describes one declared artifact relative to its sources and
// its last recorded build.
type ArtifactStatus struct {
	Name     string
	Kind     domain.ArtifactKind
	Path     string
	Exists   bool
	Stale    int
	Recorded bool
	// Changed reports that the link or archive command differs from the recorded one.
	Changed bool
}

// UpToDate reports whether the artifact exists, no target is stale and its
// command matches the recorded one.
func (s ArtifactStatus) UpToDate() bool {
	return s.Exists && s.Stale == 0 && !s.Changed
}

// Status reports every requested artifact in declaration order.
func (b *Builder) Status(desc *domain.Description) ([]ArtifactStatus, error) {
	var out []ArtifactStatus
	for _, bin := range desc.Binaries {
		s, err := b.status(desc, bin.Name, domain.ArtifactBinary, bin.Output(), desc.LinkCommand(bin))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	for _, lib := range desc.Libraries {
		if lib.Static {
			s, err := b.status(desc, lib.Name, domain.ArtifactStatic, lib.StaticFile(), desc.StaticCommand(lib))
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		if lib.Dynamic {
			s, err := b.status(desc, lib.Name, domain.ArtifactDynamic, lib.DynamicFile(), desc.DynamicCommand(lib))
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func (b *Builder) status(
	desc *domain.Description,
	name string,
	kind domain.ArtifactKind,
	path string,
	cmd domain.Command,
) (ArtifactStatus, error) {
	_, exists, err := modTime(desc.Abs(path))
	if err != nil {
		return ArtifactStatus{}, err
	}
	queue, err := StalenessQueue(desc, path)
	if err != nil {
		return ArtifactStatus{}, err
	}
	rec, err := b.store.Get(desc.Root, path)
	if err != nil {
		return ArtifactStatus{}, err
	}

	s := ArtifactStatus{
		Name:   name,
		Kind:   kind,
		Path:   path,
		Exists: exists,
		Stale:  len(queue),
	}
	if rec != nil {
		s.Recorded = true
		s.Changed = rec.Fingerprint != domain.Fingerprint(cmd)
	}
	return s, nil
}
