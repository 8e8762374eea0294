package builder

import (
	"os"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Clean removes every object of a discovered target and every declared
// binary and library artifact. Files that are missing or cannot be removed
// are skipped silently. With state set, the .kiln directory is removed as well.
func (b *Builder) Clean(desc *domain.Description, state bool) error {
	for _, t := range desc.Sources.Targets() {
		b.remove(desc, "object", t.Object)
	}
	for _, bin := range desc.Binaries {
		b.remove(desc, "binary", bin.Output())
	}
	for _, lib := range desc.Libraries {
		b.remove(desc, "library", lib.DynamicFile())
		b.remove(desc, "library", lib.StaticFile())
	}

	if !state {
		return nil
	}
	dir := desc.Abs(domain.StateDirName)
	if _, err := os.Stat(dir); err != nil {
		return nil //nolint:nilerr // nothing to remove
	}
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", dir)
	}
	b.logger.Info("removed state " + domain.StateDirName)
	return nil
}

// remove deletes rel and logs it. Missing or unremovable files are skipped.
func (b *Builder) remove(desc *domain.Description, what, rel string) {
	if err := os.Remove(desc.Abs(rel)); err != nil {
		return
	}
	b.logger.Info("removed " + what + " " + rel)
}
