package builder

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// StalenessQueue returns the targets that must be compiled before output can
// be produced, in ascending source order.
//
// When output exists, a target is queued if its source is newer than output
// or its object is missing. When output is missing, only targets without an
// object are queued; existing objects are reused.
func StalenessQueue(desc *domain.Description, output string) ([]domain.Target, error) {
	outTime, outExists, err := modTime(desc.Abs(output))
	if err != nil {
		return nil, err
	}

	queue := domain.NewTargetSet()
	for target, srcTime := range desc.Sources {
		_, objExists, err := modTime(desc.Abs(target.Object))
		if err != nil {
			return nil, err
		}

		switch {
		case !objExists:
			queue.Add(target)
		case outExists && srcTime.After(outTime):
			queue.Add(target)
		}
	}
	return queue.Sorted(), nil
}

// modTime stats path. A missing path is reported through exists, not err.
func modTime(path string) (t time.Time, exists bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "path", path)
	}
	return info.ModTime(), true, nil
}
