package fs

import (
	"path"

	"github.com/gobwas/glob"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// IgnoreSet matches slash-separated relative paths against glob patterns.
// A pattern without a slash also matches any path whose base name it matches,
// so "*.gen.c" ignores generated files in every directory.
type IgnoreSet struct {
	full []glob.Glob
	base []glob.Glob
}

// NewIgnoreSet compiles patterns. "**" crosses directory boundaries, "*" does not.
func NewIgnoreSet(patterns []string) (*IgnoreSet, error) {
	s := &IgnoreSet{}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "ignore", p)
		}
		if path.Base(p) == p {
			s.base = append(s.base, g)
		} else {
			s.full = append(s.full, g)
		}
	}
	return s, nil
}

// Match reports whether rel is ignored. A nil set ignores nothing.
func (s *IgnoreSet) Match(rel string) bool {
	if s == nil {
		return false
	}
	for _, g := range s.full {
		if g.Match(rel) {
			return true
		}
	}
	name := path.Base(rel)
	for _, g := range s.base {
		if g.Match(name) {
			return true
		}
	}
	return false
}
