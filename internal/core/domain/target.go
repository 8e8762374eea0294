package domain

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Target is one compilation unit: a source file and the object file it produces.
// Both paths are relative to the project root.
type Target struct {
	Source string
	Object string
}

// NewTarget creates a Target for the given source path.
// The object path is the source path with its extension replaced by ".o".
func NewTarget(source string) Target {
	source = filepath.Clean(source)
	return Target{
		Source: source,
		Object: strings.TrimSuffix(source, filepath.Ext(source)) + ObjectExt,
	}
}

// Compare orders targets by source path.
func (t Target) Compare(other Target) int {
	return cmp.Compare(t.Source, other.Source)
}

// FileModMap maps every discovered target to the modification time of its source.
type FileModMap map[Target]time.Time

// Targets returns the targets of the map in ascending source order.
func (m FileModMap) Targets() []Target {
	return slices.SortedFunc(maps.Keys(m), Target.Compare)
}

// TargetSet is a duplicate-free set of targets with deterministic iteration order.
type TargetSet struct {
	members map[Target]struct{}
}

// NewTargetSet creates an empty TargetSet.
func NewTargetSet() *TargetSet {
	return &TargetSet{members: make(map[Target]struct{})}
}

// Add inserts t into the set. Adding an existing member is a no-op.
func (s *TargetSet) Add(t Target) {
	s.members[t] = struct{}{}
}

// Contains reports whether t is in the set.
func (s *TargetSet) Contains(t Target) bool {
	_, ok := s.members[t]
	return ok
}

// Len returns the number of members.
func (s *TargetSet) Len() int {
	return len(s.members)
}

// Sorted returns the members in ascending source order.
func (s *TargetSet) Sorted() []Target {
	return slices.SortedFunc(maps.Keys(s.members), Target.Compare)
}
