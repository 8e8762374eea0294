package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Toolchain holds the tools and flags used to compile, link and archive.
// Compiler and Archiver are already split into argument vectors.
type Toolchain struct {
	Compiler      []string
	CompilerFlags []string
	Includes      []string
	LibDirs       []string
	Libs          []string
	LinkerFlags   []string
	Archiver      []string
	ArchiverFlags []string
}

// Project holds the global settings of a build description.
type Project struct {
	Name         string
	Lang         string
	SourceDirs   []string
	Ignore       []string
	BeforeScript string
	AfterScript  string
	Toolchain    Toolchain
}

// Description is a parsed project: settings, discovered sources and declared outputs.
// It is immutable once loaded.
type Description struct {
	// Root is the absolute project root every relative path resolves against.
	Root string
	// File is the absolute path of the description file.
	File      string
	Project   Project
	Sources   FileModMap
	Binaries  []Binary
	Libraries []Library
}

// Abs resolves a root-relative path against the project root.
func (d *Description) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(d.Root, rel)
}

// Binary returns the declared binary called name.
func (d *Description) Binary(name string) (Binary, error) {
	for _, b := range d.Binaries {
		if b.Name == name {
			return b, nil
		}
	}
	err := zerr.With(ErrTargetNotFound, "kind", string(KindBinary))
	return Binary{}, zerr.With(err, "name", name)
}

// Library returns the declared library called name.
func (d *Description) Library(name string) (Library, error) {
	for _, l := range d.Libraries {
		if l.Name == name {
			return l, nil
		}
	}
	err := zerr.With(ErrTargetNotFound, "kind", string(KindLibrary))
	return Library{}, zerr.With(err, "name", name)
}

// ObjectList returns the object paths of all discovered targets in ascending order,
// leaving out objects whose source is owned only by binaries in exclude.
// Sources owned by no binary are always included.
func (d *Description) ObjectList(exclude ...Binary) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, b := range exclude {
		excluded[b.Name] = true
	}

	targets := d.Sources.Targets()
	objects := make([]string, 0, len(targets))
	for _, t := range targets {
		if d.ownedOnlyBy(t.Source, excluded) {
			continue
		}
		objects = append(objects, t.Object)
	}
	return objects
}

func (d *Description) ownedOnlyBy(source string, excluded map[string]bool) bool {
	owned := false
	for _, b := range d.Binaries {
		if !b.Owns(source) {
			continue
		}
		if !excluded[b.Name] {
			return false
		}
		owned = true
	}
	return owned
}

// BinaryObjects returns the objects linked into b. With more than one binary
// declared, objects owned only by the other binaries are left out.
func (d *Description) BinaryObjects(b Binary) []string {
	if len(d.Binaries) <= 1 {
		return d.ObjectList()
	}
	others := make([]Binary, 0, len(d.Binaries)-1)
	for _, other := range d.Binaries {
		if other.Name != b.Name {
			others = append(others, other)
		}
	}
	return d.ObjectList(others...)
}

// LibraryObjects returns the objects archived into libraries: the full object
// list, binary-owned sources included.
func (d *Description) LibraryObjects() []string {
	return d.ObjectList()
}

// LibraryFlags returns the link flags for the explicit libraries, e.g. "-lm".
func (d *Description) LibraryFlags() []string {
	return prefixed("-l", d.Project.Toolchain.Libs)
}

// LibDirFlags returns the library search path flags, e.g. "-Llib".
func (d *Description) LibDirFlags() []string {
	return prefixed("-L", d.Project.Toolchain.LibDirs)
}

// IncludeFlags returns the include path flags, e.g. "-Iinclude".
func (d *Description) IncludeFlags() []string {
	return prefixed("-I", d.Project.Toolchain.Includes)
}

// CompileCommand returns the invocation compiling t into its object file.
func (d *Description) CompileCommand(t Target) Command {
	tc := d.Project.Toolchain
	return NewCommand(d.Root,
		tc.Compiler,
		dashed(tc.CompilerFlags),
		d.IncludeFlags(),
		[]string{"-c", "-o", t.Object, t.Source},
	)
}

// LinkCommand returns the invocation linking b from its objects.
func (d *Description) LinkCommand(b Binary) Command {
	tc := d.Project.Toolchain
	return NewCommand(d.Root,
		tc.Compiler,
		dashed(tc.CompilerFlags),
		d.IncludeFlags(),
		dashed(tc.LinkerFlags),
		[]string{"-o", b.Output()},
		d.BinaryObjects(b),
		d.LibDirFlags(),
		d.LibraryFlags(),
	)
}

// StaticCommand returns the archiver invocation producing l's static archive.
func (d *Description) StaticCommand(l Library) Command {
	tc := d.Project.Toolchain
	return NewCommand(d.Root,
		tc.Archiver,
		tc.ArchiverFlags,
		[]string{l.StaticFile()},
		d.LibraryObjects(),
	)
}

// DynamicCommand returns the compiler invocation producing l's shared library.
func (d *Description) DynamicCommand(l Library) Command {
	tc := d.Project.Toolchain
	return NewCommand(d.Root,
		tc.Compiler,
		[]string{"-shared"},
		dashed(tc.LinkerFlags),
		[]string{"-o", l.DynamicFile()},
		d.LibraryObjects(),
		d.LibDirFlags(),
		d.LibraryFlags(),
	)
}

func prefixed(prefix string, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, prefix+v)
	}
	return out
}

// dashed accepts flags written with or without their leading dash.
func dashed(flags []string) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if !strings.HasPrefix(f, "-") {
			f = "-" + f
		}
		out = append(out, f)
	}
	return out
}
