package domain

import (
	"runtime"
	"slices"
)

// OutputKind identifies the kind of declared build product.
type OutputKind string

const (
	// KindBinary is an executable linked from objects.
	KindBinary OutputKind = "binary"
	// KindLibrary is a static and/or dynamic library.
	KindLibrary OutputKind = "library"
)

// ArtifactKind identifies the form of a produced artifact.
type ArtifactKind string

const (
	// ArtifactBinary is a linked executable.
	ArtifactBinary ArtifactKind = "binary"
	// ArtifactStatic is an archive produced by the archiver.
	ArtifactStatic ArtifactKind = "static"
	// ArtifactDynamic is a shared object produced by the compiler.
	ArtifactDynamic ArtifactKind = "dynamic"
)

// Binary is a declared executable. Its output path is its name.
type Binary struct {
	Name string
	// Sources are the source files owned by this binary, usually its entry point.
	Sources []string
}

// Output returns the path of the linked executable relative to the project root.
func (b Binary) Output() string {
	return b.Name
}

// Owns reports whether the binary declares source as one of its own.
func (b Binary) Owns(source string) bool {
	return slices.Contains(b.Sources, source)
}

// Library is a declared library requesting a static archive, a dynamic library, or both.
type Library struct {
	Name    string
	Static  bool
	Dynamic bool
}

// StaticFile returns the archive file name for the current platform.
func (l Library) StaticFile() string {
	return StaticLibraryName(l.Name, runtime.GOOS)
}

// DynamicFile returns the shared library file name for the current platform.
func (l Library) DynamicFile() string {
	return DynamicLibraryName(l.Name, runtime.GOOS)
}

// Output returns the artifact path used for staleness checks.
// The static archive is preferred when both forms are requested.
func (l Library) Output() string {
	if l.Static || !l.Dynamic {
		return l.StaticFile()
	}
	return l.DynamicFile()
}

// StaticLibraryName returns the platform file name of a static library.
func StaticLibraryName(name, goos string) string {
	if goos == "windows" {
		return name + ".lib"
	}
	return "lib" + name + ".a"
}

// DynamicLibraryName returns the platform file name of a dynamic library.
func DynamicLibraryName(name, goos string) string {
	switch goos {
	case "windows":
		return name + ".dll"
	case "darwin", "ios":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}
