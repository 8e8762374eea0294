package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".kiln"

	// RecordsDirName is the name of the build record directory inside the state directory.
	RecordsDirName = "records"

	// YAMLFileName is the preferred project description file name.
	YAMLFileName = "kiln.yaml"

	// YMLFileName is the alternate YAML project description file name.
	YMLFileName = "kiln.yml"

	// TOMLExt is the extension of the directory-named TOML description file.
	TOMLExt = ".toml"

	// ObjectExt is the extension given to compiled object files.
	ObjectExt = ".o"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// BuildFileNames returns the description file names recognized in dir, in lookup order.
// The last candidate is named after the directory itself, e.g. "hello/hello.toml".
func BuildFileNames(dir string) []string {
	names := []string{YAMLFileName, YMLFileName}
	if base := filepath.Base(filepath.Clean(dir)); base != string(filepath.Separator) && base != "." {
		names = append(names, base+TOMLExt)
	}
	return names
}

// DefaultRecordsPath returns the build record directory relative to a project root.
// It joins .kiln and records.
func DefaultRecordsPath() string {
	return filepath.Join(StateDirName, RecordsDirName)
}
