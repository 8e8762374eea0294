package domain

import "go.trai.ch/zerr"

var (
	// ErrNoBuildFile is returned when no project description is found between the
	// starting directory and the filesystem root.
	ErrNoBuildFile = zerr.New("no build file found")

	// ErrConfigReadFailed is returned when the project description cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read build file")

	// ErrConfigParseFailed is returned when the project description is malformed.
	ErrConfigParseFailed = zerr.New("failed to parse build file")

	// ErrInvalidConfig is returned when the project description parses but is not usable.
	ErrInvalidConfig = zerr.New("invalid build file")

	// ErrDuplicateOutput is returned when two binaries or two libraries share a name.
	ErrDuplicateOutput = zerr.New("duplicate output name")

	// ErrInvalidCompiler is returned when a configured tool string cannot be split into arguments.
	ErrInvalidCompiler = zerr.New("invalid tool command")

	// ErrSourceDiscoveryFailed is returned when walking the source roots fails.
	ErrSourceDiscoveryFailed = zerr.New("failed to discover sources")

	// ErrStatFailed is returned when reading file metadata fails for a reason other than absence.
	ErrStatFailed = zerr.New("failed to read file metadata")

	// ErrRemoveFailed is returned when removing a state directory fails.
	ErrRemoveFailed = zerr.New("failed to remove file")

	// ErrTargetNotFound is returned when a named binary or library is not declared.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrProcessSpawnFailed is returned when a child process cannot be started.
	ErrProcessSpawnFailed = zerr.New("failed to start process")

	// ErrProcessFailed is returned when a child process exits unsuccessfully.
	ErrProcessFailed = zerr.New("process failed")

	// ErrScriptFailed is returned when the before or after script fails.
	ErrScriptFailed = zerr.New("build script failed")

	// ErrInvalidJobCount is returned when the worker budget is less than one.
	ErrInvalidJobCount = zerr.New("job count must be at least 1")

	// ErrBuildFailed is returned when a build stage fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrCleanFailed is returned when clean cannot complete.
	ErrCleanFailed = zerr.New("clean failed")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreCreateFailed is returned when the record directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create record directory")
)
