package domain

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// BuildRecord describes the last successful link or archive of one artifact.
// Records are informational; they never decide whether a target is stale.
type BuildRecord struct {
	Output      string       `json:"output"`
	Kind        ArtifactKind `json:"kind"`
	Command     string       `json:"command"`
	Fingerprint string       `json:"fingerprint"`
	Objects     int          `json:"objects"`
	BuiltAt     time.Time    `json:"built_at"`
}

// NewBuildRecord creates a record for an artifact produced by cmd from objects.
func NewBuildRecord(output string, kind ArtifactKind, cmd Command, objects int, at time.Time) BuildRecord {
	return BuildRecord{
		Output:      output,
		Kind:        kind,
		Command:     cmd.String(),
		Fingerprint: Fingerprint(cmd),
		Objects:     objects,
		BuiltAt:     at,
	}
}

// Fingerprint returns a stable hash of the command's argument vector.
func Fingerprint(cmd Command) string {
	d := xxhash.New()
	for _, a := range cmd.Args {
		_, _ = d.WriteString(a)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
