package models

import (
	"strings"
)

// FileRecord represents one regular file discovered by the walker
type FileRecord struct {
	Path         string `json:"path" yaml:"path"`                   // Absolute path, unique within a run
	Name         string `json:"name" yaml:"name"`                   // Base name used for similarity
	Size         uint64 `json:"size" yaml:"size"`                   // File size in bytes
	ModifiedUnix uint64 `json:"modified_unix" yaml:"modified_unix"` // Modification time (seconds since epoch)
	ReadOnly     bool   `json:"read_only" yaml:"read_only"`         // No write permission bit set
	Digest       string `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// SameDigest reports whether both records carry a digest and the digests are
// equal ignoring hex case
func (r FileRecord) SameDigest(other FileRecord) bool {
	if r.Digest == "" || other.Digest == "" {
		return false
	}
	return strings.EqualFold(r.Digest, other.Digest)
}

// SkipKind classifies a non-fatal walker failure
type SkipKind string

const (
	SkipMetadata     SkipKind = "metadata_unavailable"
	SkipTimestamp    SkipKind = "timestamp_unavailable"
	SkipSubdirectory SkipKind = "subdirectory_unreadable"
	SkipHash         SkipKind = "hash_failure"
)

// SkippedEntry records an entry or subtree left out of the inventory
type SkippedEntry struct {
	Path  string   `json:"path" yaml:"path"`
	Kind  SkipKind `json:"kind" yaml:"kind"`
	Error string   `json:"error" yaml:"error"`
}
