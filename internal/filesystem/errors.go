package filesystem

import "errors"

// Walk errors. Only ErrRootUnreadable aborts a walk; the others are logged and
// the offending entry or subtree is skipped.
var (
	ErrRootUnreadable           = errors.New("root directory unreadable")
	ErrEntryMetadataUnavailable = errors.New("entry metadata unavailable")
	ErrTimestampUnavailable     = errors.New("modification timestamp unavailable")
	ErrSubdirectoryUnreadable   = errors.New("subdirectory unreadable")
	ErrHashFailure              = errors.New("hash failure")
)
