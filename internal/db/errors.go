package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSiteNotFound     = errors.New("site not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
