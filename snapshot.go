package linkedin

import (
	"context"
	"iter"
)

// Snapshot is one saved HTML file capturing a profile page.
type Snapshot struct {
	Path    string
	Content []byte

	// Folder marks a sub-folder that could not be listed. It is not a file
	// and never carries content.
	Folder bool
}

// SnapshotSource enumerates the snapshots of an input folder.
type SnapshotSource interface {
	// Snapshots validates dir and returns a lazy sequence of snapshots in a
	// stable order. Returns EINVALIDPATH if dir is missing, unreadable or
	// not a directory. A file that cannot be read is yielded with a non-nil
	// error and a Snapshot carrying only its Path. A sub-folder that cannot
	// be listed is yielded the same way with Folder set.
	Snapshots(ctx context.Context, dir string) (iter.Seq2[*Snapshot, error], error)
}

// ContentHasher fingerprints snapshot content to detect identical downloads.
type ContentHasher interface {
	Hash(content []byte) string
}

// ProgressStatus is the outcome of processing one snapshot.
type ProgressStatus string

// Progress statuses.
const (
	StatusMerged    ProgressStatus = "merged"
	StatusSkipped   ProgressStatus = "skipped"
	StatusDuplicate ProgressStatus = "duplicate"

	// StatusUnreadable reports a sub-folder whose files could not be
	// listed. It does not count as a processed file.
	StatusUnreadable ProgressStatus = "unreadable"
)

// Progress reports the outcome for one snapshot as the run proceeds.
type Progress struct {
	Path string

	// Key is the first merged entity key; Keys lists all of them when a
	// snapshot holds several entities.
	Key  string
	Keys []string

	Status    ProgressStatus
	Completed int

	// Dropped counts entities left out for carrying too few values.
	Dropped int

	Error error
}

// ProgressFunc is called once per snapshot, in enumeration order.
type ProgressFunc func(Progress)

// ResultStore persists the finalized document with atomic semantics.
// Save writes to a temporary location; Commit makes it permanent;
// Abort discards it.
type ResultStore interface {
	// Load returns the currently committed document.
	// Returns ENOTFOUND if nothing has been committed yet.
	Load(ctx context.Context) ([]byte, error)

	Save(ctx context.Context, data []byte) error
	Commit() error
	Abort() error
}
