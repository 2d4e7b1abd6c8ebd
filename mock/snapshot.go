package mock

import (
	"context"
	"iter"

	"github.com/SACCSF/linkedin"
)

var _ linkedin.SnapshotSource = (*SnapshotSource)(nil)

// SnapshotSource is a mock implementation of linkedin.SnapshotSource.
type SnapshotSource struct {
	SnapshotsFn func(ctx context.Context, dir string) (iter.Seq2[*linkedin.Snapshot, error], error)
}

func (s *SnapshotSource) Snapshots(ctx context.Context, dir string) (iter.Seq2[*linkedin.Snapshot, error], error) {
	return s.SnapshotsFn(ctx, dir)
}

var _ linkedin.ContentHasher = (*ContentHasher)(nil)

// ContentHasher is a mock implementation of linkedin.ContentHasher.
type ContentHasher struct {
	HashFn func(content []byte) string
}

func (h *ContentHasher) Hash(content []byte) string {
	return h.HashFn(content)
}

var _ linkedin.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of linkedin.ResultStore.
type ResultStore struct {
	LoadFn   func(ctx context.Context) ([]byte, error)
	SaveFn   func(ctx context.Context, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ResultStore) Load(ctx context.Context) ([]byte, error) {
	return s.LoadFn(ctx)
}

func (s *ResultStore) Save(ctx context.Context, data []byte) error {
	return s.SaveFn(ctx, data)
}

func (s *ResultStore) Commit() error {
	return s.CommitFn()
}

func (s *ResultStore) Abort() error {
	return s.AbortFn()
}
