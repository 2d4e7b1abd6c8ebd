package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/SACCSF/linkedin"
)

// Ensure LoggingSource implements linkedin.SnapshotSource.
var _ linkedin.SnapshotSource = (*LoggingSource)(nil)

// LoggingSource wraps a SnapshotSource with debug logging.
type LoggingSource struct {
	next   linkedin.SnapshotSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next linkedin.SnapshotSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Snapshots delegates to the wrapped source. The returned sequence logs the
// number of snapshots and read errors once it is exhausted or abandoned.
func (s *LoggingSource) Snapshots(ctx context.Context, dir string) (iter.Seq2[*linkedin.Snapshot, error], error) {
	seq, err := s.next.Snapshots(ctx, dir)
	if err != nil {
		s.logger.Info("snapshot enumeration", "dir", dir, "err", err)
		return nil, err
	}

	return func(yield func(*linkedin.Snapshot, error) bool) {
		var count, failed int
		defer func(begin time.Time) {
			s.logger.Info("snapshot enumeration",
				"dir", dir,
				"count", count,
				"failed", failed,
				"duration", time.Since(begin),
			)
		}(time.Now())

		for snap, err := range seq {
			count++
			if err != nil {
				failed++
			}
			if !yield(snap, err) {
				return
			}
		}
	}, nil
}
