package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/SACCSF/linkedin"
)

// Ensure LoggingStore implements linkedin.ResultStore.
var _ linkedin.ResultStore = (*LoggingStore)(nil)

// LoggingStore wraps a ResultStore with debug logging.
type LoggingStore struct {
	next   linkedin.ResultStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next linkedin.ResultStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

func (s *LoggingStore) Load(ctx context.Context) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load output",
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

func (s *LoggingStore) Save(ctx context.Context, data []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save output",
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, data)
}

func (s *LoggingStore) Commit() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("commit output", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Commit()
}

func (s *LoggingStore) Abort() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("abort output", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Abort()
}
