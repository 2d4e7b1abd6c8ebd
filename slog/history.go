package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/SACCSF/linkedin"
)

// Ensure LoggingHistory implements linkedin.HistoryService.
var _ linkedin.HistoryService = (*LoggingHistory)(nil)

// LoggingHistory wraps a HistoryService with debug logging of writes.
type LoggingHistory struct {
	next   linkedin.HistoryService
	logger *slog.Logger
}

// NewLoggingHistory creates a new LoggingHistory.
func NewLoggingHistory(next linkedin.HistoryService, logger *slog.Logger) *LoggingHistory {
	return &LoggingHistory{next: next, logger: logger}
}

func (h *LoggingHistory) CreateRun(ctx context.Context, run *linkedin.Run) (err error) {
	defer func(begin time.Time) {
		h.logger.Info("create run",
			"id", run.ID,
			"kind", run.Kind,
			"dir", run.InputDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.CreateRun(ctx, run)
}

func (h *LoggingHistory) FinishRun(ctx context.Context, id string, upd linkedin.RunUpdate) (run *linkedin.Run, err error) {
	defer func(begin time.Time) {
		h.logger.Info("finish run",
			"id", id,
			"processed", upd.Processed,
			"skipped", upd.Skipped,
			"entities", upd.Entities,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.FinishRun(ctx, id, upd)
}

// FindRunByID delegates to the wrapped service.
func (h *LoggingHistory) FindRunByID(ctx context.Context, id string) (*linkedin.Run, error) {
	return h.next.FindRunByID(ctx, id)
}

func (h *LoggingHistory) CreateExtraction(ctx context.Context, e *linkedin.Extraction) (err error) {
	defer func(begin time.Time) {
		h.logger.Info("record extraction",
			"path", e.SourcePath,
			"status", e.Status,
			"key", e.Key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.CreateExtraction(ctx, e)
}

// FindExtractions delegates to the wrapped service.
func (h *LoggingHistory) FindExtractions(ctx context.Context, filter linkedin.ExtractionFilter) ([]*linkedin.Extraction, error) {
	return h.next.FindExtractions(ctx, filter)
}
