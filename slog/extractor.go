// Package slog provides logging decorators for the extraction services.
package slog

import (
	"log/slog"
	"time"

	"github.com/SACCSF/linkedin"
)

// Ensure LoggingExtractor implements linkedin.FieldExtractor.
var _ linkedin.FieldExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a FieldExtractor with debug logging.
type LoggingExtractor struct {
	next   linkedin.FieldExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkedin.FieldExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs how many fields were found.
func (e *LoggingExtractor) Extract(html []byte) (rec *linkedin.RawRecord, err error) {
	defer func(begin time.Time) {
		found := 0
		if rec != nil {
			for _, v := range rec.Fields {
				if v != "" {
					found++
				}
			}
		}
		e.logger.Info("extract",
			"bytes", len(html),
			"found", found,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// ExtractAll delegates to the wrapped extractor and logs how many records
// were returned and dropped.
func (e *LoggingExtractor) ExtractAll(html []byte) (res *linkedin.ExtractResult, err error) {
	defer func(begin time.Time) {
		var records, dropped int
		kind := linkedin.KindUnknown
		if res != nil {
			records, dropped, kind = len(res.Records), res.Dropped, res.Kind
		}
		e.logger.Info("extract all",
			"bytes", len(html),
			"kind", kind,
			"records", records,
			"dropped", dropped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractAll(html)
}
