package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/SACCSF/linkedin"
	"github.com/google/uuid"
)

// CreateExtraction records the outcome for one snapshot.
func (s *HistoryService) CreateExtraction(ctx context.Context, e *linkedin.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}

	e.ID = uuid.New().String()
	e.ExtractedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, run_id, source_path, content_hash, entity_key, status, message, record, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.RunID, e.SourcePath, e.ContentHash, e.Key, string(e.Status), e.Message, string(e.Record),
		e.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindExtractions retrieves extractions matching the filter in insertion order.
func (s *HistoryService) FindExtractions(ctx context.Context, filter linkedin.ExtractionFilter) ([]*linkedin.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, run_id, source_path, content_hash, entity_key, status, message, record, extracted_at
		FROM extractions WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Key != nil {
		query.WriteString(" AND entity_key = ?")
		args = append(args, *filter.Key)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*linkedin.Extraction
	for rows.Next() {
		var e linkedin.Extraction
		var status, record, extractedAt string

		if err := rows.Scan(&e.ID, &e.RunID, &e.SourcePath, &e.ContentHash, &e.Key, &status, &e.Message,
			&record, &extractedAt); err != nil {
			return nil, err
		}

		e.Status = linkedin.ProgressStatus(status)
		if record != "" {
			e.Record = []byte(record)
		}
		if e.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at"); err != nil {
			return nil, err
		}

		extractions = append(extractions, &e)
	}

	return extractions, rows.Err()
}
