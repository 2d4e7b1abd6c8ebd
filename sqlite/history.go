package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SACCSF/linkedin"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ linkedin.HistoryService = (*HistoryService)(nil)

// HistoryService implements linkedin.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateRun creates a new run.
func (s *HistoryService) CreateRun(ctx context.Context, run *linkedin.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()
	run.FinishedAt = time.Time{}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, input_dir, output, files, processed, skipped, entities, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), run.InputDir, run.Output, run.Files, run.Processed, run.Skipped,
		run.Entities, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun stores the final counters of a run.
func (s *HistoryService) FinishRun(ctx context.Context, id string, upd linkedin.RunUpdate) (*linkedin.Run, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET files = ?, processed = ?, skipped = ?, entities = ?, finished_at = ?
		WHERE id = ?
	`, upd.Files, upd.Processed, upd.Skipped, upd.Entities, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, linkedin.Errorf(linkedin.ENOTFOUND, "run not found")
	}

	return s.FindRunByID(ctx, id)
}

// FindRunByID retrieves a run by ID.
func (s *HistoryService) FindRunByID(ctx context.Context, id string) (*linkedin.Run, error) {
	var run linkedin.Run
	var kind, startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, input_dir, output, files, processed, skipped, entities, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &kind, &run.InputDir, &run.Output, &run.Files, &run.Processed, &run.Skipped,
		&run.Entities, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, linkedin.Errorf(linkedin.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Kind = linkedin.Kind(kind)
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &run, nil
}
