package linkedin

import (
	"context"
	"time"
)

// Run records one execution of a pipeline over an input folder.
type Run struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	InputDir   string    `json:"inputDir"`
	Output     string    `json:"output"`
	Files      int       `json:"files"`
	Processed  int       `json:"processed"`
	Skipped    int       `json:"skipped"`
	Entities   int       `json:"entities"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Kind != KindCompany && r.Kind != KindPerson {
		return Errorf(EINVALID, "run kind required")
	}
	if r.InputDir == "" {
		return Errorf(EINVALID, "run input directory required")
	}
	return nil
}

// RunUpdate represents the counters set when a run finishes.
type RunUpdate struct {
	Files     int `json:"files"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Entities  int `json:"entities"`
}

// Extraction records the outcome for one snapshot within a run.
type Extraction struct {
	ID          string         `json:"id"`
	RunID       string         `json:"runId"`
	SourcePath  string         `json:"sourcePath"`
	ContentHash string         `json:"contentHash"`
	Key         string         `json:"key"`
	Status      ProgressStatus `json:"status"`
	Message     string         `json:"message"`
	Record      []byte         `json:"record,omitempty"`
	ExtractedAt time.Time      `json:"extractedAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.RunID == "" {
		return Errorf(EINVALID, "extraction run ID required")
	}
	if e.SourcePath == "" {
		return Errorf(EINVALID, "extraction source path required")
	}
	switch e.Status {
	case StatusMerged, StatusSkipped, StatusDuplicate:
	default:
		return Errorf(EINVALID, "unknown extraction status %q", e.Status)
	}
	return nil
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	RunID  *string         `json:"runId"`
	Key    *string         `json:"key"`
	Status *ProgressStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// HistoryService keeps an audit trail of runs and per-snapshot outcomes.
type HistoryService interface {
	// CreateRun creates a new run, assigning its ID and StartedAt.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counters and sets FinishedAt.
	// Returns ENOTFOUND if run does not exist.
	FinishRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// CreateExtraction records the outcome for one snapshot.
	CreateExtraction(ctx context.Context, e *Extraction) error

	// FindExtractions retrieves extractions matching the filter, oldest first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)
}
