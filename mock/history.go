package mock

import (
	"context"

	"github.com/SACCSF/linkedin"
)

var _ linkedin.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of linkedin.HistoryService.
type HistoryService struct {
	CreateRunFn        func(ctx context.Context, run *linkedin.Run) error
	FinishRunFn        func(ctx context.Context, id string, upd linkedin.RunUpdate) (*linkedin.Run, error)
	FindRunByIDFn      func(ctx context.Context, id string) (*linkedin.Run, error)
	CreateExtractionFn func(ctx context.Context, e *linkedin.Extraction) error
	FindExtractionsFn  func(ctx context.Context, filter linkedin.ExtractionFilter) ([]*linkedin.Extraction, error)
}

func (s *HistoryService) CreateRun(ctx context.Context, run *linkedin.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *HistoryService) FinishRun(ctx context.Context, id string, upd linkedin.RunUpdate) (*linkedin.Run, error) {
	return s.FinishRunFn(ctx, id, upd)
}

func (s *HistoryService) FindRunByID(ctx context.Context, id string) (*linkedin.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *HistoryService) CreateExtraction(ctx context.Context, e *linkedin.Extraction) error {
	return s.CreateExtractionFn(ctx, e)
}

func (s *HistoryService) FindExtractions(ctx context.Context, filter linkedin.ExtractionFilter) ([]*linkedin.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}
