package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/SACCSF/linkedin"
	"github.com/SACCSF/linkedin/mock"
	linkslog "github.com/SACCSF/linkedin/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingHistory(t *testing.T) {
	t.Parallel()

	t.Run("logs run creation with assigned ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.HistoryService{
			CreateRunFn: func(ctx context.Context, run *linkedin.Run) error {
				run.ID = "run-1"
				return nil
			},
		}

		h := linkslog.NewLoggingHistory(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := h.CreateRun(context.Background(), &linkedin.Run{Kind: linkedin.KindCompany, InputDir: "companies"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "create run")
		assert.Contains(t, output, "id=run-1")
		assert.Contains(t, output, "kind=company")
	})

	t.Run("logs extraction outcome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.HistoryService{
			CreateExtractionFn: func(ctx context.Context, e *linkedin.Extraction) error { return nil },
		}

		h := linkslog.NewLoggingHistory(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := h.CreateExtraction(context.Background(), &linkedin.Extraction{
			RunID: "run-1", SourcePath: "acme.html", Key: "acme", Status: linkedin.StatusMerged,
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "record extraction")
		assert.Contains(t, output, "path=acme.html")
		assert.Contains(t, output, "status=merged")
	})

	t.Run("logs finished counters", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.HistoryService{
			FinishRunFn: func(ctx context.Context, id string, upd linkedin.RunUpdate) (*linkedin.Run, error) {
				return &linkedin.Run{ID: id, Entities: upd.Entities}, nil
			},
		}

		h := linkslog.NewLoggingHistory(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		run, err := h.FinishRun(context.Background(), "run-1", linkedin.RunUpdate{Processed: 2, Entities: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, run.Entities)
		assert.Contains(t, buf.String(), "processed=2")
		assert.Contains(t, buf.String(), "entities=1")
	})
}
