package sqlite_test

import (
	"context"
	"testing"

	"github.com/SACCSF/linkedin"
	"github.com/SACCSF/linkedin/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func createRun(t *testing.T, svc *sqlite.HistoryService) *linkedin.Run {
	t.Helper()

	run := &linkedin.Run{Kind: linkedin.KindCompany, InputDir: "companies", Output: "companies.json"}
	require.NoError(t, svc.CreateRun(context.Background(), run))
	return run
}

func TestHistoryService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID and start time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))

		run := createRun(t, svc)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.False(t, run.StartedAt.IsZero(), "StartedAt should be set")
		assert.True(t, run.FinishedAt.IsZero(), "FinishedAt should not be set yet")
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &linkedin.Run{Kind: linkedin.KindPerson})

		require.Error(t, err)
		assert.Equal(t, linkedin.EINVALID, linkedin.ErrorCode(err))
	})
}

func TestHistoryService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))
		run := createRun(t, svc)

		got, err := svc.FindRunByID(context.Background(), run.ID)

		require.NoError(t, err)
		assert.Equal(t, linkedin.KindCompany, got.Kind)
		assert.Equal(t, "companies", got.InputDir)
		assert.Equal(t, "companies.json", got.Output)
		assert.True(t, got.FinishedAt.IsZero())
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))

		_, err := svc.FindRunByID(context.Background(), "missing")

		assert.Equal(t, linkedin.ENOTFOUND, linkedin.ErrorCode(err))
	})
}

func TestHistoryService_FinishRun(t *testing.T) {
	t.Parallel()

	t.Run("stores counters and finish time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))
		run := createRun(t, svc)

		got, err := svc.FinishRun(context.Background(), run.ID, linkedin.RunUpdate{
			Files: 3, Processed: 2, Skipped: 1, Entities: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, got.Files)
		assert.Equal(t, 2, got.Processed)
		assert.Equal(t, 1, got.Skipped)
		assert.Equal(t, 1, got.Entities)
		assert.False(t, got.FinishedAt.IsZero())
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))

		_, err := svc.FinishRun(context.Background(), "missing", linkedin.RunUpdate{})

		assert.Equal(t, linkedin.ENOTFOUND, linkedin.ErrorCode(err))
	})
}

func TestHistoryService_Extractions(t *testing.T) {
	t.Parallel()

	// Story: Auditing a run
	// Given a run with one merged and one skipped snapshot
	// When I query its extractions
	// Then both outcomes are returned in the order they were recorded
	// And they can be filtered by status and key
	setup := func(t *testing.T) (*sqlite.HistoryService, *linkedin.Run) {
		t.Helper()

		svc := sqlite.NewHistoryService(setupTestDB(t))
		run := createRun(t, svc)
		ctx := context.Background()

		require.NoError(t, svc.CreateExtraction(ctx, &linkedin.Extraction{
			RunID:       run.ID,
			SourcePath:  "companies/acme.html",
			ContentHash: "ef46db3751d8e999",
			Key:         "acme ag",
			Status:      linkedin.StatusMerged,
			Record:      []byte(`{"name":"Acme AG"}`),
		}))
		require.NoError(t, svc.CreateExtraction(ctx, &linkedin.Extraction{
			RunID:      run.ID,
			SourcePath: "companies/broken.html",
			Status:     linkedin.StatusSkipped,
			Message:    "document contains no markup",
		}))
		return svc, run
	}

	t.Run("returns all extractions of a run in order", func(t *testing.T) {
		t.Parallel()

		svc, run := setup(t)

		got, err := svc.FindExtractions(context.Background(), linkedin.ExtractionFilter{RunID: &run.ID})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "companies/acme.html", got[0].SourcePath)
		assert.JSONEq(t, `{"name":"Acme AG"}`, string(got[0].Record))
		assert.Equal(t, "ef46db3751d8e999", got[0].ContentHash)
		assert.Equal(t, "companies/broken.html", got[1].SourcePath)
		assert.Nil(t, got[1].Record)
		assert.Equal(t, "document contains no markup", got[1].Message)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		svc, run := setup(t)
		status := linkedin.StatusSkipped

		got, err := svc.FindExtractions(context.Background(), linkedin.ExtractionFilter{RunID: &run.ID, Status: &status})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "companies/broken.html", got[0].SourcePath)
	})

	t.Run("filters by key", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		key := "acme ag"

		got, err := svc.FindExtractions(context.Background(), linkedin.ExtractionFilter{Key: &key})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, linkedin.StatusMerged, got[0].Status)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		got, err := svc.FindExtractions(context.Background(), linkedin.ExtractionFilter{Offset: 1})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "companies/broken.html", got[0].SourcePath)
	})

	t.Run("rejects invalid extraction", func(t *testing.T) {
		t.Parallel()

		svc, run := setup(t)

		err := svc.CreateExtraction(context.Background(), &linkedin.Extraction{RunID: run.ID, SourcePath: "x.html", Status: "lost"})

		assert.Equal(t, linkedin.EINVALID, linkedin.ErrorCode(err))
	})
}
