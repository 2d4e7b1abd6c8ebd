package slog_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"testing"

	"github.com/SACCSF/linkedin"
	"github.com/SACCSF/linkedin/mock"
	linkslog "github.com/SACCSF/linkedin/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSource_Snapshots(t *testing.T) {
	t.Parallel()

	t.Run("logs count and failures once the sequence is consumed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotSource{
			SnapshotsFn: func(ctx context.Context, dir string) (iter.Seq2[*linkedin.Snapshot, error], error) {
				return func(yield func(*linkedin.Snapshot, error) bool) {
					if !yield(&linkedin.Snapshot{Path: "a.html"}, nil) {
						return
					}
					yield(&linkedin.Snapshot{Path: "b.html"}, errors.New("permission denied"))
				}, nil
			},
		}

		src := linkslog.NewLoggingSource(inner, logger)
		seq, err := src.Snapshots(context.Background(), "companies")
		require.NoError(t, err)
		assert.Empty(t, buf.String(), "nothing is logged before iteration")

		var paths []string
		for snap := range seq {
			paths = append(paths, snap.Path)
		}

		assert.Equal(t, []string{"a.html", "b.html"}, paths)
		output := buf.String()
		assert.Contains(t, output, "snapshot enumeration")
		assert.Contains(t, output, "dir=companies")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "failed=1")
	})

	t.Run("logs invalid folders", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotSource{
			SnapshotsFn: func(ctx context.Context, dir string) (iter.Seq2[*linkedin.Snapshot, error], error) {
				return nil, linkedin.Errorf(linkedin.EINVALIDPATH, "input folder %s does not exist", dir)
			},
		}

		src := linkslog.NewLoggingSource(inner, logger)
		_, err := src.Snapshots(context.Background(), "missing")

		assert.Equal(t, linkedin.EINVALIDPATH, linkedin.ErrorCode(err))
		assert.Contains(t, buf.String(), "does not exist")
	})
}
