// Package fs provides file-based snapshot enumeration and result storage.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/SACCSF/linkedin"
)

// Ensure Source implements linkedin.SnapshotSource at compile time.
var _ linkedin.SnapshotSource = (*Source)(nil)

// DefaultExtensions are the file extensions recognized as snapshots.
var DefaultExtensions = []string{".html", ".htm"}

// Source enumerates HTML snapshots below a folder, recursing into
// sub-folders. Files are visited in lexical path order.
type Source struct {
	// Extensions are matched case-insensitively, including the leading dot.
	Extensions []string
}

// NewSource creates a Source recognizing DefaultExtensions.
func NewSource() *Source {
	return &Source{Extensions: slices.Clone(DefaultExtensions)}
}

// Snapshots validates dir and returns a lazy sequence over its snapshots.
// Content is read only when the sequence reaches the file. If ctx is
// canceled the sequence yields ctx.Err() with a nil snapshot and stops.
func (s *Source) Snapshots(ctx context.Context, dir string) (iter.Seq2[*linkedin.Snapshot, error], error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, linkedin.Errorf(linkedin.EINVALIDPATH, "input folder %s does not exist", dir)
	case err != nil:
		return nil, linkedin.Errorf(linkedin.EINVALIDPATH, "cannot access input folder %s: %v", dir, err)
	case !info.IsDir():
		return nil, linkedin.Errorf(linkedin.EINVALIDPATH, "input path %s is not a folder", dir)
	}
	f, err := os.Open(dir)
	if err != nil {
		return nil, linkedin.Errorf(linkedin.EINVALIDPATH, "cannot read input folder %s: %v", dir, err)
	}
	_, err = f.ReadDir(1)
	f.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, linkedin.Errorf(linkedin.EINVALIDPATH, "cannot read input folder %s: %v", dir, err)
	}

	return func(yield func(*linkedin.Snapshot, error) bool) {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return filepath.SkipAll
			}
			if walkErr != nil {
				if path == dir {
					yield(nil, linkedin.Errorf(linkedin.EINVALIDPATH, "cannot read input folder %s: %v", dir, walkErr))
					return filepath.SkipAll
				}
				folder := d != nil && d.IsDir()
				if !yield(&linkedin.Snapshot{Path: path, Folder: folder}, fmt.Errorf("read %s: %w", path, walkErr)) {
					return filepath.SkipAll
				}
				if folder {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !s.matches(d.Name()) {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				err = fmt.Errorf("read %s: %w", path, err)
			}
			if !yield(&linkedin.Snapshot{Path: path, Content: content}, err) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

func (s *Source) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range s.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
