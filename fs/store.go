package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SACCSF/linkedin"
)

// Ensure FileStore implements linkedin.ResultStore at compile time.
var _ linkedin.ResultStore = (*FileStore)(nil)

// FileStore implements linkedin.ResultStore with atomic update semantics.
// Data is saved to a temporary file next to the destination, then renamed
// over it on Commit, so readers never observe a partial document.
type FileStore struct {
	path string
	tmp  string
}

// NewFileStore creates a new FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the destination file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, linkedin.Errorf(linkedin.ENOTFOUND, "output file %s does not exist", s.path)
	}
	return data, err
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// A second Save replaces the pending data.
	if err := s.Abort(); err != nil {
		os.Remove(f.Name())
		return err
	}
	s.tmp = f.Name()
	return nil
}

func (s *FileStore) Commit() error {
	if s.tmp == "" {
		return linkedin.Errorf(linkedin.EINVALID, "nothing saved to commit")
	}
	if err := os.Rename(s.tmp, s.path); err != nil {
		return fmt.Errorf("replace output file: %w", err)
	}
	s.tmp = ""
	return nil
}

func (s *FileStore) Abort() error {
	if s.tmp == "" {
		return nil
	}
	err := os.Remove(s.tmp)
	s.tmp = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
