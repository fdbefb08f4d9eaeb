package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes blobs under a single directory and serves them back via
// the /uploads/ static route.
type DiskStore struct {
	Dir string
}

// NewDiskStore ensures the directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	ref := uuid.NewString() + filepath.Ext(name)
	f, err := os.Create(filepath.Join(s.Dir, ref))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	return ref, nil
}

func (s *DiskStore) URL(_ context.Context, ref string) (string, error) {
	return "/uploads/" + ref, nil
}
