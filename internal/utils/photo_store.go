package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PhotoStore persists an uploaded photo and returns the public URL it
// will be served from. The store is called before any database
// transaction is opened, so a slow upload never holds a transaction.
type PhotoStore interface {
	Save(originalName string, r io.Reader) (url string, err error)
}

// DiskPhotoStore writes photos under a local directory served at
// baseURL (e.g. /uploads). Object keys are randomized so uploads with
// colliding names never overwrite each other.
type DiskPhotoStore struct {
	Dir     string
	BaseURL string
}

func NewDiskPhotoStore(dir, baseURL string) (*DiskPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo dir %q: %w", dir, err)
	}
	return &DiskPhotoStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskPhotoStore) Save(originalName string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	key := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.Dir, key))
	if err != nil {
		return "", fmt.Errorf("creating photo file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing photo %q: %w", key, err)
	}
	return s.BaseURL + "/" + key, nil
}
