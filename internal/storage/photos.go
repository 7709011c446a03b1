package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrBadPhotoData = errors.New("photo bytes are not a base64 data URL")

// BlobStore is the photo bucket the rental flow uploads into. The disk
// implementation below stands in for an object store; anything speaking
// the same interface (S3, GCS) can replace it.
type BlobStore interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
}

// DecodePhoto decodes a client-supplied data URL ("data:image/png;base64,...."
// or a bare base64 payload after a comma) and sniffs the real content type
// from the bytes rather than trusting the header.
func DecodePhoto(dataURL string) (data []byte, contentType string, err error) {
	payload := dataURL
	if i := strings.IndexByte(dataURL, ','); i >= 0 {
		payload = dataURL[i+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", ErrBadPhotoData
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadPhotoData, err)
	}

	return data, mimetype.Detect(data).String(), nil
}

// ObjectKey builds a collision-free key for an uploaded photo, keeping the
// client's filename as a readable suffix.
func ObjectKey(filename string) string {
	return uuid.New().String() + "-" + filepath.Base(filename)
}

// DiskStore writes photos under a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Upload(_ context.Context, key string, _ string, data []byte) error {
	path := filepath.Join(s.dir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing photo %s: %w", key, err)
	}
	return nil
}
