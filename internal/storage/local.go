package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// Store abstracts attachment content storage. Metadata lives in the
// database; only the bytes go here.
type Store interface {
	Save(fileName string, content io.Reader) (storageKey string, size int64, err error)
	Open(storageKey string) (io.ReadCloser, error)
	// URL derives a public link from injected configuration; empty when no
	// base URL is configured and callers should fall back to the download
	// endpoint.
	URL(attachmentID string) string
}

type localStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a filesystem-backed store rooted at the configured
// attachment directory.
func NewLocalStore(cfg config.StorageConfig) (Store, error) {
	if err := os.MkdirAll(cfg.AttachmentDir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	return &localStore{dir: cfg.AttachmentDir, baseURL: strings.TrimSuffix(cfg.AttachmentBaseURL, "/")}, nil
}

func (s *localStore) Save(fileName string, content io.Reader) (string, int64, error) {
	key := uuid.NewString() + sanitizeExt(fileName)
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	size, err := io.Copy(f, content)
	if err != nil {
		return "", 0, err
	}
	return key, size, nil
}

func (s *localStore) Open(storageKey string) (io.ReadCloser, error) {
	// storage keys are service-generated UUIDs; reject anything path-like
	if storageKey != filepath.Base(storageKey) {
		return nil, fmt.Errorf("invalid storage key")
	}
	return os.Open(filepath.Join(s.dir, storageKey))
}

func (s *localStore) URL(attachmentID string) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + "/tickets/attachments/" + attachmentID + "/download"
}

func sanitizeExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) > 10 {
		return ""
	}
	return ext
}
