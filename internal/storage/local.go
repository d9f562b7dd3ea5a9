package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/config"
)

// LocalStore writes blobs to a local directory served under a public base URL
type LocalStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewLocalStore creates the backing directory if needed
func NewLocalStore(cfg config.StorageConfig, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &LocalStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:  logger,
	}, nil
}

// Dir returns the backing directory, for static file serving
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save stores the blob under a uuid-prefixed name so uploads never collide or
// overwrite each other, and returns the public URL.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objectName := uuid.New().String() + "-" + sanitizeName(name)
	path := filepath.Join(s.dir, objectName)

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error("Failed to create blob file", zap.Error(err))
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		s.logger.Error("Failed to write blob", zap.Error(err))
		os.Remove(path)
		return "", err
	}

	return s.baseURL + "/" + objectName, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
