package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/storescouthq/storescout-backend/pkg/config"
	"github.com/storescouthq/storescout-backend/pkg/logger"
)

// Store persists uploads on the local filesystem under a single directory.
type Store struct {
	dir       string
	publicDir string
}

// New creates the uploads directory if needed and returns a disk-backed store.
func New(ctx context.Context, cfg config.UploadsConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("uploads dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir %q: %w", cfg.Dir, err)
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "dir", cfg.Dir), "local upload store ready")
	}
	return &Store{
		dir:       cfg.Dir,
		publicDir: publicPrefix(cfg.Dir),
	}, nil
}

// Save writes the reader contents under filename and returns the public path.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	clean, err := s.safePath(filename)
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(clean, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return path.Join(s.publicDir, filepath.Base(clean)), nil
}

// Open returns a reader for the stored file.
func (s *Store) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	clean, err := s.safePath(filename)
	if err != nil {
		return nil, err
	}
	return os.Open(clean)
}

// Remove deletes the stored file. Missing files are ignored.
func (s *Store) Remove(ctx context.Context, filename string) error {
	clean, err := s.safePath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing upload file: %w", err)
	}
	return nil
}

func (s *Store) safePath(filename string) (string, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return filepath.Join(s.dir, base), nil
}

// publicPrefix maps the disk directory to the URL path served to clients.
// "./public/uploads" becomes "/uploads".
func publicPrefix(dir string) string {
	trimmed := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(dir)), "public/")
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}
