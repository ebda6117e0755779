// Package media stores uploaded destination images on local disk and serves
// them back under a stable URL path.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trailhead/pkg/config"
	apperrors "trailhead/pkg/errors"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type StoredFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

type Service interface {
	Store(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error)
}

type service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{cfg: cfg}
}

// Store writes the upload under a random filename so uploads can never
// collide or overwrite each other, and the original name never reaches the
// filesystem.
func (s *service) Store(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported file type %q", ext))
	}

	if err := os.MkdirAll(s.cfg.MediaDir, 0o755); err != nil {
		return nil, apperrors.Internal("Failed to prepare media directory", err)
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(s.cfg.MediaDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Internal("Failed to store upload", err)
	}
	defer f.Close()

	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	written, err := io.Copy(f, io.LimitReader(r, maxBytes+1))
	if err != nil {
		os.Remove(path)
		return nil, apperrors.Internal("Failed to store upload", err)
	}
	if written > maxBytes {
		os.Remove(path)
		return nil, apperrors.InvalidInput(fmt.Sprintf("file exceeds the %dMB upload limit", s.cfg.MaxUploadMB))
	}

	s.cfg.Log.Info("Media stored",
		"filename", filename,
		"size", written,
	)

	return &StoredFile{
		Filename: filename,
		URL:      s.cfg.MediaBaseURL + "/" + filename,
		Size:     written,
	}, nil
}
