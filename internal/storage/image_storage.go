package storage

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/logging"
)

// ImageStore keeps rendered frames on disk so a display can re-fetch its
// current image without triggering a new capture.
type ImageStore struct {
	basePath string
	baseURL  string
}

// NewImageStore creates a store rooted at basePath; stored frames are
// addressable under baseURL.
func NewImageStore(basePath, baseURL string) *ImageStore {
	return &ImageStore{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// NewFromEnv creates a store configured from the environment.
func NewFromEnv() *ImageStore {
	return NewImageStore(
		config.Get("IMAGE_DIR", "./data/images"),
		config.Get("IMAGE_BASE_URL", "/images"),
	)
}

// BasePath returns the directory frames are stored in.
func (s *ImageStore) BasePath() string {
	return s.basePath
}

// Store writes PNG data under a content-addressed filename and returns
// the filename and its URL.
func (s *ImageStore) Store(imageData []byte, pluginType string) (string, string, error) {
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create image directory: %w", err)
	}

	hash := sha256.Sum256(imageData)
	filename := fmt.Sprintf("%s_%s_%x.png", pluginType, time.Now().Format("20060102_150405"), hash[:8])

	fullPath := filepath.Join(s.basePath, filename)
	if err := os.WriteFile(fullPath, imageData, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write image file: %w", err)
	}

	return filename, s.baseURL + "/" + filename, nil
}

// CleanupOldImages removes frames older than maxAge.
func (s *ImageStore) CleanupOldImages(maxAge time.Duration) error {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read image directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			fullPath := filepath.Join(s.basePath, entry.Name())
			if err := os.Remove(fullPath); err != nil {
				logging.WarnWithComponent(logging.ComponentStorage, "Failed to remove old image",
					"path", fullPath, "error", err)
			}
		}
	}

	return nil
}

// StartCleanup runs CleanupOldImages on an interval until stop is closed.
func (s *ImageStore) StartCleanup(interval, maxAge time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CleanupOldImages(maxAge); err != nil {
				logging.WarnWithComponent(logging.ComponentStorage, "Image cleanup failed", "error", err)
			}
		case <-stop:
			return
		}
	}
}
