package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
)

// LocalStore keeps uploads on the local filesystem under the static
// directory, served by the HTTP server at /static.
type LocalStore struct {
	dir string
}

var _ portssvc.ImageStore = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	for _, sub := range []string{"uploads", "avatars"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create static directory: %w", err)
		}
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) SaveImage(_ context.Context, data []byte, contentType string) (string, error) {
	name := uuid.NewString() + extensionFor(contentType)
	if err := os.WriteFile(filepath.Join(s.dir, "uploads", name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return "/static/uploads/" + name, nil
}

func (s *LocalStore) SaveAvatar(_ context.Context, userID string, data []byte, _ string) (string, error) {
	resized, err := resizeAvatar(data)
	if err != nil {
		return "", err
	}

	name := userID + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, "avatars", name), resized, 0o644); err != nil {
		return "", fmt.Errorf("failed to write avatar: %w", err)
	}
	return "/static/avatars/" + name, nil
}
