// Package storage provides evidence file storage on the local
// filesystem. Files are laid out per tenant so one tenant's uploads can
// never be addressed from another tenant's path.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/genestial/miniqms/internal/domain"
)

// DiskStore implements FileStore on the local filesystem
type DiskStore struct {
	root string
}

// NewDiskStore creates a disk-backed file store rooted at the given
// directory
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save writes the file content under the tenant's directory and returns
// the stored path relative to the root. A random prefix keeps uploads
// with the same filename from colliding.
func (s *DiskStore) Save(ctx context.Context, tenantID domain.TenantID, filename string, content io.Reader) (string, error) {
	dir := filepath.Join(s.root, string(tenantID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create tenant directory: %w", err)
	}

	name := uuid.NewString() + "-" + sanitizeFilename(filename)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.Join(string(tenantID), name), nil
}

// Open reads a previously stored file
func (s *DiskStore) Open(ctx context.Context, tenantID domain.TenantID, path string) (io.ReadCloser, error) {
	full, err := s.resolve(tenantID, path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file
func (s *DiskStore) Remove(ctx context.Context, tenantID domain.TenantID, path string) error {
	full, err := s.resolve(tenantID, path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// resolve joins a stored path against the root and rejects anything
// that escapes the tenant's directory
func (s *DiskStore) resolve(tenantID domain.TenantID, path string) (string, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	prefix := filepath.Join(s.root, string(tenantID)) + string(filepath.Separator)
	if !strings.HasPrefix(full, prefix) {
		return "", fmt.Errorf("path %q is outside tenant storage", path)
	}
	return full, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return name
}
