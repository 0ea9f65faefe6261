package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore persists listing photos under opaque bucket-style paths and
// resolves them to public URLs.
type BlobStore interface {
	Save(path string, r io.Reader) (string, error)
	Delete(path string) error
	URL(path string) string
}

// PhotoPath builds the canonical storage path for a listing photo:
// listings/<userID>/<listingID>/<fileName>
func PhotoPath(userID uint, listingID, fileName string) string {
	return fmt.Sprintf("listings/%d/%s/%s", userID, listingID, filepath.Base(fileName))
}

// DiskStore is a filesystem-backed blob store
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a disk store rooted at root, serving files under baseURL
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the blob and returns its storage path
func (s *DiskStore) Save(path string, r io.Reader) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return path, nil
}

// Delete removes the blob; deleting a missing blob is a no-op
func (s *DiskStore) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// URL returns the public URL for a storage path
func (s *DiskStore) URL(path string) string {
	return s.baseURL + "/" + path
}

// resolve joins the path under root and rejects traversal outside it
func (s *DiskStore) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage path: %s", path)
	}
	return full, nil
}
