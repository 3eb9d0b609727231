package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Logical buckets of the object store. Both are public: anything uploaded
// is reachable through its public URL.
const (
	BucketProfilePictures = "profile-pictures"
	BucketSourceCode      = "source-code"
)

// Storage is a local-disk object store with bucket directories under Root.
// Paths are opaque names; the public URL resolves them through the /files
// route.
type Storage struct {
	Root    string
	BaseURL string
}

// NewStorage creates the bucket directories under root.
func NewStorage(root, baseURL string) (*Storage, error) {
	for _, bucket := range []string{BucketProfilePictures, BucketSourceCode} {
		if err := os.MkdirAll(filepath.Join(root, bucket), os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create bucket directory %s: %w", bucket, err)
		}
	}
	return &Storage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// BucketDir returns the directory backing a bucket.
func (s *Storage) BucketDir(bucket string) string {
	return filepath.Join(s.Root, bucket)
}

// Upload writes data under bucket/name. With overwrite set the write has
// upsert semantics: a retry with the same derived name replaces the
// previous object instead of duplicating it.
func (s *Storage) Upload(bucket, name string, data []byte, overwrite bool) error {
	cleaned, err := cleanObjectName(name)
	if err != nil {
		return err
	}

	target := filepath.Join(s.BucketDir(bucket), cleaned)
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("object %s already exists in bucket %s", cleaned, bucket)
		}
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", bucket, cleaned, err)
	}
	return nil
}

// GetPublicURL resolves a stored path to the URL the shell can fetch it at.
func (s *Storage) GetPublicURL(bucket, name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf("%s/files/%s/%s", s.BaseURL, bucket, name)
}

func cleanObjectName(name string) (string, error) {
	cleaned := filepath.Base(filepath.Clean(name))
	if cleaned == "" || cleaned == "." || cleaned == ".." || strings.ContainsAny(cleaned, `/\`) {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return cleaned, nil
}
