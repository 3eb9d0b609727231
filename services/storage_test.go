package services

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}
	return storage
}

func TestUploadOverwriteReplacesObject(t *testing.T) {
	storage := newTestStorage(t)
	name := "user-1-1700000000.jpg"

	if err := storage.Upload(BucketProfilePictures, name, []byte("first"), true); err != nil {
		t.Fatalf("first upload returned error: %v", err)
	}
	if err := storage.Upload(BucketProfilePictures, name, []byte("second"), true); err != nil {
		t.Fatalf("second upload returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(storage.BucketDir(BucketProfilePictures), name))
	if err != nil {
		t.Fatalf("failed to read stored object: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("stored content = %q, want the retried upload to win", data)
	}
}

func TestUploadRefusesExistingObjectWithoutOverwrite(t *testing.T) {
	storage := newTestStorage(t)
	name := "user-1-1700000000-project.zip"

	if err := storage.Upload(BucketSourceCode, name, []byte("first"), false); err != nil {
		t.Fatalf("first upload returned error: %v", err)
	}
	if err := storage.Upload(BucketSourceCode, name, []byte("second"), false); err == nil {
		t.Fatal("expected an error uploading over an existing object")
	}

	data, err := os.ReadFile(filepath.Join(storage.BucketDir(BucketSourceCode), name))
	if err != nil {
		t.Fatalf("failed to read stored object: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("stored content = %q, want the original to survive", data)
	}
}

func TestUploadRejectsUnsafeObjectNames(t *testing.T) {
	storage := newTestStorage(t)

	for _, name := range []string{"", ".", ".."} {
		if err := storage.Upload(BucketSourceCode, name, []byte("data"), true); err == nil {
			t.Errorf("Upload(%q) succeeded, want error", name)
		}
	}

	// Nested paths collapse to their base name inside the bucket
	if err := storage.Upload(BucketSourceCode, "nested/dir/project.zip", []byte("zip"), true); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(storage.BucketDir(BucketSourceCode), "project.zip")); err != nil {
		t.Errorf("object not stored under its base name: %v", err)
	}
}

func TestGetPublicURL(t *testing.T) {
	storage, err := NewStorage(t.TempDir(), "http://localhost:8080/")
	if err != nil {
		t.Fatalf("NewStorage returned error: %v", err)
	}

	got := storage.GetPublicURL(BucketProfilePictures, "user-1-1.jpg")
	want := "http://localhost:8080/files/profile-pictures/user-1-1.jpg"
	if got != want {
		t.Errorf("GetPublicURL = %q, want %q", got, want)
	}

	if got := storage.GetPublicURL(BucketSourceCode, ""); got != "" {
		t.Errorf("GetPublicURL with empty name = %q, want empty", got)
	}
}
