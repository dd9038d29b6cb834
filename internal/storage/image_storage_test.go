package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoreWritesAndNames(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, "/images/")

	data := []byte("not really a png")
	filename, url, err := store.Store(data, "url_renderer")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if !strings.HasPrefix(filename, "url_renderer_") || !strings.HasSuffix(filename, ".png") {
		t.Errorf("filename %q has unexpected shape", filename)
	}
	if url != "/images/"+filename {
		t.Errorf("url = %q, want /images/%s", url, filename)
	}

	written, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(written) != string(data) {
		t.Error("stored bytes differ from input")
	}
}

func TestStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := NewImageStore(dir, "/images")

	if _, _, err := store.Store([]byte("x"), "website_renderer"); err != nil {
		t.Fatalf("Store into missing directory: %v", err)
	}
}

func TestCleanupOldImages(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, "/images")

	oldFile := filepath.Join(dir, "stale.png")
	newFile := filepath.Join(dir, "fresh.png")
	for _, path := range []string{oldFile, newFile} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := store.CleanupOldImages(24 * time.Hour); err != nil {
		t.Fatalf("CleanupOldImages: %v", err)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("stale image not removed")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Errorf("fresh image removed: %v", err)
	}
}

func TestCleanupMissingDirectory(t *testing.T) {
	store := NewImageStore(filepath.Join(t.TempDir(), "never-created"), "/images")
	if err := store.CleanupOldImages(time.Hour); err != nil {
		t.Errorf("cleanup of missing directory: %v", err)
	}
}
