package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestObjectPathFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"gcs url",
			"https://storage.googleapis.com/my-bucket/42/abc-def.jpg",
			"42/abc-def.jpg",
		},
		{
			"local url",
			"http://localhost:8080/uploads/7/photo.png",
			"7/photo.png",
		},
		{"too few segments", "https://example.com/file.jpg", ""},
		{"unparseable", "://not a url", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectPathFromURL(tt.url); got != tt.want {
				t.Errorf("ObjectPathFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestLocalStorePutDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:8080")
	ctx := context.Background()

	url, err := store.Put(ctx, "1/photo.jpg", strings.NewReader("fake image bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "http://localhost:8080/uploads/1/photo.jpg" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "1", "photo.jpg"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}

	path := ObjectPathFromURL(url)
	if path != "1/photo.jpg" {
		t.Fatalf("round-trip path = %q", path)
	}
	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1", "photo.jpg")); !os.IsNotExist(err) {
		t.Error("file should be gone after Delete")
	}

	// Deleting again converges instead of erroring.
	if err := store.Delete(ctx, path); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
