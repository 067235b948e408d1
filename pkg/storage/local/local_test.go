package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/storescouthq/storescout-backend/pkg/config"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), config.UploadsConfig{Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestSaveAndOpen(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	publicPath, err := store.Save(ctx, "photo.png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(publicPath) != "photo.png" {
		t.Fatalf("unexpected public path %q", publicPath)
	}

	reader, err := store.Open(ctx, "photo.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestSaveStripsPathTraversal(t *testing.T) {
	store := testStore(t)

	publicPath, err := store.Save(context.Background(), "../../etc/passwd", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(publicPath) != "passwd" {
		t.Fatalf("expected traversal to be stripped, got %q", publicPath)
	}
	if _, err := os.Stat(filepath.Join(store.dir, "passwd")); err != nil {
		t.Fatalf("expected file inside uploads dir: %v", err)
	}
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	store := testStore(t)
	if err := store.Remove(context.Background(), "never-existed.jpg"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

func TestPublicPrefix(t *testing.T) {
	cases := map[string]string{
		"./public/uploads": "/uploads",
		"public/uploads":   "/uploads",
		"uploads":          "/uploads",
	}
	for dir, want := range cases {
		if got := publicPrefix(dir); got != want {
			t.Errorf("publicPrefix(%q) = %q, want %q", dir, got, want)
		}
	}
}
