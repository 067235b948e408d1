package photos

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"path"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/storescouthq/storescout-backend/pkg/config"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (m *memStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.files[filename] = data
	return "/uploads/" + filename, nil
}

func (m *memStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.files[filename])), nil
}

func (m *memStore) Remove(ctx context.Context, filename string) error {
	delete(m.files, filename)
	return nil
}

func pngUpload(t *testing.T, width, height int) *Upload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return &Upload{Reader: &buf, ContentType: "image/png"}
}

func newTestService(t *testing.T, store *memStore) Service {
	t.Helper()
	svc, err := NewService(store, config.UploadsConfig{ResizeWidthPX: 300})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestProcessResizesAndStores(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store)

	publicPath, err := svc.Process(context.Background(), pngUpload(t, 600, 400))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.HasPrefix(publicPath, "/uploads/") {
		t.Fatalf("unexpected public path %q", publicPath)
	}
	if len(store.files) != 1 {
		t.Fatalf("expected one stored file, got %d", len(store.files))
	}

	filename := path.Base(publicPath)
	if !strings.HasSuffix(filename, ".png") {
		t.Fatalf("expected .png suffix, got %q", filename)
	}
	if _, err := uuid.Parse(strings.TrimSuffix(filename, ".png")); err != nil {
		t.Fatalf("expected uuid filename, got %q", filename)
	}

	decoded, err := png.Decode(bytes.NewReader(store.files[filename]))
	if err != nil {
		t.Fatalf("decode stored png: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 300 {
		t.Fatalf("expected width 300, got %d", bounds.Dx())
	}
	if bounds.Dy() != 200 {
		t.Fatalf("expected proportional height 200, got %d", bounds.Dy())
	}
}

func TestProcessSkipsMissingUpload(t *testing.T) {
	svc := newTestService(t, newMemStore())

	publicPath, err := svc.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if publicPath != "" {
		t.Fatalf("expected empty path, got %q", publicPath)
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store)

	_, err := svc.Process(context.Background(), &Upload{
		Reader:      strings.NewReader("%PDF-1.4"),
		ContentType: "application/pdf",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnsupportedMedia {
		t.Fatalf("expected unsupported media error, got %v", err)
	}
	if len(store.files) != 0 {
		t.Fatal("nothing should be stored for rejected uploads")
	}
}

func TestProcessRejectsCorruptImage(t *testing.T) {
	svc := newTestService(t, newMemStore())

	_, err := svc.Process(context.Background(), &Upload{
		Reader:      strings.NewReader("not-actually-a-png"),
		ContentType: "image/png",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImageSubtypeParsing(t *testing.T) {
	cases := []struct {
		contentType string
		subtype     string
		ok          bool
	}{
		{"image/png", "png", true},
		{"IMAGE/JPEG", "jpeg", true},
		{"image/gif; charset=binary", "gif", true},
		{"application/pdf", "", false},
		{"image/", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		subtype, ok := imageSubtype(tc.contentType)
		if subtype != tc.subtype || ok != tc.ok {
			t.Errorf("imageSubtype(%q) = (%q, %v), want (%q, %v)", tc.contentType, subtype, ok, tc.subtype, tc.ok)
		}
	}
}
