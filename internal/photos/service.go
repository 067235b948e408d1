package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/storescouthq/storescout-backend/pkg/config"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
	"github.com/storescouthq/storescout-backend/pkg/storage"
)

// Upload describes an incoming file as the HTTP layer received it.
type Upload struct {
	Reader      io.Reader
	ContentType string
}

// Service normalizes uploaded photos before they are persisted.
type Service interface {
	// Process validates, resizes, and stores the upload, returning the
	// public path of the stored file. A nil upload returns an empty path
	// so callers can treat the photo as optional.
	Process(ctx context.Context, upload *Upload) (string, error)
}

type service struct {
	store       storage.Store
	resizeWidth int
}

// NewService builds the photo intake service.
func NewService(store storage.Store, cfg config.UploadsConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	width := cfg.ResizeWidthPX
	if width <= 0 {
		width = 300
	}
	return &service{store: store, resizeWidth: width}, nil
}

func (s *service) Process(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", nil
	}

	subtype, ok := imageSubtype(upload.ContentType)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnsupportedMedia, "that filetype isn't allowed")
	}

	filename := uuid.NewString() + "." + subtype

	format, err := imaging.FormatFromExtension(subtype)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeUnsupportedMedia, "that filetype isn't allowed")
	}

	img, err := imaging.Decode(upload.Reader)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode image")
	}

	resized := imaging.Resize(img, s.resizeWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode image")
	}

	publicPath, err := s.store.Save(ctx, filename, &buf)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store photo")
	}
	return publicPath, nil
}

// imageSubtype extracts the subtype from an image/* content type. Anything
// else is rejected before the bytes are even looked at.
func imageSubtype(contentType string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if mediatype, _, found := strings.Cut(normalized, ";"); found {
		normalized = strings.TrimSpace(mediatype)
	}
	subtype, ok := strings.CutPrefix(normalized, "image/")
	if !ok || subtype == "" {
		return "", false
	}
	return subtype, true
}
