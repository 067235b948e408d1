package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/storescouthq/storescout-backend/internal/photos"
	"github.com/storescouthq/storescout-backend/pkg/config"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

const photoFormField = "photo"

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func parseMultipart(r *http.Request, cfg config.UploadsConfig) error {
	maxMemory := int64(cfg.MaxUploadMB) << 20
	if maxMemory <= 0 {
		maxMemory = 20 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// photoFromRequest extracts the optional photo part from a parsed multipart
// form. The caller owns the returned closer.
func photoFromRequest(r *http.Request) (*photos.Upload, multipart.File, error) {
	file, header, err := r.FormFile(photoFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read photo upload")
	}

	return &photos.Upload{
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
	}, file, nil
}
