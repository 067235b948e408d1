package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/storescouthq/storescout-backend/internal/users"
	"github.com/storescouthq/storescout-backend/pkg/config"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
)

type stubAccountService struct {
	user        *users.UserDTO
	err         error
	updateInput *users.UpdateAccountInput
}

func (s *stubAccountService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubAccountService) UpdateAccount(ctx context.Context, userID uuid.UUID, input users.UpdateAccountInput) (*users.UserDTO, error) {
	s.updateInput = &input
	return s.user, s.err
}

func accountForm(t *testing.T, name, email string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("name", name); err != nil {
		t.Fatalf("write name field: %v", err)
	}
	if err := writer.WriteField("email", email); err != nil {
		t.Fatalf("write email field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestAccountUpdateMultipart(t *testing.T) {
	userID := uuid.New()
	svc := &stubAccountService{user: &users.UserDTO{ID: userID, Name: "Jess", Email: "jess@example.com"}}
	handler := AccountUpdate(svc, &stubPhotoService{}, config.UploadsConfig{}, nil)

	body, contentType := accountForm(t, "Jess", "jess@example.com")
	req := httptest.NewRequest(http.MethodPut, "/api/v1/account", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, authedRequest(req, userID))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updateInput == nil {
		t.Fatal("expected account update to reach the service")
	}
	if svc.updateInput.Email != "jess@example.com" || svc.updateInput.Name != "Jess" {
		t.Fatalf("unexpected input %+v", svc.updateInput)
	}
	if svc.updateInput.Photo != nil {
		t.Fatal("photo should stay untouched when no file is uploaded")
	}
}

func TestAccountUpdateMultipartRejectsMalformedEmail(t *testing.T) {
	svc := &stubAccountService{}
	handler := AccountUpdate(svc, &stubPhotoService{}, config.UploadsConfig{}, nil)

	body, contentType := accountForm(t, "Jess", "foo@")
	req := httptest.NewRequest(http.MethodPut, "/api/v1/account", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, authedRequest(req, uuid.New()))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.updateInput != nil {
		t.Fatalf("malformed email must not reach the service, got %+v", svc.updateInput)
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected error code %s", envelope.Error.Code)
	}
	if envelope.Error.Details["email"] != "must be a valid email" {
		t.Fatalf("expected email field message, got %v", envelope.Error.Details)
	}
}

func TestAccountUpdateMultipartRequiresName(t *testing.T) {
	svc := &stubAccountService{}
	handler := AccountUpdate(svc, &stubPhotoService{}, config.UploadsConfig{}, nil)

	body, contentType := accountForm(t, "", "jess@example.com")
	req := httptest.NewRequest(http.MethodPut, "/api/v1/account", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, authedRequest(req, uuid.New()))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.updateInput != nil {
		t.Fatal("empty name must not reach the service")
	}
}
