package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/storescouthq/storescout-backend/api/middleware"
	"github.com/storescouthq/storescout-backend/api/responses"
	"github.com/storescouthq/storescout-backend/api/validators"
	"github.com/storescouthq/storescout-backend/internal/photos"
	"github.com/storescouthq/storescout-backend/internal/users"
	"github.com/storescouthq/storescout-backend/pkg/config"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
	"github.com/storescouthq/storescout-backend/pkg/logger"
)

func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

// AccountMe returns the authenticated user's profile.
func AccountMe(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

type accountUpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// AccountUpdate edits the caller's name and email, and swaps the avatar when a
// photo part is supplied.
func AccountUpdate(svc users.Service, photoSvc photos.Service, cfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := users.UpdateAccountInput{}

		if isMultipart(r) {
			if err := parseMultipart(r, cfg); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Name = strings.TrimSpace(r.FormValue("name"))
			input.Email = strings.TrimSpace(r.FormValue("email"))

			// Form fields skip the JSON decoder, so run the same rules here.
			if err := validators.ValidateStruct(&accountUpdateRequest{Name: input.Name, Email: input.Email}); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			upload, file, err := photoFromRequest(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if upload != nil {
				defer file.Close()
				if photoSvc == nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
					return
				}
				path, err := photoSvc.Process(r.Context(), upload)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				input.Photo = &path
			}
		} else {
			var body accountUpdateRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Name = body.Name
			input.Email = body.Email
		}

		user, err := svc.UpdateAccount(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}
