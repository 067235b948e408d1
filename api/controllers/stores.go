package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storescouthq/storescout-backend/api/responses"
	"github.com/storescouthq/storescout-backend/api/validators"
	"github.com/storescouthq/storescout-backend/internal/photos"
	"github.com/storescouthq/storescout-backend/internal/reviews"
	"github.com/storescouthq/storescout-backend/internal/stores"
	"github.com/storescouthq/storescout-backend/pkg/config"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
	"github.com/storescouthq/storescout-backend/pkg/logger"
)

type storeCreateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Address     string   `json:"address,omitempty"`
	Lat         float64  `json:"lat,omitempty"`
	Lng         float64  `json:"lng,omitempty"`
}

func (r storeCreateRequest) toInput() stores.CreateStoreInput {
	return stores.CreateStoreInput{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		Address:     r.Address,
		Lat:         r.Lat,
		Lng:         r.Lng,
	}
}

type storeUpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
}

func (r storeUpdateRequest) toInput() stores.UpdateStoreInput {
	return stores.UpdateStoreInput{
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
		Address:     r.Address,
		Lat:         r.Lat,
		Lng:         r.Lng,
	}
}

// formTags gathers tags submitted either as repeated fields or a single
// comma-separated value.
func formTags(values []string) []string {
	tags := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if tag := strings.TrimSpace(part); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func formFloat(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.ParseFloat(trimmed, 64)
}

func storeCreateFromForm(r *http.Request) (stores.CreateStoreInput, error) {
	lat, err := formFloat(r.FormValue("lat"))
	if err != nil {
		return stores.CreateStoreInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid latitude")
	}
	lng, err := formFloat(r.FormValue("lng"))
	if err != nil {
		return stores.CreateStoreInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid longitude")
	}

	input := stores.CreateStoreInput{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Tags:    formTags(r.Form["tags"]),
		Address: strings.TrimSpace(r.FormValue("address")),
		Lat:     lat,
		Lng:     lng,
	}
	if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
		input.Description = &desc
	}
	return input, nil
}

func storeUpdateFromForm(r *http.Request) (stores.UpdateStoreInput, error) {
	input := stores.UpdateStoreInput{}

	if _, ok := r.Form["name"]; ok {
		name := strings.TrimSpace(r.FormValue("name"))
		input.Name = &name
	}
	if _, ok := r.Form["description"]; ok {
		desc := strings.TrimSpace(r.FormValue("description"))
		input.Description = &desc
	}
	if _, ok := r.Form["tags"]; ok {
		tags := formTags(r.Form["tags"])
		input.Tags = &tags
	}
	if _, ok := r.Form["address"]; ok {
		address := strings.TrimSpace(r.FormValue("address"))
		input.Address = &address
	}
	if _, ok := r.Form["lat"]; ok {
		lat, err := formFloat(r.FormValue("lat"))
		if err != nil {
			return stores.UpdateStoreInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid latitude")
		}
		input.Lat = &lat
	}
	if _, ok := r.Form["lng"]; ok {
		lng, err := formFloat(r.FormValue("lng"))
		if err != nil {
			return stores.UpdateStoreInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid longitude")
		}
		input.Lng = &lng
	}
	return input, nil
}

func processFormPhoto(r *http.Request, photoSvc photos.Service) (*string, error) {
	upload, file, err := photoFromRequest(r)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, nil
	}
	defer file.Close()
	if photoSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable")
	}
	path, err := photoSvc.Process(r.Context(), upload)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// StoreCreate registers a new store owned by the caller.
func StoreCreate(svc stores.Service, photoSvc photos.Service, cfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input stores.CreateStoreInput
		var photoPath *string

		if isMultipart(r) {
			if err := parseMultipart(r, cfg); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input, err = storeCreateFromForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			photoPath, err = processFormPhoto(r, photoSvc)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else {
			var body storeCreateRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = body.toInput()
		}

		store, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if photoPath != nil {
			store, err = svc.Update(r.Context(), userID, store.ID, stores.UpdateStoreInput{Photo: photoPath})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// StoreUpdate edits a store the caller owns.
func StoreUpdate(svc stores.Service, photoSvc photos.Service, cfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		var input stores.UpdateStoreInput

		if isMultipart(r) {
			if err := parseMultipart(r, cfg); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input, err = storeUpdateFromForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Photo, err = processFormPhoto(r, photoSvc)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else {
			var body storeUpdateRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = body.toInput()
		}

		store, err := svc.Update(r.Context(), userID, storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// storeDetailResponse pairs a store with its reviews for the detail page.
type storeDetailResponse struct {
	Store   *stores.StoreDTO    `json:"store"`
	Reviews []reviews.ReviewDTO `json:"reviews"`
}

// StoreBySlug returns a store profile and its reviews.
func StoreBySlug(svc stores.Service, reviewSvc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		store, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail := storeDetailResponse{Store: store, Reviews: []reviews.ReviewDTO{}}
		if reviewSvc != nil {
			items, err := reviewSvc.ListByStore(r.Context(), store.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			detail.Reviews = items
		}

		responses.WriteSuccess(w, detail)
	}
}

// StoreList returns a cursor-paginated page of stores, optionally filtered by tag.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		query := r.URL.Query()
		limit := 0
		if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			limit = parsed
		}

		page, err := svc.List(r.Context(), query.Get("tag"), query.Get("cursor"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// StoreSearch runs a full-text search over store names and descriptions.
func StoreSearch(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// StoreNear finds stores within walking distance of a coordinate.
func StoreNear(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		query := r.URL.Query()
		lat, err := strconv.ParseFloat(strings.TrimSpace(query.Get("lat")), 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid latitude"))
			return
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(query.Get("lng")), 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid longitude"))
			return
		}

		items, err := svc.Near(r.Context(), lat, lng)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// StoresMine lists the stores owned by the caller.
func StoresMine(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListByAuthor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}
