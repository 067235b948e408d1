package controllers

import (
	"net/http"

	"github.com/storescouthq/storescout-backend/api/responses"
	"github.com/storescouthq/storescout-backend/internal/rankings"
	pkgerrors "github.com/storescouthq/storescout-backend/pkg/errors"
	"github.com/storescouthq/storescout-backend/pkg/logger"
)

// TagsList returns the tag frequency counts, echoing back the active filter.
func TagsList(svc rankings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rankings service unavailable"))
			return
		}

		page, err := svc.Tags(r.Context(), r.URL.Query().Get("tag"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// TopStores returns the highest rated stores with at least two reviews.
func TopStores(svc rankings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rankings service unavailable"))
			return
		}

		items, err := svc.TopStores(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}
