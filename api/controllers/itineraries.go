package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyageyou/voyage-backend/api/responses"
	"github.com/voyageyou/voyage-backend/api/validators"
	itinerarysvc "github.com/voyageyou/voyage-backend/internal/itinerary"
	"github.com/voyageyou/voyage-backend/pkg/logger"
	"github.com/voyageyou/voyage-backend/pkg/types"
)

// StageItinerary accepts a planned trip from the planning flow and stages it
// for checkout. The response carries the id the client starts a session with.
func StageItinerary(svc itinerarysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.Itinerary
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		staged, err := svc.Put(r.Context(), &payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, staged)
	}
}

func GetItinerary(svc itinerarysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		it, err := svc.Get(r.Context(), chi.URLParam(r, "itineraryID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, it)
	}
}

func ClearItinerary(svc itinerarysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), chi.URLParam(r, "itineraryID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
