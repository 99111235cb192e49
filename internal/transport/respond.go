package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// respondResult writes a service result envelope using the status the
// service classified. Infrastructure errors become opaque 500s so internal
// details never leak to clients.
func respondResult[T any](w http.ResponseWriter, result service.Result[T], err error) {
	if err != nil {
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithJSON(w, result.StatusCode, result)
}

// parseIDParam reads the {id} route parameter as a UUID. ok is false after an
// error response has already been written.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// respondBadRequest distinguishes tag validation failures from malformed JSON.
func respondBadRequest(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
