package rest

import (
	"errors"
	"net/http"

	"app/core/profile/domain"
	"app/modules/api/serde"
)

// errorResponse is the business-error body: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// writeDomainError maps a sentinel domain error onto the wire. Not-found is
// 404; conflicts and invalid data are client faults, 400. Anything else is
// an opaque 500 so internals never leak into the body.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		serde.WriteJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrProfileNotFound.Error()})
	case errors.Is(err, domain.ErrDuplicateEmail):
		serde.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrDuplicateEmail.Error()})
	case errors.Is(err, domain.ErrInvalidData):
		serde.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidData.Error()})
	default:
		serde.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "server error"})
	}
}
