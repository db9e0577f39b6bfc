package rest

import (
	"log/slog"
	"net/http"

	"app/modules/api/serde"
)

// UpdateProfile applies a partial update to an existing profile.
// Returns 200 with the updated profile, 404 if not found, 400 for conflicts
// and bad data.
func (p *ProfileAPI) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := serde.ParseJsonBody(r.Body, &req); err != nil {
		slog.DebugContext(r.Context(), "malformed update body", slog.Any("error", err))
		serde.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	profile, err := p.app.UpdateProfile(r.Context(), id, req.toPatch())
	if err != nil {
		slog.DebugContext(r.Context(), "domain error", slog.Any("error", err))
		writeDomainError(w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, mapProfile(profile))
}
