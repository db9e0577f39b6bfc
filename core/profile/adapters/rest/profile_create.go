// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"app/modules/api/serde"
)

// CreateProfile creates a new profile.
// Returns 201 with Location header on success, 400 for duplicates and bad data.
func (p *ProfileAPI) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := serde.ParseJsonBody(r.Body, &req); err != nil {
		slog.DebugContext(r.Context(), "malformed create body", slog.Any("error", err))
		serde.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	profile, err := p.app.CreateProfile(r.Context(), req.toParams())
	if err != nil {
		slog.DebugContext(r.Context(), "domain error", slog.Any("error", err))
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/profiles/%s", profile.ID))
	serde.WriteJSON(w, http.StatusCreated, mapProfile(profile))
}
