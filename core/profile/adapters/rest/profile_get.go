// Copyright 2025 Nguyen Nhat Nguyen
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
	"net/http"

	"app/modules/api/serde"

	"github.com/gofrs/uuid/v5"
)

// pathID parses the {id} path segment. A malformed id is reported as a
// client fault without touching the service layer.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		serde.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid profile id"})
		return uuid.Nil, false
	}
	return id, true
}

// GetProfileByID retrieves a single profile by its UUID.
// Returns 200 on success, 404 if not found.
func (p *ProfileAPI) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	profile, err := p.app.GetProfileByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, mapProfile(profile))
}
