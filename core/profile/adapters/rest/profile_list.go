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
	"net/http"
	"strconv"

	"app/core/profile/domain"
	"app/modules/api/serde"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// ListProfiles returns a page of profiles using skip/limit query parameters.
func (p *ProfileAPI) ListProfiles(w http.ResponseWriter, r *http.Request) {
	skip, ok := queryInt(w, r, "skip", defaultSkip)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", defaultLimit)
	if !ok {
		return
	}

	profiles, err := p.app.ListProfiles(r.Context(), skip, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, mapProfiles(profiles))
}

// SearchProfiles filters profiles by optional name/email/location query
// parameters, combined with AND.
func (p *ProfileAPI) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filters domain.SearchFilters
	if q.Has("name") {
		v := q.Get("name")
		filters.Name = &v
	}
	if q.Has("email") {
		v := q.Get("email")
		filters.Email = &v
	}
	if q.Has("location") {
		v := q.Get("location")
		filters.Location = &v
	}

	profiles, err := p.app.SearchProfiles(r.Context(), filters)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, mapProfiles(profiles))
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		serde.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name + " parameter"})
		return 0, false
	}
	return n, true
}
