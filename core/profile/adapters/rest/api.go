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

	"app/core/profile/domain"
)

// ProfileAPI implements the HTTP API handlers for profile operations.
// It acts as the REST adapter in the hexagonal architecture, translating
// HTTP requests into domain operations.
type ProfileAPI struct {
	app *domain.Application
}

// NewProfileService creates a new ProfileAPI instance with all dependencies.
func NewProfileService(reader domain.ProfileReadStore, writer domain.ProfileWriteStore) *ProfileAPI {
	return &ProfileAPI{
		app: domain.NewApp(reader, writer),
	}
}

// Register mounts all profile routes on the mux using method patterns.
// The literal "search" segment wins over the {id} wildcard because ServeMux
// routes to the more specific pattern.
func (p *ProfileAPI) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/profiles", p.ListProfiles)
	mux.HandleFunc("GET /api/profiles/search", p.SearchProfiles)
	mux.HandleFunc("GET /api/profiles/{id}", p.GetProfileByID)
	mux.HandleFunc("POST /api/profiles", p.CreateProfile)
	mux.HandleFunc("PUT /api/profiles/{id}", p.UpdateProfile)
	mux.HandleFunc("DELETE /api/profiles/{id}", p.DeleteProfile)
	mux.HandleFunc("GET /healthz", p.Healthz)
}
