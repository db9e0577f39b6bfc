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

package services

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"app/core/profile/adapters/rest"
	"app/modules/middleware"
	"app/modules/middleware/problem"
)

// ProfileAPIService exposes the profile REST API as a registrable service
// with OpenAPI request validation in front of every route.
type ProfileAPIService struct {
	api      *rest.ProfileAPI
	specFS   fs.FS
	specPath string
}

func NewProfileAPIService(api *rest.ProfileAPI, specFS fs.FS, specPath string) *ProfileAPIService {
	return &ProfileAPIService{
		api:      api,
		specFS:   specFS,
		specPath: specPath,
	}
}

func (s *ProfileAPIService) Register(mux *http.ServeMux) {
	s.api.Register(mux)
}

func (s *ProfileAPIService) Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.OpenAPIValidation(
			s.specFS,
			s.specPath,
			handleValidationError,
			handleSpecLoadError,
		),
	}
}

func handleValidationError(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, statusCode int) {
	var opts []problem.Option
	for _, fieldErr := range middleware.ExtractValidationErrors(err) {
		opts = append(opts, problem.WithInvalidParam(fieldErr.Field, fieldErr.Reason))
	}

	slog.DebugContext(ctx, "request failed validation",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", statusCode),
	)

	// The validator also reports requests that miss the documented surface
	// entirely; those keep their routing status instead of 400.
	switch statusCode {
	case http.StatusNotFound:
		problem.Write(w, problem.NotFound("no such resource"))
	case http.StatusMethodNotAllowed:
		problem.Write(w, problem.MethodNotAllowed("method not allowed"))
	default:
		problem.Write(w, problem.BadRequest("request validation failed", opts...))
	}
}

func handleSpecLoadError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("openapi document failed to load", slog.Any("error", err))
	problem.Write(w, problem.Internal("internal server error"))
}
