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
	"time"

	"app/core/profile/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/oapi-codegen/nullable"
	"github.com/oapi-codegen/runtime/types"
)

// localDateTime serializes as ISO-8601 local date-time without a timezone
// suffix ("2006-01-02T15:04:05"), the shape existing API clients expect.
type localDateTime time.Time

const localDateTimeLayout = "2006-01-02T15:04:05"

func (t localDateTime) MarshalJSON() ([]byte, error) {
	return []byte(time.Time(t).Format(`"` + localDateTimeLayout + `"`)), nil
}

func (t *localDateTime) UnmarshalJSON(b []byte) error {
	parsed, err := time.Parse(`"`+localDateTimeLayout+`"`, string(b))
	if err != nil {
		return fmt.Errorf("parse local date-time: %w", err)
	}
	*t = localDateTime(parsed)
	return nil
}

type (
	CreateProfileRequest struct {
		Name      string      `json:"name"`
		Email     types.Email `json:"email"`
		Bio       *string     `json:"bio,omitempty"`
		AvatarURL *string     `json:"avatarUrl,omitempty"`
		Phone     *string     `json:"phone,omitempty"`
		Location  *string     `json:"location,omitempty"`
		Website   *string     `json:"website,omitempty"`
	}

	// UpdateProfileRequest distinguishes absent fields from explicit nulls;
	// both leave the stored value untouched, only present values apply.
	UpdateProfileRequest struct {
		Name      nullable.Nullable[string] `json:"name,omitempty"`
		Email     nullable.Nullable[string] `json:"email,omitempty"`
		Bio       nullable.Nullable[string] `json:"bio,omitempty"`
		AvatarURL nullable.Nullable[string] `json:"avatarUrl,omitempty"`
		Phone     nullable.Nullable[string] `json:"phone,omitempty"`
		Location  nullable.Nullable[string] `json:"location,omitempty"`
		Website   nullable.Nullable[string] `json:"website,omitempty"`
	}

	ProfileResponse struct {
		ID        uuid.UUID     `json:"id"`
		Name      string        `json:"name"`
		Email     string        `json:"email"`
		Bio       *string       `json:"bio"`
		AvatarURL *string       `json:"avatarUrl"`
		Phone     *string       `json:"phone"`
		Location  *string       `json:"location"`
		Website   *string       `json:"website"`
		CreatedAt localDateTime `json:"createdAt"`
		UpdatedAt localDateTime `json:"updatedAt"`
	}
)

func (r *CreateProfileRequest) toParams() domain.CreateProfileParams {
	return domain.CreateProfileParams{
		Name:      r.Name,
		Email:     string(r.Email),
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		Phone:     r.Phone,
		Location:  r.Location,
		Website:   r.Website,
	}
}

func (r *UpdateProfileRequest) toPatch() domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:      r.Name,
		Email:     r.Email,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		Phone:     r.Phone,
		Location:  r.Location,
		Website:   r.Website,
	}
}

// mapProfile converts a domain profile to the API response model.
func mapProfile(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Phone:     p.Phone,
		Location:  p.Location,
		Website:   p.Website,
		CreatedAt: localDateTime(p.CreatedAt),
		UpdatedAt: localDateTime(p.UpdatedAt),
	}
}

func mapProfiles(profiles []domain.Profile) []ProfileResponse {
	result := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, mapProfile(&profiles[i]))
	}
	return result
}
