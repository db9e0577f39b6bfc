package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/oapi-codegen/nullable"
)

type (
	Application struct {
		reader ProfileReadStore
		writer ProfileWriteStore
	}

	// Profile is the domain model used by the application layer.
	// Optional attributes are nil when the column is NULL.
	Profile struct {
		ID        uuid.UUID
		Name      string
		Email     string
		Bio       *string
		AvatarURL *string
		Phone     *string
		Location  *string
		Website   *string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	CreateProfileParams struct {
		Name      string
		Email     string
		Bio       *string
		AvatarURL *string
		Phone     *string
		Location  *string
		Website   *string
	}

	// ProfilePatch carries partial update fields with three states each:
	// absent (not touched), explicit null (also not touched, mirroring the
	// merge behavior clients already rely on), or a value to set.
	ProfilePatch struct {
		Name      nullable.Nullable[string]
		Email     nullable.Nullable[string]
		Bio       nullable.Nullable[string]
		AvatarURL nullable.Nullable[string]
		Phone     nullable.Nullable[string]
		Location  nullable.Nullable[string]
		Website   nullable.Nullable[string]
	}

	// SearchFilters are combined with AND; nil filters are ignored.
	SearchFilters struct {
		Name     *string
		Email    *string
		Location *string
	}
)
