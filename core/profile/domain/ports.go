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

package domain

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// ProfileReadStore defines the port for read operations on profiles.
//
// It is separated from ProfileWriteStore so implementations can route reads
// to replica databases and prepare read queries once for reuse. All methods
// are read-only.
type ProfileReadStore interface {
	// GetProfileByID retrieves a single profile by its unique identifier.
	// Returns ErrProfileNotFound if the profile doesn't exist.
	GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// GetAllProfiles returns every profile ordered by (created_at, id)
	// ascending, so paging over the result is stable.
	GetAllProfiles(ctx context.Context) ([]Profile, error)

	// ExistsByEmail reports whether any profile has the given email,
	// compared case-insensitively.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileWriteStore defines the port for write operations on profiles.
//
// All methods execute without an implicit transaction. To group operations
// atomically, use WithTx, which provides a ProfileWriteTx scoped to the
// transaction lifetime. Implementations are bound to the primary database
// connection and reuse prepared statements inside transactions via
// statement rebinding.
type ProfileWriteStore interface {
	// InsertProfile inserts a new profile and returns it with the
	// database-assigned timestamps. Email uniqueness is enforced by a
	// unique index; a violation surfaces as ErrDuplicateEmail.
	InsertProfile(ctx context.Context, params *CreateProfileParams) (*Profile, error)

	// UpdateProfile writes all mutable columns of the given profile and
	// refreshes updated_at. Returns ErrProfileNotFound if the row is gone
	// and ErrDuplicateEmail on an email collision.
	UpdateProfile(ctx context.Context, p *Profile) (*Profile, error)

	// DeleteProfileByID removes the row. The bool reports whether a row
	// was actually deleted.
	DeleteProfileByID(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx executes fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise committed. Do NOT
	// nest WithTx calls; ProfileWriteTx intentionally does not expose it.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx ProfileWriteTx) error) error

	// WithTimeoutTx is the same as WithTx but applies a context timeout
	// before starting the transaction.
	WithTimeoutTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, tx ProfileWriteTx) error) error
}

// ProfileWriteTx is a transaction-scoped version of ProfileWriteStore.
// An instance is only valid inside the WithTx callback that produced it and
// is not safe for use from other goroutines.
type ProfileWriteTx interface {
	InsertProfile(ctx context.Context, params *CreateProfileParams) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) (*Profile, error)
	DeleteProfileByID(ctx context.Context, id uuid.UUID) (bool, error)
}
