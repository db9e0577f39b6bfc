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
	"errors"
	"log/slog"
)

func (app *Application) CreateProfile(ctx context.Context, params CreateProfileParams) (*Profile, error) {
	if len(params.Name) == 0 || len(params.Email) == 0 {
		slog.ErrorContext(ctx, "invalid profile data", slog.Any("name", params.Name))
		return nil, ErrInvalidData
	}
	if params.Phone != nil && *params.Phone != "" && !validPhone(*params.Phone) {
		slog.ErrorContext(ctx, "invalid phone number", slog.Any("phone", *params.Phone))
		return nil, ErrInvalidData
	}

	params.Email = normalizeEmail(params.Email)

	// Advisory pre-check for a friendlier error; the unique index on
	// lower(email) remains the authority under concurrent inserts.
	exists, err := app.reader.ExistsByEmail(ctx, params.Email)
	if err != nil {
		slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
		return nil, ErrUnhandled
	}
	if exists {
		slog.ErrorContext(ctx, "duplicate email", slog.Any("email", params.Email))
		return nil, ErrDuplicateEmail
	}

	var created *Profile
	err = app.writer.WithTx(ctx, func(ctx context.Context, tx ProfileWriteTx) error {
		p, err := tx.InsertProfile(ctx, &params)
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err == nil {
		slog.DebugContext(ctx, "created profile", slog.Any("id", created.ID))
		return created, nil
	}
	if errors.Is(err, ErrDuplicateEmail) {
		slog.ErrorContext(ctx, "duplicate email", slog.Any("email", params.Email))
		return nil, ErrDuplicateEmail
	}

	slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
	return nil, ErrUnhandled
}
