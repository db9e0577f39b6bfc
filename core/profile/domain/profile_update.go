package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/oapi-codegen/nullable"
)

// UpdateProfile applies a partial update. Fields absent from the patch keep
// their current value, as do fields sent as explicit JSON null. updated_at
// is refreshed even when the patch changes nothing.
func (app *Application) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*Profile, error) {
	if id.IsNil() {
		return nil, ErrInvalidData
	}

	current, err := app.reader.GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
		return nil, ErrUnhandled
	}

	next := *current

	if v, ok := patchValue(patch.Name); ok {
		next.Name = v
	}
	if v, ok := patchValue(patch.Bio); ok {
		next.Bio = &v
	}
	if v, ok := patchValue(patch.AvatarURL); ok {
		next.AvatarURL = &v
	}
	if v, ok := patchValue(patch.Phone); ok {
		if v != "" && !validPhone(v) {
			slog.ErrorContext(ctx, "invalid phone number", slog.Any("phone", v))
			return nil, ErrInvalidData
		}
		next.Phone = &v
	}
	if v, ok := patchValue(patch.Location); ok {
		next.Location = &v
	}
	if v, ok := patchValue(patch.Website); ok {
		next.Website = &v
	}

	if v, ok := patchValue(patch.Email); ok {
		v = normalizeEmail(v)
		if v != normalizeEmail(current.Email) {
			exists, err := app.reader.ExistsByEmail(ctx, v)
			if err != nil {
				slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
				return nil, ErrUnhandled
			}
			if exists {
				slog.ErrorContext(ctx, "duplicate email", slog.Any("email", v))
				return nil, ErrDuplicateEmail
			}
		}
		next.Email = v
	}

	var updated *Profile
	err = app.writer.WithTimeoutTx(ctx, 1*time.Second, func(ctx context.Context, tx ProfileWriteTx) error {
		p, err := tx.UpdateProfile(ctx, &next)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err == nil {
		return updated, nil
	}
	if errors.Is(err, ErrProfileNotFound) {
		return nil, ErrProfileNotFound
	}
	if errors.Is(err, ErrDuplicateEmail) {
		return nil, ErrDuplicateEmail
	}
	slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
	return nil, ErrUnhandled
}

// patchValue unwraps a patch field. Only a specified non-null field yields
// a value to apply.
func patchValue(n nullable.Nullable[string]) (string, bool) {
	if !n.IsSpecified() || n.IsNull() {
		return "", false
	}
	return n.MustGet(), true
}
