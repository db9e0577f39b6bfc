package domain

import (
	"context"
	"log/slog"
	"strings"
)

// ListProfiles returns a page of profiles using skip/limit semantics over
// the full (created_at, id) ascending ordering.
func (app *Application) ListProfiles(ctx context.Context, skip, limit int) ([]Profile, error) {
	if skip < 0 || limit < 0 {
		return nil, ErrInvalidData
	}

	all, err := app.reader.GetAllProfiles(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
		return nil, ErrUnhandled
	}

	if skip >= len(all) {
		return []Profile{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// SearchProfiles filters the full profile set with case-insensitive
// substring matching. Filters combine with AND; absent and empty-string
// criteria are skipped, and a location criterion only matches profiles
// that have a location set.
func (app *Application) SearchProfiles(ctx context.Context, filters SearchFilters) ([]Profile, error) {
	all, err := app.reader.GetAllProfiles(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "unexpected error", slog.Any("error", err))
		return nil, ErrUnhandled
	}

	matched := make([]Profile, 0, len(all))
	for _, p := range all {
		if needle, ok := criterion(filters.Name); ok && !containsFold(p.Name, needle) {
			continue
		}
		if needle, ok := criterion(filters.Email); ok && !containsFold(p.Email, needle) {
			continue
		}
		if needle, ok := criterion(filters.Location); ok {
			if p.Location == nil || !containsFold(*p.Location, needle) {
				continue
			}
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// criterion reports whether a filter carries a usable value. Empty strings
// count as not provided.
func criterion(f *string) (string, bool) {
	if f == nil || *f == "" {
		return "", false
	}
	return *f, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
