package domain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/oapi-codegen/nullable"
)

// fakeStore implements ProfileReadStore, ProfileWriteStore and
// ProfileWriteTx over an in-memory slice for application-layer tests.
type fakeStore struct {
	profiles []Profile
}

func (f *fakeStore) GetProfileByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			p := f.profiles[i]
			return &p, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (f *fakeStore) GetAllProfiles(_ context.Context) ([]Profile, error) {
	out := make([]Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, nil
}

func (f *fakeStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for i := range f.profiles {
		if strings.EqualFold(f.profiles[i].Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertProfile(_ context.Context, params *CreateProfileParams) (*Profile, error) {
	for i := range f.profiles {
		if strings.EqualFold(f.profiles[i].Email, params.Email) {
			return nil, ErrDuplicateEmail
		}
	}
	now := time.Now()
	p := Profile{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      params.Name,
		Email:     params.Email,
		Bio:       params.Bio,
		AvatarURL: params.AvatarURL,
		Phone:     params.Phone,
		Location:  params.Location,
		Website:   params.Website,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.profiles = append(f.profiles, p)
	return &p, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, p *Profile) (*Profile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID != p.ID && strings.EqualFold(f.profiles[i].Email, p.Email) {
			return nil, ErrDuplicateEmail
		}
	}
	for i := range f.profiles {
		if f.profiles[i].ID == p.ID {
			next := *p
			next.UpdatedAt = time.Now()
			f.profiles[i] = next
			return &next, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (f *fakeStore) DeleteProfileByID(_ context.Context, id uuid.UUID) (bool, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx ProfileWriteTx) error) error {
	return fn(ctx, f)
}

func (f *fakeStore) WithTimeoutTx(ctx context.Context, _ time.Duration, fn func(ctx context.Context, tx ProfileWriteTx) error) error {
	return fn(ctx, f)
}

func newTestApp() (*Application, *fakeStore) {
	store := &fakeStore{}
	return NewApp(store, store), store
}

func strp(s string) *string { return &s }

func TestCreateProfileNormalizesEmail(t *testing.T) {
	app, _ := newTestApp()

	p, err := app.CreateProfile(context.Background(), CreateProfileParams{
		Name:  "Jane Doe",
		Email: "  Jane.Doe@Example.COM ",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.Email != "jane.doe@example.com" {
		t.Fatalf("email not normalized: %q", p.Email)
	}
	if p.ID.IsNil() {
		t.Fatal("expected generated id")
	}
}

func TestCreateProfileTimestampsStartEqual(t *testing.T) {
	app, _ := newTestApp()

	p, err := app.CreateProfile(context.Background(), CreateProfileParams{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("fresh profile timestamps differ: created %v updated %v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestCreateProfileDuplicateEmailCaseInsensitive(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	if _, err := app.CreateProfile(ctx, CreateProfileParams{Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	_, err := app.CreateProfile(ctx, CreateProfileParams{Name: "Other Jane", Email: "JANE@example.com"})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreateProfilePhoneValidation(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	_, err := app.CreateProfile(ctx, CreateProfileParams{
		Name:  "Jane",
		Email: "jane@example.com",
		Phone: strp("123-456"),
	})
	if err != ErrInvalidData {
		t.Fatalf("short phone should be rejected, got %v", err)
	}

	if _, err := app.CreateProfile(ctx, CreateProfileParams{
		Name:  "Jane",
		Email: "jane@example.com",
		Phone: strp("+1 (555) 123-4567"),
	}); err != nil {
		t.Fatalf("formatted phone should pass: %v", err)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	app, _ := newTestApp()

	_, err := app.GetProfileByID(context.Background(), uuid.Must(uuid.NewV7()))
	if err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestListProfilesSkipLimit(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}
	for _, e := range emails {
		if _, err := app.CreateProfile(ctx, CreateProfileParams{Name: "User Name", Email: e}); err != nil {
			t.Fatalf("CreateProfile: %v", err)
		}
	}

	page, err := app.ListProfiles(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d", len(page))
	}
	if page[0].Email != "b@x.com" || page[1].Email != "c@x.com" {
		t.Fatalf("wrong page: %q %q", page[0].Email, page[1].Email)
	}

	empty, err := app.ListProfiles(ctx, 10, 2)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("skip beyond end should yield empty, got %d", len(empty))
	}

	if _, err := app.ListProfiles(ctx, -1, 2); err != ErrInvalidData {
		t.Fatalf("negative skip should be rejected, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	created, err := app.CreateProfile(ctx, CreateProfileParams{
		Name:  "Jane",
		Email: "jane@example.com",
		Bio:   strp("original bio"),
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	updated, err := app.UpdateProfile(ctx, created.ID, ProfilePatch{
		Name: nullable.NewNullableWithValue("Jane Smith"),
		Bio:  nullable.NewNullNullable[string](), // explicit null keeps the old value
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Jane Smith" {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.Bio == nil || *updated.Bio != "original bio" {
		t.Fatal("null patch field should not clear bio")
	}
	if updated.Email != "jane@example.com" {
		t.Fatalf("untouched email changed: %q", updated.Email)
	}
}

func TestUpdateProfileEmptyPatchRefreshesTimestamp(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	created, err := app.CreateProfile(ctx, CreateProfileParams{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	updated, err := app.UpdateProfile(ctx, created.ID, ProfilePatch{})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("empty patch should still refresh updated_at")
	}
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	if _, err := app.CreateProfile(ctx, CreateProfileParams{Name: "Jane", Email: "jane@example.com"}); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	other, err := app.CreateProfile(ctx, CreateProfileParams{Name: "John", Email: "john@example.com"})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	_, err = app.UpdateProfile(ctx, other.ID, ProfilePatch{
		Email: nullable.NewNullableWithValue("Jane@Example.com"),
	})
	if err != ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Re-submitting your own email in a different case is not a conflict.
	if _, err := app.UpdateProfile(ctx, other.ID, ProfilePatch{
		Email: nullable.NewNullableWithValue("JOHN@example.com"),
	}); err != nil {
		t.Fatalf("own email should not conflict: %v", err)
	}
}

func TestUpdateProfileNotFound(t *testing.T) {
	app, _ := newTestApp()

	_, err := app.UpdateProfile(context.Background(), uuid.Must(uuid.NewV7()), ProfilePatch{
		Name: nullable.NewNullableWithValue("Nobody"),
	})
	if err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDeleteProfile(t *testing.T) {
	app, store := newTestApp()
	ctx := context.Background()

	created, err := app.CreateProfile(ctx, CreateProfileParams{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if err := app.DeleteProfile(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if len(store.profiles) != 0 {
		t.Fatal("profile should be gone")
	}
	if err := app.DeleteProfile(ctx, created.ID); err != ErrProfileNotFound {
		t.Fatalf("second delete should be ErrProfileNotFound, got %v", err)
	}
}

func TestSearchProfiles(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	seed := []CreateProfileParams{
		{Name: "Jane Doe", Email: "jane@example.com", Location: strp("Berlin")},
		{Name: "John Doe", Email: "john@other.org", Location: strp("Hamburg")},
		{Name: "Janet Roe", Email: "janet@example.com"},
	}
	for _, params := range seed {
		if _, err := app.CreateProfile(ctx, params); err != nil {
			t.Fatalf("CreateProfile: %v", err)
		}
	}

	byName, err := app.SearchProfiles(ctx, SearchFilters{Name: strp("jan")})
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(byName) != 2 {
		t.Fatalf("name filter matched %d", len(byName))
	}

	combined, err := app.SearchProfiles(ctx, SearchFilters{Name: strp("doe"), Email: strp("example.com")})
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(combined) != 1 || combined[0].Name != "Jane Doe" {
		t.Fatalf("AND filters matched %d", len(combined))
	}

	// A location filter never matches profiles without a location.
	byLocation, err := app.SearchProfiles(ctx, SearchFilters{Location: strp("b")})
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(byLocation) != 2 {
		t.Fatalf("location filter matched %d", len(byLocation))
	}

	all, err := app.SearchProfiles(ctx, SearchFilters{})
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("no filters should return everything, got %d", len(all))
	}
}

func TestSearchProfilesIgnoresEmptyCriteria(t *testing.T) {
	app, _ := newTestApp()
	ctx := context.Background()

	seed := []CreateProfileParams{
		{Name: "Jane Doe", Email: "jane@example.com", Location: strp("Berlin")},
		{Name: "Janet Roe", Email: "janet@example.com"},
	}
	for _, params := range seed {
		if _, err := app.CreateProfile(ctx, params); err != nil {
			t.Fatalf("CreateProfile: %v", err)
		}
	}

	// An empty criterion is the same as no criterion, even for location
	// and even against profiles that have no location at all.
	got, err := app.SearchProfiles(ctx, SearchFilters{Location: strp("")})
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("empty location criterion should match everything, got %d", len(got))
	}

	got, err = app.SearchProfiles(ctx, SearchFilters{Name: strp(""), Email: strp(""), Location: strp("")})
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("all-empty criteria should match everything, got %d", len(got))
	}
}
