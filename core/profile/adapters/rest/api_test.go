package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/core/profile/domain"

	"github.com/gofrs/uuid/v5"
)

// memStore implements the profile ports over a slice for handler tests.
type memStore struct {
	profiles []domain.Profile
}

func (m *memStore) GetProfileByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			p := m.profiles[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memStore) GetAllProfiles(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, len(m.profiles))
	copy(out, m.profiles)
	return out, nil
}

func (m *memStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for i := range m.profiles {
		if strings.EqualFold(m.profiles[i].Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertProfile(_ context.Context, params *domain.CreateProfileParams) (*domain.Profile, error) {
	for i := range m.profiles {
		if strings.EqualFold(m.profiles[i].Email, params.Email) {
			return nil, domain.ErrDuplicateEmail
		}
	}
	now := time.Now()
	p := domain.Profile{
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
	m.profiles = append(m.profiles, p)
	return &p, nil
}

func (m *memStore) UpdateProfile(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	for i := range m.profiles {
		if m.profiles[i].ID == p.ID {
			next := *p
			next.UpdatedAt = time.Now()
			m.profiles[i] = next
			return &next, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memStore) DeleteProfileByID(_ context.Context, id uuid.UUID) (bool, error) {
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx domain.ProfileWriteTx) error) error {
	return fn(ctx, m)
}

func (m *memStore) WithTimeoutTx(ctx context.Context, _ time.Duration, fn func(ctx context.Context, tx domain.ProfileWriteTx) error) error {
	return fn(ctx, m)
}

func newTestMux() (*http.ServeMux, *memStore) {
	store := &memStore{}
	api := NewProfileService(store, store)
	mux := http.NewServeMux()
	api.Register(mux)
	return mux, store
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateProfileEndpoint(t *testing.T) {
	mux, _ := newTestMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/profiles", map[string]any{
		"name":  "Jane Doe",
		"email": "Jane@Example.com",
		"bio":   "hello",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Email != "jane@example.com" {
		t.Fatalf("email not normalized on the wire: %q", resp.Email)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/profiles/"+resp.ID.String() {
		t.Fatalf("location = %q", loc)
	}

	// Timestamps must be local date-time without timezone suffix.
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	created, _ := raw["createdAt"].(string)
	if strings.ContainsAny(created, "Z+") || len(created) != len(localDateTimeLayout) {
		t.Fatalf("createdAt wire format = %q", created)
	}
	if updated, _ := raw["updatedAt"].(string); updated != created {
		t.Fatalf("fresh profile timestamps differ on the wire: created %q updated %q", created, updated)
	}
}

func TestCreateProfileDuplicateEndpoint(t *testing.T) {
	mux, _ := newTestMux()

	first := doJSON(t, mux, http.MethodPost, "/api/profiles", map[string]any{
		"name": "Jane", "email": "jane@example.com",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("first create: %d", first.Code)
	}

	dup := doJSON(t, mux, http.MethodPost, "/api/profiles", map[string]any{
		"name": "Other", "email": "JANE@example.com",
	})
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d", dup.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(dup.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "email already exists" {
		t.Fatalf("error message = %q", body.Error)
	}
}

func TestCreateProfileRejectsUnknownFields(t *testing.T) {
	mux, _ := newTestMux()

	rec := doJSON(t, mux, http.MethodPost, "/api/profiles", map[string]any{
		"name": "Jane", "email": "jane@example.com", "nickname": "jd",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "malformed request body" {
		t.Fatalf("error message = %q", body.Error)
	}
}

func TestGetProfileEndpoint(t *testing.T) {
	mux, store := newTestMux()

	created, _ := store.InsertProfile(context.Background(), &domain.CreateProfileParams{
		Name: "Jane", Email: "jane@example.com",
	})

	rec := doJSON(t, mux, http.MethodGet, "/api/profiles/"+created.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	missing := doJSON(t, mux, http.MethodGet, "/api/profiles/"+uuid.Must(uuid.NewV7()).String(), nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d", missing.Code)
	}

	bad := doJSON(t, mux, http.MethodGet, "/api/profiles/not-a-uuid", nil)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", bad.Code)
	}
}

func TestListProfilesEndpoint(t *testing.T) {
	mux, store := newTestMux()
	ctx := context.Background()

	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		store.InsertProfile(ctx, &domain.CreateProfileParams{Name: "User Name", Email: e})
	}

	rec := doJSON(t, mux, http.MethodGet, "/api/profiles?skip=1&limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var page []ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page) != 1 || page[0].Email != "b@x.com" {
		t.Fatalf("unexpected page: %+v", page)
	}

	bad := doJSON(t, mux, http.MethodGet, "/api/profiles?skip=-1", nil)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("negative skip status = %d", bad.Code)
	}
}

func TestSearchProfilesEndpoint(t *testing.T) {
	mux, store := newTestMux()
	ctx := context.Background()

	loc := "Berlin"
	store.InsertProfile(ctx, &domain.CreateProfileParams{Name: "Jane Doe", Email: "jane@example.com", Location: &loc})
	store.InsertProfile(ctx, &domain.CreateProfileParams{Name: "John Roe", Email: "john@other.org"})

	rec := doJSON(t, mux, http.MethodGet, "/api/profiles/search?name=doe&location=ber", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var hits []ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Jane Doe" {
		t.Fatalf("unexpected hits: %+v", hits)
	}

	// Empty query values are not criteria; a bare location= must not
	// exclude profiles that have no location.
	rec = doJSON(t, mux, http.MethodGet, "/api/profiles/search?location=", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	hits = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("empty location criterion should match everything, got %d", len(hits))
	}
}

func TestUpdateProfileEndpoint(t *testing.T) {
	mux, store := newTestMux()

	bio := "old bio"
	created, _ := store.InsertProfile(context.Background(), &domain.CreateProfileParams{
		Name: "Jane", Email: "jane@example.com", Bio: &bio,
	})

	rec := doJSON(t, mux, http.MethodPut, "/api/profiles/"+created.ID.String(), map[string]any{
		"name": "Jane Smith",
		"bio":  nil, // explicit null leaves the stored value alone
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "Jane Smith" {
		t.Fatalf("name = %q", resp.Name)
	}
	if resp.Bio == nil || *resp.Bio != "old bio" {
		t.Fatal("explicit null should not clear bio")
	}

	missing := doJSON(t, mux, http.MethodPut, "/api/profiles/"+uuid.Must(uuid.NewV7()).String(), map[string]any{
		"name": "Nobody",
	})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d", missing.Code)
	}
}

func TestDeleteProfileEndpoint(t *testing.T) {
	mux, store := newTestMux()

	created, _ := store.InsertProfile(context.Background(), &domain.CreateProfileParams{
		Name: "Jane", Email: "jane@example.com",
	})

	rec := doJSON(t, mux, http.MethodDelete, "/api/profiles/"+created.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	again := doJSON(t, mux, http.MethodDelete, "/api/profiles/"+created.ID.String(), nil)
	if again.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", again.Code)
	}
}

func TestHealthzEndpoint(t *testing.T) {
	mux, _ := newTestMux()

	rec := doJSON(t, mux, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}
