package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foundation-backend/internal/config"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

type memStore struct {
	users    map[string]*models.User
	artists  []models.ArtistCreate
	events   []models.EventCreate
	nextID   int64
	failGet  error
	failLock error
	locks    int
	// racer занимает email между чтением и вставкой
	racer *models.User
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}}
}

func (m *memStore) LockBootstrap(context.Context) error {
	m.locks++
	return m.failLock
}

func (m *memStore) CreateUserIfAbsent(_ context.Context, u models.User) (*models.User, bool, error) {
	if m.racer != nil {
		m.users[m.racer.Email] = m.racer
		m.racer = nil
	}
	if _, ok := m.users[u.Email]; ok {
		return nil, false, nil
	}
	m.nextID++
	u.ID = m.nextID
	m.users[u.Email] = &u
	return &u, true, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	u, ok := m.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (m *memStore) CountArtists(context.Context) (int64, error) { return int64(len(m.artists)), nil }

func (m *memStore) CreateArtist(_ context.Context, in models.ArtistCreate) (*models.Artist, error) {
	m.artists = append(m.artists, in)
	return &models.Artist{ID: int64(len(m.artists)), Name: in.Name}, nil
}

func (m *memStore) CountEvents(context.Context) (int64, error) { return int64(len(m.events)), nil }

func (m *memStore) CreateEvent(_ context.Context, in models.EventCreate) (*models.Event, error) {
	m.events = append(m.events, in)
	return &models.Event{ID: int64(len(m.events)), Title: in.Title}, nil
}

type plainHasher struct{}

func (plainHasher) GetHash(pw string) (string, error) { return "hashed:" + pw, nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminConfig() config.Admin {
	return config.Admin{
		AdminEmail:     " Admin@HipHopFoundation.org ",
		AdminPassword:  "s3cret",
		AdminFullName:  "Admin User",
		SeedSampleData: true,
	}
}

func TestRun_FreshDatabase(t *testing.T) {
	store := newMemStore()

	require.NoError(t, Run(context.Background(), testLogger(), adminConfig(), store, plainHasher{}))

	admin, ok := store.users["admin@hiphopfoundation.org"]
	require.True(t, ok)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "hashed:s3cret", admin.PasswordHash)
	assert.Equal(t, "Admin User", admin.FullName)

	require.Len(t, store.artists, 3)
	assert.Equal(t, "DJ Khaled", store.artists[0].Name)
	assert.Equal(t, "Kendrick Lamar", store.artists[2].Name)

	require.Len(t, store.events, 2)
	assert.Equal(t, "Hip-Hop for Humanity Festival", store.events[0].Title)
	assert.Equal(t, 500, *store.events[0].MaxAttendees)
	assert.True(t, store.events[0].RegistrationRequired)
}

func TestRun_Idempotent(t *testing.T) {
	store := newMemStore()
	cfg := adminConfig()

	require.NoError(t, Run(context.Background(), testLogger(), cfg, store, plainHasher{}))
	require.NoError(t, Run(context.Background(), testLogger(), cfg, store, plainHasher{}))

	assert.Equal(t, 2, store.locks)
	assert.Len(t, store.users, 1)
	assert.Len(t, store.artists, 3)
	assert.Len(t, store.events, 2)
}

func TestRun_DoesNotPromoteSelfRegisteredAccount(t *testing.T) {
	store := newMemStore()
	cfg := adminConfig()

	noPassword := cfg
	noPassword.AdminPassword = ""
	require.NoError(t, Run(context.Background(), testLogger(), noPassword, store, plainHasher{}))
	require.Empty(t, store.users)

	// обычная регистрация на адрес администратора
	store.users["admin@hiphopfoundation.org"] = &models.User{
		ID: 7, Email: "admin@hiphopfoundation.org", PasswordHash: "hashed:attacker-pw", IsActive: true,
	}
	store.nextID = 7

	require.NoError(t, Run(context.Background(), testLogger(), cfg, store, plainHasher{}))

	require.Len(t, store.users, 1)
	u := store.users["admin@hiphopfoundation.org"]
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "hashed:attacker-pw", u.PasswordHash)
	assert.Len(t, store.artists, 3)
}

func TestRun_ConcurrentRegistrationKeepsSeeding(t *testing.T) {
	store := newMemStore()
	store.racer = &models.User{ID: 99, Email: "admin@hiphopfoundation.org", PasswordHash: "other", IsActive: true}

	require.NoError(t, Run(context.Background(), testLogger(), adminConfig(), store, plainHasher{}))

	u := store.users["admin@hiphopfoundation.org"]
	require.NotNil(t, u)
	assert.Equal(t, int64(99), u.ID)
	assert.False(t, u.IsAdmin)
	assert.Len(t, store.artists, 3)
	assert.Len(t, store.events, 2)
}

func TestRun_TakesLockFirst(t *testing.T) {
	store := newMemStore()
	store.failLock = errors.New("lock timeout")

	err := Run(context.Background(), testLogger(), adminConfig(), store, plainHasher{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
	assert.Equal(t, 1, store.locks)
	assert.Empty(t, store.users)
	assert.Empty(t, store.artists)
}

func TestRun_NoPasswordSkipsAdmin(t *testing.T) {
	store := newMemStore()
	cfg := adminConfig()
	cfg.AdminPassword = ""
	cfg.SeedSampleData = false

	require.NoError(t, Run(context.Background(), testLogger(), cfg, store, plainHasher{}))

	assert.Empty(t, store.users)
	assert.Empty(t, store.artists)
	assert.Empty(t, store.events)
}

func TestRun_DoesNotSeedNonEmptyTables(t *testing.T) {
	store := newMemStore()
	store.artists = []models.ArtistCreate{{Name: "Existing"}}

	require.NoError(t, Run(context.Background(), testLogger(), adminConfig(), store, plainHasher{}))

	assert.Len(t, store.artists, 1)
	assert.Len(t, store.events, 2)
}

func TestRun_StoreError(t *testing.T) {
	store := newMemStore()
	store.failGet = errors.New("connection refused")

	err := Run(context.Background(), testLogger(), adminConfig(), store, plainHasher{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
