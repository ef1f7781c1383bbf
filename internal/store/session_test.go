package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawshop/internal/api"
	"pawshop/internal/storage"
)

func testUser() api.User {
	return api.User{ID: uuid.New(), Name: "Test User", Email: "user@example.com", Role: "user"}
}

func openKV(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSessionStore_DefaultState(t *testing.T) {
	s, err := NewSessionStore(nil)
	require.NoError(t, err)

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestSessionStore_LoginSetsAuthenticated(t *testing.T) {
	s, err := NewSessionStore(nil)
	require.NoError(t, err)

	user := testUser()
	require.NoError(t, s.Login(user, "jwt-token"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "jwt-token", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, user.Email, s.User().Email)
}

func TestSessionStore_RoundTripPersistence(t *testing.T) {
	kv := openKV(t)
	user := testUser()

	s, err := NewSessionStore(kv)
	require.NoError(t, err)
	require.NoError(t, s.Login(user, "jwt-token"))

	// Simulated restart: a fresh store over the same storage.
	reloaded, err := NewSessionStore(kv)
	require.NoError(t, err)

	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, "jwt-token", reloaded.Token())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, user.ID, reloaded.User().ID)
	assert.Equal(t, user.Name, reloaded.User().Name)
}

func TestSessionStore_LogoutRestoresDefaults(t *testing.T) {
	kv := openKV(t)

	s, err := NewSessionStore(kv)
	require.NoError(t, err)
	require.NoError(t, s.Login(testUser(), "jwt-token"))
	require.NoError(t, s.Logout())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())

	// The cleared session must not resurrect after a restart either.
	reloaded, err := NewSessionStore(kv)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAuthenticated())
}

func TestSessionStore_UpdateUserKeepsToken(t *testing.T) {
	s, err := NewSessionStore(openKV(t))
	require.NoError(t, err)

	user := testUser()
	require.NoError(t, s.Login(user, "jwt-token"))

	user.Name = "Renamed"
	user.Address = "123 Soi Pet, Bangkok"
	require.NoError(t, s.UpdateUser(user))

	assert.Equal(t, "jwt-token", s.Token())
	assert.Equal(t, "Renamed", s.User().Name)
	assert.True(t, s.IsAuthenticated())
}

func TestSessionStore_UserReturnsCopy(t *testing.T) {
	s, err := NewSessionStore(nil)
	require.NoError(t, err)
	require.NoError(t, s.Login(testUser(), "t"))

	s.User().Name = "mutated"
	assert.Equal(t, "Test User", s.User().Name)
}
