package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *FileStorage) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)
	return NewStore(storage), storage
}

func TestLoginPersistsBothKeys(t *testing.T) {
	store, storage := newTestStore(t)
	user := models.Profile{ID: 1, Username: "testuser", Email: "test1@ufl.edu"}

	require.NoError(t, store.Login("fake-token", user))

	token, ok, err := storage.Get(KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fake-token", token)

	raw, ok, err := storage.Get(KeyUser)
	require.NoError(t, err)
	require.True(t, ok)

	var persisted models.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, user, persisted)
}

func TestLogoutRemovesBothKeys(t *testing.T) {
	store, storage := newTestStore(t)
	require.NoError(t, store.Login("fake-token", models.Profile{ID: 1}))
	require.NoError(t, store.Logout())

	_, ok, err := storage.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = storage.Get(KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, store.LoggedIn())
	assert.Nil(t, store.User())
}

func TestClearIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Login("fake-token", models.Profile{ID: 1}))

	cleared, err := store.Clear()
	require.NoError(t, err)
	assert.True(t, cleared)

	cleared, err = store.Clear()
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestRestoreRehydratesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	first := NewStore(storage)
	user := models.Profile{ID: 7, Username: "gator", Email: "gator@ufl.edu"}
	require.NoError(t, first.Login("persisted-token", user))

	// A fresh process over the same state file.
	second := NewStore(storage)
	assert.False(t, second.LoggedIn())
	second.Restore()

	assert.Equal(t, "persisted-token", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, user, *second.User())
}

func TestRestoreCorruptedStateFallsBackToLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(NewFileStorage(path))
	assert.NotPanics(t, store.Restore)
	assert.False(t, store.LoggedIn())
}

func TestRestoreTokenWithoutUserStaysLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)
	require.NoError(t, storage.Set(KeyToken, "orphan-token"))

	store := NewStore(storage)
	store.Restore()

	assert.False(t, store.LoggedIn())
	assert.Nil(t, store.User())
}

func TestRestoreMalformedUserSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)
	require.NoError(t, storage.Set(KeyToken, "some-token"))
	require.NoError(t, storage.Set(KeyUser, "{broken"))

	store := NewStore(storage)
	store.Restore()
	assert.False(t, store.LoggedIn())
}

func TestUserReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Login("t", models.Profile{ID: 1, Username: "a"}))

	u := store.User()
	u.Username = "mutated"
	assert.Equal(t, "a", store.User().Username)
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "test1@ufl.edu",
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	claims, err := ParseClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "test1@ufl.edu", claims.Email)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
	assert.False(t, claims.Expired())
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
