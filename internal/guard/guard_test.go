package guard

import (
	"path/filepath"
	"testing"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(session.NewFileStorage(filepath.Join(t.TempDir(), "session.json")))
}

func TestCheckDeniesLoggedOut(t *testing.T) {
	g := New(newStore(t))

	d := g.Check()
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginRoute, d.RedirectTo)
	assert.Error(t, g.Require())
}

func TestCheckAllowsLoggedIn(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Login("tok", models.Profile{ID: 1}))

	g := New(store)
	assert.True(t, g.Check().Allowed)
	assert.NoError(t, g.Require())
}

func TestCheckReactsToSessionClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Login("tok", models.Profile{ID: 1}))

	g := New(store)
	require.True(t, g.Check().Allowed)

	// Logout while "mounted": the next check must deny.
	require.NoError(t, store.Logout())
	d := g.Check()
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginRoute, d.RedirectTo)
}

func TestUnrestoredSessionIsUnguarded(t *testing.T) {
	// A store that has not run Restore yet reads as logged out even if the
	// state file holds a session.
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileStorage(path)
	seeded := session.NewStore(storage)
	require.NoError(t, seeded.Login("tok", models.Profile{ID: 1}))

	fresh := session.NewStore(storage)
	g := New(fresh)
	assert.False(t, g.Check().Allowed)

	fresh.Restore()
	assert.True(t, g.Check().Allowed)
}
