// Package guard gates access to authenticated views. A protected view runs
// only when a credential is present; otherwise the caller is redirected to
// the login route.
package guard

import (
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/session"
)

// LoginRoute is where unauthenticated visitors are sent.
const LoginRoute = "/login"

// Decision is the outcome of a guard check.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard decides access from the current session state. The check is
// re-evaluated on every call, so a session cleared mid-flight (logout or a
// 401) denies the very next check.
type Guard struct {
	Session *session.Store
}

// New creates a Guard over the given session store.
func New(store *session.Store) *Guard {
	return &Guard{Session: store}
}

// Check returns Allowed when a credential is present, otherwise a redirect
// to the login route. A session that has not been restored yet reads as
// unauthenticated, so there is no false-authenticated window.
func (g *Guard) Check() Decision {
	if g.Session.LoggedIn() {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: LoginRoute}
}

// Require returns an UNAUTHORIZED error when the session holds no
// credential. Protected CLI commands call this before doing anything.
func (g *Guard) Require() error {
	if d := g.Check(); !d.Allowed {
		return models.NewUnauthorizedError("You must be logged in. Redirecting to " + d.RedirectTo)
	}
	return nil
}
