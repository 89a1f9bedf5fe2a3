// Package middleware resolves and guards the user session. The session
// middleware turns the persisted token, when present and still honored by the
// backend, into a user identity carried in the request context. RequireAuth
// is the route guard layered on top of it.
package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
	"github.com/mkoller-dev/quillpress/internal/shared/token"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const userKey contextKey = "user"

// identityResolver turns the bearer token in ctx into the user it belongs to.
type identityResolver interface {
	Me(ctx context.Context) (*blogapi.User, error)
}

// CurrentUser returns the session user from the request context, or nil when
// the request is anonymous. "Is authenticated" is exactly CurrentUser != nil;
// it is never tracked separately.
func CurrentUser(ctx context.Context) *blogapi.User {
	user, _ := ctx.Value(userKey).(*blogapi.User)
	return user
}

// WithUser returns ctx carrying user as the session identity. Exposed for
// handler tests.
func WithUser(ctx context.Context, user *blogapi.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// NewSessionMiddleware resolves the session cookie on every request. No
// cookie means an anonymous request and costs no backend call. A present
// token is resolved through the identity endpoint; if the backend no longer
// honors it the cookie is cleared and the request proceeds anonymously.
// Whether that ends in a login redirect is RequireAuth's decision, not this
// one's.
func NewSessionMiddleware(secret []byte, resolver identityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := token.Get(r, secret)
			if err != nil {
				// Missing or undecryptable cookie: normal anonymous path.
				if err != token.ErrNoToken {
					token.Clear(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := token.NewContext(r.Context(), tok)

			user, err := resolver.Me(ctx)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("Session token no longer valid")
				token.Clear(w)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = WithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth protects routes from anonymous access. It holds no state of its
// own: the decision is purely a function of what the session middleware
// resolved.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			Redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExpireSession tears the session down after the backend rejected a token
// mid-operation: clear the cookie and send the user to the login page.
// Clearing an already-empty store is a no-op, so concurrent expiries are
// harmless.
func ExpireSession(w http.ResponseWriter, r *http.Request) {
	token.Clear(w)
	Redirect(w, r, "/login")
}

// Redirect navigates the browser, using HX-Redirect for HTMX-issued requests
// so the full page changes rather than the swapped fragment.
func Redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
