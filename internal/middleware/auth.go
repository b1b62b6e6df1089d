package middleware

import (
	"context"
	"net/http"

	"tracker/internal/session"
	"tracker/pkg/api/response"

	"github.com/go-chi/render"
)

type key string

const userKey key = "user"

// Identity is the resolved requester, stored in the request context by Identify.
type Identity struct {
	UserID   int64
	Username string
}

// Identify resolves the session cookie into an Identity. It never rejects the
// request; guards downstream decide what anonymous access means per route.
func Identify(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUser(r.Context(), Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards page routes: anonymous requests are sent to the login form.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUserJSON guards API routes with a 401 envelope instead of a redirect.
func RequireUserJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r.Context()); !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a context carrying the resolved identity.
func WithUser(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, userKey, id)
}

func CurrentUser(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(userKey).(Identity)
	return id, ok
}
