package middleware

import (
	"context"
	"net/http"

	"github.com/avelichko/postbook/internal/models"
	"github.com/avelichko/postbook/internal/session"
	"github.com/avelichko/postbook/internal/store"
)

// context key
type ctxKey string

const ctxUserKey ctxKey = "current_user"

// CurrentUser resolves the session cookie to a user and stores it in the
// request context. Anonymous requests pass through with no user; the
// handlers decide whether that matters. A cookie pointing at a deleted
// user is treated as anonymous too.
func CurrentUser(sessions *session.Manager, st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := st.UserByID(r.Context(), id)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxUserKey).(*models.User)
	return u
}
