package middleware

import (
	"context"
	"net/http"

	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/ports/backend"
)

type ctxKey string

const userKey ctxKey = "user"

// AuthContext:
// - Si hay sesión con usuario => setea el user en el context.
// - Si no, el request sigue igual; las vistas públicas no exigen identidad
//   y las protegidas usan RequireUser.
func AuthContext(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := store.CurrentUser(r); ok {
				ctx := context.WithValue(r.Context(), userKey, u)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUser(ctx context.Context) (backend.User, bool) {
	v := ctx.Value(userKey)
	if v == nil {
		return backend.User{}, false
	}
	u, ok := v.(backend.User)
	return u, ok
}

// RequireUser protege una vista: sin usuario en sesión redirige a /login.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
