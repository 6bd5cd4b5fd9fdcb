package middleware

import (
	"context"
	"net/http"
)

type userIDKey struct{}

// RequireUser lifts the X-User-ID header, set by the upstream auth proxy,
// into the request context. Requests without it are rejected: order routes
// are always scoped to an authenticated owner.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "missing user identity"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID)))
	})
}

// UserID returns the authenticated user set by RequireUser, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
