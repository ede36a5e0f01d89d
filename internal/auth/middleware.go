package auth

import (
	"context"
	"net/http"

	"festx/infrastructure"
	"festx/internal/user"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth resolves the session cookie against the store of record on
// every call; verification results are never cached across requests.
func (h *JSONHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
			return
		}

		u, err := h.authUseCase.CurrentUser(r.Context(), cookie.Value)
		if err != nil {
			h.clearSessionCookie(w)
			infrastructure.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalAuth injects the user when a valid session cookie is present and
// lets the request through either way. A dead cookie is ignored, not cleared.
func (h *JSONHandler) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			if u, err := h.authUseCase.CurrentUser(r.Context(), cookie.Value); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, u))
			}
		}
		next.ServeHTTP(w, r)
	}
}

func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userContextKey).(*user.User)
	return u, ok
}
