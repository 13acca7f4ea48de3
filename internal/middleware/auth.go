package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"ticketbooth/internal/models"
	"ticketbooth/internal/services"
)

type contextKey string

const userContextKey contextKey = "user"

const sessionName = "session"

// AuthMiddleware loads the logged-in user from the session cookie
type AuthMiddleware struct {
	authService *services.AuthService
	store       sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *services.AuthService, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, store: store}
}

// LoadUser resolves the session's user, if any, and places it on the
// request context. Requests without a valid session continue anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, sessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int)
		if !ok || userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authService.GetUser(userID)
		if err != nil {
			// Stale session: the user is gone, clear the cookie.
			session.Options.MaxAge = -1
			_ = session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that have no authenticated user
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the authenticated user, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// WithUser returns a context carrying the given user. Used by handler tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// SignIn records the user on the session cookie
func SignIn(store sessions.Store, w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A decode failure still yields a fresh session; proceed with it.
		session, _ = store.New(r, sessionName)
	}
	session.Values["user_id"] = user.ID
	return session.Save(r, w)
}

// SignOut clears the session cookie
func SignOut(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
