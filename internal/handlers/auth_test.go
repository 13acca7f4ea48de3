package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketbooth/internal/middleware"
	"ticketbooth/internal/models"
	"ticketbooth/internal/services"
)

type memUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *memUserRepo) Create(req *models.UserRegisterRequest, passwordHash string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == req.Email {
			return nil, models.ErrDuplicateEntry
		}
	}
	user := &models.User{ID: r.nextID, Name: req.Name, Email: req.Email, PasswordHash: passwordHash}
	r.users[user.ID] = user
	r.nextID++
	return user, nil
}

func (r *memUserRepo) GetByID(id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func authRouter(repo *memUserRepo) (http.Handler, sessions.Store) {
	store := sessions.NewCookieStore([]byte("test-secret"))
	authService := services.NewAuthService(repo)
	handler := NewAuthHandler(authService, store)
	authMiddleware := middleware.NewAuthMiddleware(authService, store)

	r := chi.NewRouter()
	r.Use(authMiddleware.LoadUser)
	r.Post("/auth/register", handler.Register)
	r.Post("/auth/login", handler.Login)
	r.Post("/auth/logout", handler.Logout)
	r.Get("/auth/me", handler.CurrentUser)
	return r, store
}

func TestAuthHandlerRegisterThenMe(t *testing.T) {
	router, _ := authRouter(newMemUserRepo())

	payload := `{"name": "Ada", "email": "ada@example.com", "password": "correct horse"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var registered models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registered))
	assert.Equal(t, "ada@example.com", registered.Email)

	// The session cookie from registration authenticates the next request.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest("GET", "/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var me models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, registered.ID, me.ID)
}

func TestAuthHandlerRegisterDuplicate(t *testing.T) {
	router, _ := authRouter(newMemUserRepo())

	payload := `{"name": "Ada", "email": "ada@example.com", "password": "correct horse"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	repo := newMemUserRepo()
	router, _ := authRouter(repo)

	register := `{"name": "Ada", "email": "ada@example.com", "password": "correct horse"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(register))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid credentials", `{"email": "ada@example.com", "password": "correct horse"}`, http.StatusOK},
		{"wrong password", `{"email": "ada@example.com", "password": "wrong password"}`, http.StatusUnauthorized},
		{"unknown email", `{"email": "nobody@example.com", "password": "correct horse"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	router, _ := authRouter(newMemUserRepo())

	payload := `{"name": "Ada", "email": "ada@example.com", "password": "correct horse"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	cookies := rec.Result().Cookies()

	req = httptest.NewRequest("POST", "/auth/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The logout response carries the expired cookie.
	req = httptest.NewRequest("GET", "/auth/me", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
