package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"ticketbooth/internal/middleware"
	"ticketbooth/internal/models"
	"ticketbooth/internal/services"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *services.AuthService
	store       sessions.Store
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *services.AuthService, store sessions.Store) *AuthHandler {
	return &AuthHandler{authService: authService, store: store}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			respondError(w, http.StatusConflict, "an account with that name or email already exists")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := middleware.SignIn(h.store, w, r, user); err != nil {
		log.Printf("failed to establish session for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "registration succeeded but login failed")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Printf("login failed for %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	if err := middleware.SignIn(h.store, w, r, user); err != nil {
		log.Printf("failed to establish session for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := middleware.SignOut(h.store, w, r); err != nil {
		log.Printf("failed to clear session: %v", err)
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CurrentUser handles GET /auth/me
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
