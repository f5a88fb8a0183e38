package handlers

import (
	"net/http"
	"strings"

	"furg/internal/auth"
	apperrors "furg/internal/errors"
	"furg/internal/middleware"
	"furg/internal/models"
	"furg/internal/repository"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	userRepo       *repository.UserRepository
	sessionManager *auth.SessionManager
	cookieMaxAge   int
}

// NewAuthHandler creates a new AuthHandler. cookieMaxAge is the session cookie
// lifetime in seconds.
func NewAuthHandler(userRepo *repository.UserRepository, sm *auth.SessionManager, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		userRepo:       userRepo,
		sessionManager: sm,
		cookieMaxAge:   cookieMaxAge,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new user and starts a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, apperrors.Validation("a valid email is required"))
		return
	}
	if len(req.Password) < 8 {
		respondError(w, apperrors.Validation("password must be at least 8 characters"))
		return
	}
	if req.Name == "" {
		respondError(w, apperrors.Validation("name is required"))
		return
	}

	exists, err := h.userRepo.EmailExists(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if exists {
		respondError(w, apperrors.Conflict("email already registered"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user := &models.User{Email: req.Email, PasswordHash: hash, Name: req.Name}
	id, err := h.userRepo.Create(user)
	if err != nil {
		respondError(w, err)
		return
	}
	user.ID = id

	session, err := h.sessionManager.Create(id)
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.SetSessionCookie(w, session.ID, h.cookieMaxAge)

	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, apperrors.Unauthorized("invalid email or password"))
		return
	}

	session, err := h.sessionManager.Create(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.SetSessionCookie(w, session.ID, h.cookieMaxAge)

	respondJSON(w, http.StatusOK, user)
}

// Logout ends the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.sessionManager.Delete(cookie.Value); err != nil {
			respondError(w, err)
			return
		}
	}
	middleware.ClearSessionCookie(w)
	respondJSON(w, http.StatusNoContent, nil)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		respondError(w, apperrors.Unauthorized(""))
		return
	}
	respondJSON(w, http.StatusOK, user)
}
