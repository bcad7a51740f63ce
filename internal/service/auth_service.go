package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alleytab/alleytab/internal/auth"
	"github.com/alleytab/alleytab/internal/models"
)

// AuthService handles account registration and login.
type AuthService struct {
	authn  auth.Authenticator
	tokens *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authn auth.Authenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{authn: authn, tokens: tokens}
}

// Register attaches the auth routes to the mux. These are the only
// routes served outside the authenticated stack.
func (s *AuthService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name and email are required"))
		return
	}

	user, err := s.authn.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "email", req.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusConflict, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	s.respondWithToken(w, http.StatusCreated, user)
}

func (s *AuthService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.authn.Authenticate(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		slog.Warn("Login failed", "email", req.Email)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	s.respondWithToken(w, http.StatusOK, user)
}

func (s *AuthService) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, status, authResponse{Token: token, User: user})
}
