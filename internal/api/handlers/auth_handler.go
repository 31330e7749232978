package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/potionworks/potion-api-be/internal/auth"
	"github.com/potionworks/potion-api-be/internal/models"
	"github.com/potionworks/potion-api-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration and sessions.
type AuthHandler struct {
	users services.UserServiceProvider
	auth  *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, authService *auth.Service) *AuthHandler {
	return &AuthHandler{users: users, auth: authService}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.users.Register(payload.Name, payload.Password)
	if err != nil {
		var verrs models.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			respondJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		case errors.Is(err, models.ErrDuplicateUser):
			respondError(w, http.StatusConflict, models.ErrDuplicateUser.Error())
		default:
			log.Error().Err(err).Str("name", payload.Name).Msg("Failed to register user")
			respondError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
}

// Login handles user authentication and session issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(payload.Name, payload.Password)
	if err != nil {
		log.Warn().Str("name", payload.Name).Msg("Failed authentication attempt")
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	http.SetCookie(w, h.auth.SessionCookie(token))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged in successfully"})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side session state to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.auth.ClearedCookie())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
