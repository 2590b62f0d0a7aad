package handler

import (
	"encoding/json"
	"net/http"

	"taskhub/internal/app/service"
	"taskhub/internal/common"
	"taskhub/internal/common/security"
	"taskhub/internal/platform/logging"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		logging.Log.WithError(err).Warn("Signup failed")
		common.RespondWithDomainError(w, err)
		return
	}

	security.SetSessionCookie(w, resp.Token)
	common.RespondWithJSON(w, http.StatusCreated, resp.User)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		logging.Log.WithError(err).Warn("Login failed")
		common.RespondWithDomainError(w, err)
		return
	}

	security.SetSessionCookie(w, resp.Token)
	common.RespondWithJSON(w, http.StatusOK, resp.User)
}

// logout clears the cookie client-side; the signed token stays valid until
// its encoded expiry.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w)
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
