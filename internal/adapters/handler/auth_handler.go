package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hangang-korean/admin-service/internal/core/ports"
	"github.com/hangang-korean/admin-service/internal/core/services"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{errorBody{Kind: "unauthorized", Message: "invalid credentials"}})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{errorBody{Kind: "unauthorized", Message: "missing bearer token"}})
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{errorBody{Kind: "unauthorized", Message: "invalid token"}})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
