package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"lendledger/internal/auth"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /auth/login and issues a role-bearing token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", details)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			JSONError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Unknown username or wrong password", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage error", nil)
		return
	}
	JSONSuccess(w, loginResponse{Token: token}, nil)
}
