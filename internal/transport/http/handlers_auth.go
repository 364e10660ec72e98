package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/elsaedy55/Revo-backend/internal/user"
	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
)

//go:generate mockgen -source=handlers_auth.go -destination=mocks/auth_mocks.go -package=mocks AuthService

// AuthService is the account surface the auth handler delegates to.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (user.AuthResult, error)
	Login(ctx context.Context, email, password string) (user.AuthResult, error)
}

type AuthHandler struct {
	auth    AuthService
	devMode bool
}

func NewAuthHandler(auth AuthService, devMode bool) *AuthHandler {
	return &AuthHandler{auth: auth, devMode: devMode}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"), h.devMode)
		return
	}

	result, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	writeSuccess(w, http.StatusCreated, "user registered", result)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"), h.devMode)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, h.devMode)
		return
	}

	writeSuccess(w, http.StatusOK, "login successful", result)
}
