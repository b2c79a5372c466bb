package handler

import (
	"encoding/json"
	"net/http"

	"noteshare-server/internal/domain"
	"noteshare-server/internal/service"
	"noteshare-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// Register creates the account and returns it together with a bearer token,
// so the client is signed in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	authResp, err := h.authService.Register(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, authResp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.UnprocessableEntity(w, err.Error())
		return
	}

	authResp, err := h.authService.Login(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, authResp)
}

// Logout exists for contract parity; tokens are stateless and expire on
// their own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"message": "Logged out successfully",
	})
}
