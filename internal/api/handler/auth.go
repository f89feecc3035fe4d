package handler

import (
	"net/http"

	"github.com/mcoot/tilescore/internal/api/middleware"
	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/services/auth"
)

// AuthHandler handles organizer login
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.ExtractToken(r); token != "" {
		h.authService.InvalidateSession(token)
	}
	response.NoContent(w)
}
