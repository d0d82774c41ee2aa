package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub-backend/internal/domains/user"
	"reviewhub-backend/internal/shared/response"
)

// AuthHandler serves the public signup/activation endpoints.
type AuthHandler struct {
	service user.Service
}

func NewAuthHandler(svc user.Service) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Signup handles POST /auth/signup.
// The response echoes the submitted pair; the confirmation code only
// ever travels by email.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "SIGNUP_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Token handles POST /auth/token, exchanging a confirmation code for a
// session token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req user.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Confirm(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "CONFIRMATION_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, resp)
}
