package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub-backend/internal/domains/user"
	"reviewhub-backend/internal/shared/middleware"
	"reviewhub-backend/internal/shared/response"
)

// UserHandler serves the self-profile and admin account endpoints.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// ========================================
// SELF PROFILE (/users/me)
// ========================================

func (h *UserHandler) GetMe(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	dto, err := h.service.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "PROFILE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateMe applies a partial self-update. A role field sent by a
// non-admin is ignored, and the request still succeeds.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), identity.UserID, identity.Role, req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "PROFILE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========================================
// ADMIN (/users)
// ========================================

func (h *UserHandler) List(c *gin.Context) {
	var req user.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "LIST_FAILED", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		Limit:  req.Limit,
		Offset: req.Offset,
		Total:  total,
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "CREATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

func (h *UserHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "GET_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateByUsername(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "UPDATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteByUsername(c.Request.Context(), c.Param("username")); err != nil {
		response.ErrorResponse(c, user.GetHTTPStatusCode(err), "DELETE_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
