package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/title"
	"reviewhub-backend/internal/shared/response"
)

// TitleHandler serves the titles resource. Reads are public; writes sit
// behind the admin policy in the router.
type TitleHandler struct {
	service title.Service
}

func NewTitleHandler(svc title.Service) *TitleHandler {
	return &TitleHandler{service: svc}
}

// Create handles POST /titles.
func (h *TitleHandler) Create(c *gin.Context) {
	var req title.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, title.GetHTTPStatusCode(err), "CREATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// List handles GET /titles with category/genre/name/year filters.
func (h *TitleHandler) List(c *gin.Context) {
	var req title.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, title.GetHTTPStatusCode(err), "LIST_FAILED", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		Limit:  req.Limit,
		Offset: req.Offset,
		Total:  total,
	})
}

// Get handles GET /titles/:title_id.
func (h *TitleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("title_id"))
	if err != nil {
		response.BadRequest(c, "invalid title id")
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, title.GetHTTPStatusCode(err), "GET_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Update handles PATCH /titles/:title_id.
func (h *TitleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("title_id"))
	if err != nil {
		response.BadRequest(c, "invalid title id")
		return
	}

	var req title.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ErrorResponse(c, title.GetHTTPStatusCode(err), "UPDATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Delete handles DELETE /titles/:title_id.
func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("title_id"))
	if err != nil {
		response.BadRequest(c, "invalid title id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, title.GetHTTPStatusCode(err), "DELETE_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
