package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub-backend/internal/domains/catalog"
	"reviewhub-backend/internal/shared/response"
)

// CatalogHandler is the shared CRUD handler for categories and genres.
// Reads are public; create and delete sit behind the admin policy in
// the router.
type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Create handles POST /categories and POST /genres.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req catalog.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, catalog.GetHTTPStatusCode(err), "CREATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// List handles GET with optional name search and pagination.
func (h *CatalogHandler) List(c *gin.Context) {
	var req catalog.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, catalog.GetHTTPStatusCode(err), "LIST_FAILED", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		Limit:  req.Limit,
		Offset: req.Offset,
		Total:  total,
	})
}

// Delete handles DELETE /:slug.
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		response.ErrorResponse(c, catalog.GetHTTPStatusCode(err), "DELETE_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
