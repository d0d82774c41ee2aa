package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/review"
	"reviewhub-backend/internal/domains/title"
	"reviewhub-backend/internal/shared/middleware"
	"reviewhub-backend/internal/shared/response"
)

// ReviewHandler serves reviews nested under a title.
type ReviewHandler struct {
	service review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

func actorFrom(c *gin.Context) review.Actor {
	identity := middleware.GetIdentity(c)
	return review.Actor{ID: identity.UserID, Role: identity.Role}
}

func titleIDFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("title_id"))
	if err != nil {
		response.BadRequest(c, "invalid title id")
		return uuid.Nil, false
	}
	return id, true
}

func reviewIDFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("review_id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return uuid.Nil, false
	}
	return id, true
}

func statusFor(err error) int {
	if code := title.GetHTTPStatusCode(err); code != http.StatusInternalServerError {
		return code
	}
	return review.GetHTTPStatusCode(err)
}

// Create handles POST /titles/:title_id/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}

	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateReview(c.Request.Context(), titleID, actorFrom(c), req)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "CREATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// List handles GET /titles/:title_id/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}

	var req review.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.ListReviews(c.Request.Context(), titleID, req)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "LIST_FAILED", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		Limit:  req.Limit,
		Offset: req.Offset,
		Total:  total,
	})
}

// Get handles GET /titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}

	dto, err := h.service.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "GET_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Update handles PATCH /titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}

	var req review.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateReview(c.Request.Context(), titleID, reviewID, actorFrom(c), req)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "UPDATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Delete handles DELETE /titles/:title_id/reviews/:review_id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), titleID, reviewID, actorFrom(c)); err != nil {
		response.ErrorResponse(c, statusFor(err), "DELETE_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
