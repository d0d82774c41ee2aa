package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reviewhub-backend/internal/domains/review"
	"reviewhub-backend/internal/shared/response"
)

// CommentHandler serves comments nested under a review.
type CommentHandler struct {
	service review.Service
}

func NewCommentHandler(svc review.Service) *CommentHandler {
	return &CommentHandler{service: svc}
}

func commentIDFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}

	var req review.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateComment(c.Request.Context(), titleID, reviewID, actorFrom(c), req)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "CREATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// List handles GET /titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}

	var req review.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.SetDefaults()

	dtos, total, err := h.service.ListComments(c.Request.Context(), titleID, reviewID, req)
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

// Get handles GET .../comments/:comment_id.
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}
	commentID, ok := commentIDFrom(c)
	if !ok {
		return
	}

	dto, err := h.service.GetComment(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "GET_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Update handles PATCH .../comments/:comment_id.
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}
	commentID, ok := commentIDFrom(c)
	if !ok {
		return
	}

	var req review.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateComment(c.Request.Context(), titleID, reviewID, commentID, actorFrom(c), req)
	if err != nil {
		response.ErrorResponse(c, statusFor(err), "UPDATE_FAILED", err.Error())
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Delete handles DELETE .../comments/:comment_id.
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, ok := titleIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFrom(c)
	if !ok {
		return
	}
	commentID, ok := commentIDFrom(c)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), titleID, reviewID, commentID, actorFrom(c)); err != nil {
		response.ErrorResponse(c, statusFor(err), "DELETE_FAILED", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
