package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers /titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) RegisterRoutes(titles *gin.RouterGroup) {
	comments := titles.Group("/:title_id/reviews/:review_id/comments", middleware.AuthenticatedOrReadOnly())
	{
		comments.GET("", h.List)
		comments.POST("", h.Create)
		comments.GET("/:comment_id", h.Get)
		comments.PATCH("/:comment_id", h.Update)
		comments.DELETE("/:comment_id", h.Delete)
	}
}

// List GET .../reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, err := reviewParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, pageSize, err := bindPage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, total, err := h.commentService.List(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(dto.NewCommentResponses(comments), page, pageSize, total))
}

// Get GET .../comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, err := commentParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// Create POST .../reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, err := reviewParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.CreateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// Update PATCH .../comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, err := commentParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// Delete DELETE .../comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, err := commentParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func commentParams(c *gin.Context) (titleID, reviewID, commentID int64, err error) {
	if titleID, reviewID, err = reviewParams(c); err != nil {
		return 0, 0, 0, err
	}
	if commentID, err = idParam(c, "comment_id"); err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
