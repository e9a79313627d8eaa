package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers /titles/:title_id/reviews
func (h *ReviewHandler) RegisterRoutes(titles *gin.RouterGroup) {
	reviews := titles.Group("/:title_id/reviews", middleware.AuthenticatedOrReadOnly())
	{
		reviews.GET("", h.List)
		reviews.POST("", h.Create)
		reviews.GET("/:review_id", h.Get)
		reviews.PATCH("/:review_id", h.Update)
		reviews.DELETE("/:review_id", h.Delete)
	}
}

// List GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, err := idParam(c, "title_id")
	if err != nil {
		respondError(c, err)
		return
	}
	page, pageSize, err := bindPage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	reviews, total, err := h.reviewService.List(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(dto.NewReviewResponses(reviews), page, pageSize, total))
}

// Get GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, reviewID, err := reviewParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewResponse(review))
}

// Create POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, err := idParam(c, "title_id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.CreateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), middleware.CurrentUser(c), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewReviewResponse(review))
}

// Update PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, reviewID, err := reviewParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewReviewResponse(review))
}

// Delete DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, reviewID, err := reviewParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), middleware.CurrentUser(c), titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func reviewParams(c *gin.Context) (titleID, reviewID int64, err error) {
	if titleID, err = idParam(c, "title_id"); err != nil {
		return 0, 0, err
	}
	if reviewID, err = idParam(c, "review_id"); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
