package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/microservices/http-api/validation"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers /titles. Reviews and comments hang off the same
// group and register themselves.
func (h *TitleHandler) RegisterRoutes(titles *gin.RouterGroup) {
	admin := titles.Group("", middleware.AdminOrReadOnly())
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:title_id", h.Get)
		admin.PATCH("/:title_id", h.Update)
		admin.DELETE("/:title_id", h.Delete)
	}
}

// List GET /api/v1/titles?category=&genre=&name=&year=
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize, err := bindPage(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var q dto.TitleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, validation.FromBindError(err))
		return
	}

	filter := repository.TitleFilter{
		CategorySlug: q.Category,
		GenreSlug:    q.Genre,
		Name:         q.Name,
		Year:         q.Year,
	}
	titles, total, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(dto.NewTitleResponses(titles), page, pageSize, total))
}

// Get GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, err := idParam(c, "title_id")
	if err != nil {
		respondError(c, err)
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTitleResponse(title))
}

// Create POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTitleResponse(title))
}

// Update PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, err := idParam(c, "title_id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateTitleRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTitleResponse(title))
}

// Delete DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "title_id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
