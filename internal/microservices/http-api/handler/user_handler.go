package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers /users. Static /me wins over /:username.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")

	me := users.Group("/me", middleware.RequireAuthenticated())
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
	}

	admin := users.Group("", middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:username", h.Get)
		admin.PATCH("/:username", h.Update)
		admin.DELETE("/:username", h.Delete)
	}

	// full replacement is not supported; answer 405 before any auth check
	users.PUT("/me", methodNotAllowed)
	users.DELETE("/me", methodNotAllowed)
	users.PUT("/:username", methodNotAllowed)
}

// List GET /api/v1/users?search=
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize, err := bindPage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(dto.NewUserResponses(users), page, pageSize, total))
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Get GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Delete DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
