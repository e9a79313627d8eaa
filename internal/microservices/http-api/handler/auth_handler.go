package handler

import (
	"net/http"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the signup and token routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/token", h.Token)
}

// Signup registers a user or re-sends the confirmation code
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// Token exchanges a confirmation code for an access token
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
