package handler

import (
	"net/http"
	"time"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/microservices/http-api/validation"

	"github.com/gin-gonic/gin"
)

// Services bundles what the router wires into handlers.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Category service.CategoryService
	Genre    service.GenreService
	Title    service.TitleService
	Review   service.ReviewService
	Comment  service.CommentService
}

type RouterConfig struct {
	RequestTimeout time.Duration
	AuthRateLimit  float64
	AuthRateBurst  int
	// AccessLog enables gin's request logger.
	AccessLog bool
}

// NewRouter builds the /api/v1 engine. Unregistered methods on known paths
// answer 405.
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	validation.Setup()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	if cfg.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	r.NoMethod(func(c *gin.Context) {
		respondError(c, apperr.MethodNotAllowed(c.Request.Method))
	})
	r.NoRoute(func(c *gin.Context) {
		respondError(c, apperr.NotFound("not found"))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", middleware.AuthMiddleware(svc.Auth))

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	NewAuthHandler(svc.Auth).RegisterRoutes(api.Group("/auth", limiter.Middleware()))

	NewUserHandler(svc.Users).RegisterRoutes(api)
	NewCategoryHandler(svc.Category).RegisterRoutes(api)
	NewGenreHandler(svc.Genre).RegisterRoutes(api)

	titles := api.Group("/titles")
	NewTitleHandler(svc.Title).RegisterRoutes(titles)
	NewReviewHandler(svc.Review).RegisterRoutes(titles)
	NewCommentHandler(svc.Comment).RegisterRoutes(titles)

	return r
}
