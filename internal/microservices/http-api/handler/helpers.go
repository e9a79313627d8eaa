package handler

import (
	"strconv"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/validation"

	"github.com/gin-gonic/gin"
)

// respondError is the single place errors become responses.
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.NotFound("invalid " + name)
	}
	return id, nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validation.FromBindError(err)
	}
	return nil
}

func bindPage(c *gin.Context) (page, pageSize int, err error) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, 0, validation.FromBindError(err)
	}
	page, pageSize = q.Normalize()
	return page, pageSize, nil
}

// methodNotAllowed answers 405 for verbs a route deliberately refuses.
func methodNotAllowed(c *gin.Context) {
	respondError(c, apperr.MethodNotAllowed(c.Request.Method))
}
