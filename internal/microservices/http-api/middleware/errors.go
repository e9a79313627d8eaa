package middleware

import (
	"log/slog"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/dto"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// AbortWithError writes err as the JSON error body and stops the chain.
// Unclassified errors are logged and reported as a generic 500.
func AbortWithError(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind == apperr.KindInternal {
		attrs := []any{
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		}
		if ok && appErr.Message != "" {
			slog.ErrorContext(c.Request.Context(), appErr.Message, attrs...)
		} else {
			slog.ErrorContext(c.Request.Context(), "request failed", attrs...)
		}
		c.AbortWithStatusJSON(apperr.KindInternal.HTTPStatus(), dto.ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), dto.ErrorResponse{
		Error: appErr.Message,
		Field: appErr.Field,
	})
}
