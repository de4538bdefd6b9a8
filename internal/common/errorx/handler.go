package errorx

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler converts service errors into HTTP responses.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond writes err to the response. Classified errors pass through with
// their status and code; anything else is logged with full detail and
// surfaced as a generic internal error.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatus >= 500 {
			h.logger.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("code", apiErr.Code),
				zap.Error(err))
		}
		c.JSON(apiErr.HTTPStatus, apiErr)
		return
	}

	h.logger.Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	internal := NewInternal()
	c.JSON(internal.HTTPStatus, internal)
}
