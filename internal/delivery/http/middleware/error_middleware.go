package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"lead-capture-backend/internal/delivery/http/response"
	"lead-capture-backend/pkg/apperror"
	"lead-capture-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the single error boundary of the API. AppError values keep
// their status code and message; anything else becomes a 500 with the error's
// string form, matching the envelope the wizard expects. A panic downstream
// is recovered here too, so no request ever escapes without an envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("panic recovered", "error", r, "path", c.Request.URL.Path)
				response.Fail(c, http.StatusInternalServerError, fmt.Sprint(r))
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Fail(c, appErr.Code, appErr.Message)
			} else {
				logger.Log.Error("unhandled error", "error", err, "path", c.Request.URL.Path)
				response.Fail(c, http.StatusInternalServerError, err.Error())
			}
		}
	}
}
