package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
// Path describes the request context; internal details never leak here.
type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// Error sends a JSON error response.
// AppError values determine the status code; anything else renders as a
// generic 500 so storage and driver errors stay out of the body.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Path: c.Request.URL.Path})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Path: c.Request.URL.Path})
}
