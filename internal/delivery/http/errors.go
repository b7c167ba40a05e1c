package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
)

// Error codes returned in the "code" field of error bodies
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeBodyTooLarge    = "REQUEST_TOO_LARGE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: message, Code: code})
}

// respondError maps a domain error onto a status and code. Unknown errors are logged
// and hidden behind a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	case errors.Is(err, domain.ErrRecipeNotFound):
		abortWithError(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		abortWithError(c, http.StatusTooManyRequests, CodeTooManyRequests, err.Error())
	default:
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}

// bindingError reports a malformed or invalid request body
func bindingError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		abortWithError(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large")
		return
	}
	abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request body: "+err.Error())
}
