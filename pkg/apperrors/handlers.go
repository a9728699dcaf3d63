package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler converts errors into the JSON envelope.
type GinErrorHandler struct {
	// Debug keeps diagnostic detail in responses. In production it must be
	// false so unexpected errors flatten to a generic 500.
	Debug bool
}

var defaultHandler = &GinErrorHandler{}

// SetDebug configures the package-level handler once at startup.
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleGinError is the single funnel for errors leaving the API.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if !h.Debug && appErr.Code == CodeInternalError {
		// Never leak internals of unexpected failures.
		appErr = New(CodeInternalError, "system", "Internal server error", appErr.HTTPCode)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "code", appErr.Code, "domain", appErr.Domain, "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError is the helper handlers call directly.
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
