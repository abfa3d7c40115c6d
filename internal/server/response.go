package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authsvc/internal/errors"
)

// RespondOK sends a 200 response wrapping data in the standard envelope.
func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, apperrors.SuccessBody(message, data))
}

// RespondWithError inspects err: if it is an *AppError the status and
// envelope are derived from it; otherwise a generic 500 is sent. Causes are
// never serialized.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToBody())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToBody())
}
