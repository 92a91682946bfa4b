package http

import (
	"errors"
	"net/http"

	"yatube/internal/forms"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError 把服务层错误转换为 HTTP 响应
func HandleServiceError(c *gin.Context, err error) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form", "errors": verr.FieldErrors()})
	case errors.Is(err, service.ErrAuthenticationFailed), errors.Is(err, service.ErrUnauthenticated):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrRegistrationFailed), errors.Is(err, service.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGroupSlugTaken):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrUserNotFound):
		NotFoundResponse(c)
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
