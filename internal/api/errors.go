package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/schedule"
	"github.com/dugout/coaching-app/internal/service"
)

// respondServiceError translates service-layer sentinel errors into HTTP
// status codes. Anything unrecognized is a 500 with a generic message so
// internals never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrFocusNotFound),
		errors.Is(err, service.ErrDrillNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrEnrollmentNotFound),
		errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, service.ErrSubmissionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrTemplateAccessDenied),
		errors.Is(err, service.ErrFocusAccessDenied),
		errors.Is(err, service.ErrDrillAccessDenied),
		errors.Is(err, service.ErrEnrollmentAccessDenied),
		errors.Is(err, service.ErrPlayerNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrDrillInUse),
		errors.Is(err, service.ErrPlayerAlreadyAssigned),
		errors.Is(err, service.ErrSubmissionAlreadyReviewed),
		errors.Is(err, service.ErrEnrollmentNotActive):
		abortWithError(c, http.StatusConflict, err.Error())

	case errors.Is(err, schedule.ErrOutOfRange):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, domain.ErrInvalidTemplateConfig),
		errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidEnrollmentStatus),
		errors.Is(err, service.ErrInvalidContentType),
		errors.Is(err, service.ErrUserNotPlayer):
		abortWithError(c, http.StatusBadRequest, err.Error())

	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
