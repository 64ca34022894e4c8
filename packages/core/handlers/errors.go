package handlers

import (
	"errors"
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service sentinel into an HTTP status.
// Anything outside the domain taxonomy is a persistence failure and maps to
// 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrVenueNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrEnrollmentNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrVenueConflict),
		errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrMatchFull),
		errors.Is(err, services.ErrAlreadyResolved),
		errors.Is(err, services.ErrAlreadyFinished),
		errors.Is(err, services.ErrMatchCancelled),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrPendingInvitation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidSchedule),
		errors.Is(err, services.ErrInvalidCapacity),
		errors.Is(err, services.ErrPaymentMismatch),
		errors.Is(err, services.ErrClosedForEnrollment),
		errors.Is(err, services.ErrSelfRejection),
		errors.Is(err, services.ErrForeignPlayer),
		errors.Is(err, services.ErrMatchNotScheduled),
		errors.Is(err, services.ErrNotOpenMatch),
		errors.Is(err, services.ErrCaptainLeave),
		errors.Is(err, services.ErrCaptainRemoval),
		errors.Is(err, services.ErrNotTeamMember):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
