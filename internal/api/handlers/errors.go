package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"timeout/internal/core"
)

// writeError maps domain errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrEmptySchedule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Select at least one day before locking",
			"code":  "EMPTY_SCHEDULE",
		})
	case errors.Is(err, core.ErrScheduleInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Schedule has invalid or overlapping time slots",
			"code":  "SCHEDULE_INVALID",
		})
	case errors.Is(err, core.ErrCapacityExceeded):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Plan limit reached",
			"code":  "UPGRADE_REQUIRED",
		})
	case errors.Is(err, core.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Time slot not found",
			"code":  "SLOT_NOT_FOUND",
		})
	case errors.Is(err, core.ErrLastSlot):
		c.JSON(http.StatusConflict, gin.H{
			"error": "The last time slot cannot be removed",
			"code":  "LAST_SLOT",
		})
	case errors.Is(err, core.ErrAuthorizationFailed):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Incorrect partner code",
			"code":  "AUTHORIZATION_FAILED",
		})
	case errors.Is(err, core.ErrNoPendingAuthorization):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No authorization is pending",
			"code":  "NO_PENDING_AUTHORIZATION",
		})
	case errors.Is(err, core.ErrInvalidDomain):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Not a valid website address",
			"code":  "INVALID_DOMAIN",
		})
	case errors.Is(err, core.ErrDuplicateWebsite):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Website is already blocked",
			"code":  "DUPLICATE_WEBSITE",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  "INTERNAL_ERROR",
		})
	}
}
