package handlers

import (
	"errors"
	"net/http"

	"workspot/services/booking"
	"workspot/services/moderation"
	"workspot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONValidationError(c, verr)
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, moderation.ErrReportNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, booking.ErrBookingOverlap),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrSpaceBusy),
		errors.Is(err, moderation.ErrReportClosed),
		errors.Is(err, moderation.ErrInvalidReportTransition):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	default:
		getLogger(c).Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// badInput reports a request body or query that could not be decoded.
func badInput(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}

func callerID(c *gin.Context) string {
	return c.GetString("userID")
}

func callerIsAdmin(c *gin.Context) bool {
	return c.GetString("role") == utils.RoleAdmin
}
