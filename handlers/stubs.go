package handlers

import (
	"net/http"

	"workspot/utils"

	"github.com/gin-gonic/gin"
)

// Placeholder routes kept at /admin and /reports for clients that probe them.

func AdminRoutesTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin routes mounted and accessible"})
}

func ReportRoutesTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report routes mounted and accessible"})
}

func AdminRoutesNotImplemented(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, utils.ErrorResponse{Message: "Admin routes not implemented yet"})
}

func ReportRoutesNotImplemented(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, utils.ErrorResponse{Message: "Report routes not implemented yet"})
}
