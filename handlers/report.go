package handlers

import (
	"net/http"

	"workspot/services/moderation"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves report filing for authenticated users.
type ReportHandler struct {
	Service moderation.ModerationService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc moderation.ModerationService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

// FileReport files a report on behalf of the token subject.
func (h *ReportHandler) FileReport(c *gin.Context) {
	var in moderation.ReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	in.ReporterID = callerID(c)

	v, err := h.Service.File(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, v)
}

// GetReport returns one of the caller's own reports. Other reports look
// missing so their existence is not disclosed.
func (h *ReportHandler) GetReport(c *gin.Context) {
	v, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if v.ReporterID != callerID(c) && !callerIsAdmin(c) {
		respondError(c, moderation.ErrReportNotFound)
		return
	}
	respondOK(c, http.StatusOK, v)
}
