package handlers

import (
	"net/http"

	"workspot/services/moderation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the moderation operations reserved to admins.
type AdminHandler struct {
	Reports moderation.ModerationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reports moderation.ModerationService) *AdminHandler {
	return &AdminHandler{Reports: reports}
}

// ListReports returns the moderation queue filtered by the query string.
func (ah *AdminHandler) ListReports(c *gin.Context) {
	var q moderation.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badInput(c, err)
		return
	}

	views, err := ah.Reports.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, views)
}

func (ah *AdminHandler) GetReport(c *gin.Context) {
	v, err := ah.Reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, v)
}

func (ah *AdminHandler) UpdateReport(c *gin.Context) {
	var in moderation.ReportUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}

	v, err := ah.Reports.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, v)
}

func (ah *AdminHandler) StartReview(c *gin.Context) {
	v, err := ah.Reports.StartReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, v)
}

// ResolveReport closes a report; the admin behind the token is recorded as resolvedBy.
func (ah *AdminHandler) ResolveReport(c *gin.Context) {
	var in moderation.ResolveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}

	v, err := ah.Reports.Resolve(c.Request.Context(), c.Param("id"), callerID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, v)
}

func (ah *AdminHandler) MigrateLegacyReports(c *gin.Context) {
	n, err := ah.Reports.MigrateLegacy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("legacy reports migrated on request", zap.Int("migrated", n), zap.String("admin", callerID(c)))
	respondOK(c, http.StatusOK, gin.H{"migrated": n})
}
