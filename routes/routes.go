package routes

import (
	"time"

	"workspot/handlers"
	"workspot/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterLegacyStubRoutes keeps the placeholder /admin and /reports routes.
func RegisterLegacyStubRoutes(r *gin.Engine) {
	r.GET("/admin/test", handlers.AdminRoutesTest)
	r.GET("/admin", handlers.AdminRoutesNotImplemented)
	r.GET("/reports/test", handlers.ReportRoutesTest)
	r.GET("/reports", handlers.ReportRoutesNotImplemented)
}

// RegisterReportRoutes registers report filing for authenticated users.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		api.POST("", hb.FileReportHandler)
		api.GET("/:id", hb.GetReportHandler)
	}
}

// RegisterAdminRoutes sets up the moderation endpoints for admins.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin/reports")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(hb.JWTSecret))
		adminGroup.GET("", hb.ListReportsHandler)
		adminGroup.POST("/migrate-legacy", hb.MigrateLegacyReportHandler)
		adminGroup.GET("/:id", hb.GetReportAdminHandler)
		adminGroup.PATCH("/:id", hb.UpdateReportHandler)
		adminGroup.POST("/:id/review", hb.StartReviewHandler)
		adminGroup.POST("/:id/resolve", hb.ResolveReportHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterLegacyStubRoutes(r)
	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
