package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// JWTSecret verifies bearer tokens on protected groups.
	JWTSecret string

	// Booking endpoints
	CreateBookingHandler  gin.HandlerFunc
	GetBookingHandler     gin.HandlerFunc
	ConfirmBookingHandler gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc
	FindOverlapsHandler   gin.HandlerFunc

	// Report endpoints
	FileReportHandler gin.HandlerFunc
	GetReportHandler  gin.HandlerFunc

	// Admin moderation endpoints
	ListReportsHandler         gin.HandlerFunc
	GetReportAdminHandler      gin.HandlerFunc
	UpdateReportHandler        gin.HandlerFunc
	StartReviewHandler         gin.HandlerFunc
	ResolveReportHandler       gin.HandlerFunc
	MigrateLegacyReportHandler gin.HandlerFunc

	// Health
	HealthHandler gin.HandlerFunc
}
