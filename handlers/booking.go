package handlers

import (
	"net/http"
	"strings"

	"workspot/models"
	"workspot/services/booking"
	"workspot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking books a space for the authenticated guest.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in booking.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c, err)
		return
	}
	in.Guest = callerID(c)

	b, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking created", zap.String("bookingID", b.ID), zap.String("status", string(b.Status)))
	respondOK(c, http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	b, err := h.Service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// CancelBooking is limited to the booking's guest and admins.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.Service.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing.Guest != callerID(c) && !callerIsAdmin(c) {
		utils.JSONError(c, http.StatusForbidden, "only the guest can cancel this booking", "")
		return
	}

	b, err := h.Service.Cancel(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// ListBookings lists bookings by ?space= or ?guest=, exactly one of them.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	space := strings.TrimSpace(c.Query("space"))
	guest := strings.TrimSpace(c.Query("guest"))

	var (
		list []models.Booking
		err  error
	)
	switch {
	case space != "" && guest == "":
		list, err = h.Service.ListBySpace(c.Request.Context(), space)
	case guest != "" && space == "":
		list, err = h.Service.ListByGuest(c.Request.Context(), guest)
	default:
		verr := &utils.ValidationError{}
		verr.Add("space", "exactly one of space or guest is required")
		err = verr
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

// FindOverlaps returns the live bookings intersecting ?space=&start=&end=.
func (h *BookingHandler) FindOverlaps(c *gin.Context) {
	var q booking.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badInput(c, err)
		return
	}

	list, err := h.Service.FindOverlapping(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}
