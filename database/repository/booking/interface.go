package bookingRepo

import (
	"context"
	"errors"
	"time"

	"workspot/models"
)

var (
	// ErrNotFound is returned when no booking carries the requested id.
	ErrNotFound = errors.New("booking not found")
	// ErrOverlap is returned when a confirmed booking already covers part of the window.
	ErrOverlap = errors.New("overlapping confirmed booking exists")
	// ErrStatusConflict is returned when the stored status no longer matches the expected one.
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// CreateConfirmed inserts a confirmed booking only if no confirmed booking overlaps it.
	CreateConfirmed(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus moves a booking from one status to another, failing with
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) error
	// Confirm moves a pending booking to confirmed only if no other confirmed booking overlaps it.
	Confirm(ctx context.Context, booking *models.Booking, at time.Time) error
	FindOverlapping(ctx context.Context, window models.BookingWindow, statuses []models.BookingStatus, excludeID string) ([]models.Booking, error)
	ListBySpace(ctx context.Context, space string) ([]models.Booking, error)
	ListByGuest(ctx context.Context, guest string) ([]models.Booking, error)
}
