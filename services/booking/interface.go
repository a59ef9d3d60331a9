package booking

import (
	"context"
	"time"

	bookingRepo "workspot/database/repository/booking"
	"workspot/models"

	"go.uber.org/zap"
)

// BookingService manages the booking lifecycle for spaces.
type BookingService interface {
	Create(ctx context.Context, in BookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Confirm(ctx context.Context, id string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	ListBySpace(ctx context.Context, space string) ([]models.Booking, error)
	ListByGuest(ctx context.Context, guest string) ([]models.Booking, error)
	// FindOverlapping returns the non-cancelled bookings intersecting the queried window.
	FindOverlapping(ctx context.Context, q WindowQuery) ([]models.Booking, error)
}

// SpaceLocker serializes confirmations per space across instances.
type SpaceLocker interface {
	Acquire(ctx context.Context, space string) (release func(context.Context) error, err error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Locker SpaceLocker
	Now    func() time.Time
	Logger *zap.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
