package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "workspot/database/repository/booking"
	"workspot/models"
	"workspot/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("workspot/services/booking")

// Create validates and stores a booking. A booking created as confirmed goes
// through the same overlap check as Confirm.
func (s *DefaultBookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Create")
	defer span.End()

	b, err := NewBooking(in, s.now())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("booking.id", b.ID), attribute.String("booking.space", b.Space))

	if b.Status == models.BookingConfirmed {
		release, err := s.lock(ctx, b.Space)
		if err != nil {
			return nil, fail(span, err)
		}
		defer s.unlock(release, b.Space)

		if err := s.Repo.CreateConfirmed(ctx, b); err != nil {
			return nil, fail(span, mapRepoErr(err))
		}
	} else if err := s.Repo.Create(ctx, b); err != nil {
		return nil, fail(span, mapRepoErr(err))
	}

	s.logger().Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("space", b.Space),
		zap.String("guest", b.Guest),
		zap.String("status", string(b.Status)),
	)
	return b, nil
}

// Get returns a booking by id.
func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}

// Confirm moves a pending booking to confirmed. No two confirmed bookings of
// the same space may overlap; the per-space lock plus the repository
// transaction make the check and the write atomic.
func (s *DefaultBookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Confirm", trace.WithAttributes(attribute.String("booking.id", id)))
	defer span.End()

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}
	if !b.Status.CanTransitionTo(models.BookingConfirmed) {
		return nil, fail(span, &TransitionError{From: b.Status, To: models.BookingConfirmed})
	}

	release, err := s.lock(ctx, b.Space)
	if err != nil {
		return nil, fail(span, err)
	}
	defer s.unlock(release, b.Space)

	now := s.now()
	if err := s.Repo.Confirm(ctx, b, now); err != nil {
		return nil, fail(span, mapRepoErr(err))
	}
	b.Status = models.BookingConfirmed
	b.UpdatedAt = now

	s.logger().Info("booking confirmed", zap.String("bookingID", b.ID), zap.String("space", b.Space))
	return b, nil
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Cancel", trace.WithAttributes(attribute.String("booking.id", id)))
	defer span.End()

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}
	if !b.Status.CanTransitionTo(models.BookingCancelled) {
		return nil, fail(span, &TransitionError{From: b.Status, To: models.BookingCancelled})
	}

	now := s.now()
	if err := s.Repo.UpdateStatus(ctx, b.ID, b.Status, models.BookingCancelled, now); err != nil {
		return nil, fail(span, mapRepoErr(err))
	}
	b.Status = models.BookingCancelled
	b.UpdatedAt = now

	s.logger().Info("booking cancelled", zap.String("bookingID", b.ID))
	return b, nil
}

func (s *DefaultBookingService) ListBySpace(ctx context.Context, space string) ([]models.Booking, error) {
	return s.Repo.ListBySpace(ctx, space)
}

func (s *DefaultBookingService) ListByGuest(ctx context.Context, guest string) ([]models.Booking, error) {
	return s.Repo.ListByGuest(ctx, guest)
}

// FindOverlapping reports pending and confirmed bookings sharing part of the window.
func (s *DefaultBookingService) FindOverlapping(ctx context.Context, q WindowQuery) ([]models.Booking, error) {
	window, err := q.Window()
	if err != nil {
		return nil, err
	}
	active := []models.BookingStatus{models.BookingPending, models.BookingConfirmed}
	return s.Repo.FindOverlapping(ctx, window, active, "")
}

func (s *DefaultBookingService) lock(ctx context.Context, space string) (func(context.Context) error, error) {
	if s.Locker == nil {
		return func(context.Context) error { return nil }, nil
	}
	release, err := s.Locker.Acquire(ctx, space)
	if errors.Is(err, utils.ErrLockNotAcquired) {
		return nil, ErrSpaceBusy
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock space %s: %w", space, err)
	}
	return release, nil
}

func (s *DefaultBookingService) unlock(release func(context.Context) error, space string) {
	if err := release(context.Background()); err != nil {
		s.logger().Warn("failed to release space lock", zap.String("space", space), zap.Error(err))
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrOverlap):
		return ErrBookingOverlap
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	}
	return err
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	return err
}
