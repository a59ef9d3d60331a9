package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	bookingRepo "workspot/database/repository/booking"
	"workspot/models"
	"workspot/utils"
)

// memoryBookingRepo mirrors the Mongo repository semantics in memory.
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	failWith error
}

func newMemoryBookingRepo(seed ...models.Booking) *memoryBookingRepo {
	r := &memoryBookingRepo{bookings: make(map[string]models.Booking)}
	for _, b := range seed {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *memoryBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memoryBookingRepo) overlapsConfirmed(b models.Booking) bool {
	for _, other := range r.bookings {
		if other.ID != b.ID && other.Status == models.BookingConfirmed && other.Window().Overlaps(b.Window()) {
			return true
		}
	}
	return false
}

func (r *memoryBookingRepo) CreateConfirmed(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlapsConfirmed(*b) {
		return bookingRepo.ErrOverlap
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (r *memoryBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status, b.UpdatedAt = to, at
	r.bookings[id] = b
	return nil
}

func (r *memoryBookingRepo) Confirm(ctx context.Context, booking *models.Booking, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlapsConfirmed(*booking) {
		return bookingRepo.ErrOverlap
	}
	b, ok := r.bookings[booking.ID]
	if !ok || b.Status != models.BookingPending {
		return bookingRepo.ErrStatusConflict
	}
	b.Status, b.UpdatedAt = models.BookingConfirmed, at
	r.bookings[b.ID] = b
	return nil
}

func (r *memoryBookingRepo) FindOverlapping(ctx context.Context, w models.BookingWindow, statuses []models.BookingStatus, excludeID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ID == excludeID || !b.Window().Overlaps(w) {
			continue
		}
		for _, st := range statuses {
			if b.Status == st {
				out = append(out, b)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memoryBookingRepo) ListBySpace(ctx context.Context, space string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Space == space }), nil
}

func (r *memoryBookingRepo) ListByGuest(ctx context.Context, guest string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Guest == guest }), nil
}

func (r *memoryBookingRepo) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

type lockerStub struct {
	acquired []string
	released int
	err      error
}

func (l *lockerStub) Acquire(ctx context.Context, space string) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, space)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func booked(id string, status models.BookingStatus, start, end string) models.Booking {
	s, _ := time.Parse(time.RFC3339, start)
	e, _ := time.Parse(time.RFC3339, end)
	return models.Booking{ID: id, Space: "space-1", Guest: "guest-" + id, StartTime: s, EndTime: e, Status: status}
}

func newService(repo *memoryBookingRepo, locker SpaceLocker) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:   repo,
		Locker: locker,
		Now:    func() time.Time { return refTime },
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a pending booking without locking", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		locker := &lockerStub{}
		svc := newService(repo, locker)

		b, err := svc.Create(ctx, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.GetByID(ctx, b.ID); err != nil {
			t.Fatalf("expected booking to be stored: %v", err)
		}
		if len(locker.acquired) != 0 {
			t.Fatalf("pending bookings must not take the space lock")
		}
	})

	t.Run("rejects invalid input before touching storage", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		repo.failWith = errors.New("should not be called")
		svc := newService(repo, nil)

		in := validInput()
		in.Guest = ""
		_, err := svc.Create(ctx, in)
		var verr *utils.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("confirmed creation checks overlap under the lock", func(t *testing.T) {
		repo := newMemoryBookingRepo(booked("a", models.BookingConfirmed, "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z"))
		locker := &lockerStub{}
		svc := newService(repo, locker)

		in := validInput()
		in.Status = "confirmed"
		_, err := svc.Create(ctx, in)
		if !errors.Is(err, ErrBookingOverlap) {
			t.Fatalf("expected ErrBookingOverlap, got %v", err)
		}
		if len(locker.acquired) != 1 || locker.released != 1 {
			t.Fatalf("expected lock acquired and released once, got %d/%d", len(locker.acquired), locker.released)
		}
	})

	t.Run("busy space surfaces ErrSpaceBusy", func(t *testing.T) {
		svc := newService(newMemoryBookingRepo(), &lockerStub{err: utils.ErrLockNotAcquired})

		in := validInput()
		in.Status = "confirmed"
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrSpaceBusy) {
			t.Fatalf("expected ErrSpaceBusy, got %v", err)
		}
	})
}

func TestBookingService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a pending booking", func(t *testing.T) {
		repo := newMemoryBookingRepo(booked("a", models.BookingPending, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"))
		svc := newService(repo, &lockerStub{})

		b, err := svc.Confirm(ctx, "a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Status != models.BookingConfirmed || !b.UpdatedAt.Equal(refTime) {
			t.Fatalf("unexpected booking %+v", b)
		}
	})

	t.Run("rejects overlap with another confirmed booking", func(t *testing.T) {
		repo := newMemoryBookingRepo(
			booked("a", models.BookingConfirmed, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			booked("b", models.BookingPending, "2026-03-10T09:30:00Z", "2026-03-10T11:00:00Z"),
		)
		svc := newService(repo, &lockerStub{})

		if _, err := svc.Confirm(ctx, "b"); !errors.Is(err, ErrBookingOverlap) {
			t.Fatalf("expected ErrBookingOverlap, got %v", err)
		}
		stored, _ := repo.GetByID(ctx, "b")
		if stored.Status != models.BookingPending {
			t.Fatalf("rejected confirmation must leave booking pending, got %s", stored.Status)
		}
	})

	t.Run("adjacent windows do not overlap", func(t *testing.T) {
		repo := newMemoryBookingRepo(
			booked("a", models.BookingConfirmed, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			booked("b", models.BookingPending, "2026-03-10T10:00:00Z", "2026-03-10T11:00:00Z"),
		)
		svc := newService(repo, &lockerStub{})

		if _, err := svc.Confirm(ctx, "b"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("pending and cancelled neighbours do not block", func(t *testing.T) {
		repo := newMemoryBookingRepo(
			booked("a", models.BookingPending, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			booked("c", models.BookingCancelled, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
			booked("b", models.BookingPending, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
		)
		svc := newService(repo, &lockerStub{})

		if _, err := svc.Confirm(ctx, "b"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("cancelled bookings cannot be confirmed", func(t *testing.T) {
		repo := newMemoryBookingRepo(booked("a", models.BookingCancelled, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"))
		svc := newService(repo, &lockerStub{})

		_, err := svc.Confirm(ctx, "a")
		var terr *TransitionError
		if !errors.As(err, &terr) || !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected TransitionError, got %v", err)
		}
		if terr.From != models.BookingCancelled || terr.To != models.BookingConfirmed {
			t.Fatalf("unexpected transition %+v", terr)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := newService(newMemoryBookingRepo(), nil)
		if _, err := svc.Confirm(ctx, "missing"); !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryBookingRepo(
		booked("a", models.BookingConfirmed, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
		booked("b", models.BookingCancelled, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
	)
	svc := newService(repo, nil)

	b, err := svc.Cancel(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}

	if _, err := svc.Cancel(ctx, "b"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingService_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryBookingRepo(
		booked("a", models.BookingConfirmed, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
		booked("b", models.BookingPending, "2026-03-10T09:30:00Z", "2026-03-10T10:30:00Z"),
		booked("c", models.BookingCancelled, "2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"),
		booked("d", models.BookingConfirmed, "2026-03-10T12:00:00Z", "2026-03-10T13:00:00Z"),
	)
	svc := newService(repo, nil)

	got, err := svc.FindOverlapping(ctx, WindowQuery{Space: "space-1", Start: "2026-03-10T09:45:00Z", End: "2026-03-10T11:00:00Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("expected bookings a and b, got %+v", got)
	}

	if _, err := svc.FindOverlapping(ctx, WindowQuery{Space: "space-1"}); err == nil {
		t.Fatal("expected validation error for missing bounds")
	}
}
