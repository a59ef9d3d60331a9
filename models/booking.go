package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in state s may move to next.
// Cancelled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	}
	return false
}

// Booking is a reservation of a space for a time window by a guest.
type Booking struct {
	ID        string        `bson:"id" json:"id"`               // Unique booking identifier (UUID)
	Space     string        `bson:"space" json:"space"`         // Space being reserved
	Guest     string        `bson:"guest" json:"guest"`         // User who made the booking
	StartTime time.Time     `bson:"startTime" json:"startTime"` // Inclusive start (UTC)
	EndTime   time.Time     `bson:"endTime" json:"endTime"`     // Exclusive end (UTC)
	Status    BookingStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookingWindow is the (space, startTime, endTime) tuple used for overlap queries.
type BookingWindow struct {
	Space string    `json:"space"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Window exposes the booking's overlap key.
func (b Booking) Window() BookingWindow {
	return BookingWindow{Space: b.Space, Start: b.StartTime, End: b.EndTime}
}

// Overlaps reports whether two half-open windows on the same space intersect.
func (w BookingWindow) Overlaps(o BookingWindow) bool {
	return w.Space == o.Space && w.Start.Before(o.End) && o.Start.Before(w.End)
}
