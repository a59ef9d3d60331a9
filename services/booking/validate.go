package booking

import (
	"strings"
	"time"

	"workspot/models"
	"workspot/utils"

	"github.com/google/uuid"
)

// BookingInput is a candidate booking as submitted by a caller.
type BookingInput struct {
	Space     string `json:"space" validate:"required"`
	Guest     string `json:"guest" validate:"required"`
	StartTime string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Status    string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// WindowQuery asks which bookings intersect a window on a space.
type WindowQuery struct {
	Space string `form:"space" json:"space" validate:"required"`
	Start string `form:"start" json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End   string `form:"end" json:"end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// NewBooking validates in and builds the booking record. Every violated
// field is reported at once as a *utils.ValidationError.
func NewBooking(in BookingInput, now time.Time) (*models.Booking, error) {
	in.Space = strings.TrimSpace(in.Space)
	in.Guest = strings.TrimSpace(in.Guest)

	verr := utils.ValidateStruct(in)
	start, end := parseWindow(verr, "startTime", in.StartTime, "endTime", in.EndTime)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	status := models.BookingStatus(in.Status)
	if status == "" {
		status = models.BookingPending
	}

	return &models.Booking{
		ID:        uuid.New().String(),
		Space:     in.Space,
		Guest:     in.Guest,
		StartTime: start,
		EndTime:   end,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Window validates q and returns the window it describes.
func (q WindowQuery) Window() (models.BookingWindow, error) {
	q.Space = strings.TrimSpace(q.Space)

	verr := utils.ValidateStruct(q)
	start, end := parseWindow(verr, "start", q.Start, "end", q.End)
	if err := verr.Err(); err != nil {
		return models.BookingWindow{}, err
	}
	return models.BookingWindow{Space: q.Space, Start: start, End: end}, nil
}

// parseWindow parses both bounds unless the tag checks already rejected them,
// and records an error when end does not come after start.
func parseWindow(verr *utils.ValidationError, startField, startRaw, endField, endRaw string) (time.Time, time.Time) {
	var start, end time.Time
	var startOK, endOK bool
	if _, bad := verr.FieldErrors[startField]; !bad {
		var err error
		start, err = time.Parse(time.RFC3339, startRaw)
		startOK = err == nil
	}
	if _, bad := verr.FieldErrors[endField]; !bad {
		var err error
		end, err = time.Parse(time.RFC3339, endRaw)
		endOK = err == nil
	}
	if startOK && endOK && !end.After(start) {
		verr.Add(endField, "must be after "+startField)
	}
	return start.UTC(), end.UTC()
}
