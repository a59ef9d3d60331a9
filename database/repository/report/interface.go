package reportRepo

import (
	"context"
	"errors"
	"time"

	"workspot/models"
)

var (
	// ErrNotFound is returned when no report carries the requested id.
	ErrNotFound = errors.New("report not found")
	// ErrStatusConflict is returned when the stored status no longer matches the expected one.
	ErrStatusConflict = errors.New("report status changed concurrently")
)

// ReportFilter narrows List. Zero-valued fields are ignored.
type ReportFilter struct {
	Status          models.ReportStatus
	Priority        models.Priority
	Type            models.ReportType
	ReportedSpaceID string
	ReportedUserID  string
	ReporterID      string
	Limit           int64
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	// Update replaces the stored report as long as its status is still expected.
	Update(ctx context.Context, report *models.Report, expected models.ReportStatus) error
	List(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	// MigrateLegacy rewrites every legacy flat report into the canonical shape.
	MigrateLegacy(ctx context.Context, now time.Time) (int, error)
}
