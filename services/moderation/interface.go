package moderation

import (
	"context"
	"time"

	reportRepo "workspot/database/repository/report"
	"workspot/models"

	"go.uber.org/zap"
)

// ModerationService files reports and drives them through review.
// Every report it returns carries freshly derived daysOpen and isUrgent.
type ModerationService interface {
	File(ctx context.Context, in ReportInput) (*models.ReportView, error)
	Get(ctx context.Context, id string) (*models.ReportView, error)
	List(ctx context.Context, q ListQuery) ([]models.ReportView, error)
	Update(ctx context.Context, id string, in ReportUpdate) (*models.ReportView, error)
	StartReview(ctx context.Context, id string) (*models.ReportView, error)
	Resolve(ctx context.Context, id, adminID string, in ResolveInput) (*models.ReportView, error)
	MigrateLegacy(ctx context.Context) (int, error)
}

// FollowUpScheduler queues a re-check of a report at a later time.
type FollowUpScheduler interface {
	ScheduleUrgencyCheck(ctx context.Context, reportID string, at time.Time) error
}

// DefaultModerationService implements ModerationService.
type DefaultModerationService struct {
	Repo      reportRepo.ReportRepository
	FollowUps FollowUpScheduler
	Now       func() time.Time
	Logger    *zap.Logger
}

func (s *DefaultModerationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultModerationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
