package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	reportRepo "workspot/database/repository/report"
	"workspot/models"
	"workspot/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("workspot/services/moderation")

// File validates and stores a new report.
func (s *DefaultModerationService) File(ctx context.Context, in ReportInput) (*models.ReportView, error) {
	ctx, span := tracer.Start(ctx, "moderation.File")
	defer span.End()

	r, err := NewReport(in, s.now())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("report.id", r.ID), attribute.String("report.priority", string(r.Priority)))

	if err := s.Repo.Create(ctx, r); err != nil {
		span.RecordError(err)
		return nil, err
	}

	target := r.Target()
	s.logger().Info("report filed",
		zap.String("reportID", r.ID),
		zap.String("type", string(r.Type)),
		zap.String("priority", string(r.Priority)),
		zap.String("targetKind", string(target.Kind)),
		zap.String("targetID", target.ID),
	)
	s.followUp(ctx, r)
	return s.view(r), nil
}

// Get returns a report by id.
func (s *DefaultModerationService) Get(ctx context.Context, id string) (*models.ReportView, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(r), nil
}

// List returns the reports matching q, newest first. The urgent filter is
// applied after derivation since urgency is never stored, so the limit is
// applied after it too.
func (s *DefaultModerationService) List(ctx context.Context, q ListQuery) ([]models.ReportView, error) {
	verr := utils.ValidateStruct(q)
	if (q.TargetKind == "") != (q.TargetID == "") {
		verr.Add("targetKind", "must be set together with targetId")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	filter := reportRepo.ReportFilter{
		Status:     models.ReportStatus(q.Status),
		Priority:   models.Priority(q.Priority),
		Type:       models.ReportType(q.Type),
		ReporterID: q.ReporterID,
	}
	if !q.Urgent {
		filter.Limit = q.Limit
	}
	switch models.TargetKind(q.TargetKind) {
	case models.TargetSpace:
		filter.ReportedSpaceID = q.TargetID
	case models.TargetUser:
		filter.ReportedUserID = q.TargetID
	}

	reports, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]models.ReportView, 0, len(reports))
	for _, r := range reports {
		v := View(r, now)
		if q.Urgent && !v.IsUrgent {
			continue
		}
		views = append(views, v)
		if q.Limit > 0 && int64(len(views)) == q.Limit {
			break
		}
	}
	return views, nil
}

// Update edits an open report. Changing the type re-runs escalation unless a
// priority was ever supplied explicitly.
func (s *DefaultModerationService) Update(ctx context.Context, id string, in ReportUpdate) (*models.ReportView, error) {
	ctx, span := tracer.Start(ctx, "moderation.Update", trace.WithAttributes(attribute.String("report.id", id)))
	defer span.End()

	in.Reason = trimmed(in.Reason)
	in.Description = trimmed(in.Description)
	if err := utils.ValidateStruct(in).Err(); err != nil {
		return nil, err
	}

	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status.IsClosed() {
		return nil, ErrReportClosed
	}

	expected, before := r.Status, r.Priority
	if in.Reason != nil {
		r.Reason = *in.Reason
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Evidence != nil {
		r.Evidence = in.Evidence
	}
	if in.Type != nil {
		if ApplyTypeChange(r, models.ReportType(*in.Type), priorityPtr(in.Priority)) {
			s.logger().Debug("report priority re-derived", zap.String("reportID", r.ID), zap.String("priority", string(r.Priority)))
		}
	} else if in.Priority != nil {
		r.Priority = models.Priority(*in.Priority)
		r.PriorityExplicit = true
	}
	r.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, r, expected); err != nil {
		span.RecordError(err)
		return nil, mapRepoErr(err)
	}
	if r.Priority != before {
		s.followUp(ctx, r)
	}
	return s.view(r), nil
}

// StartReview moves a pending report under review.
func (s *DefaultModerationService) StartReview(ctx context.Context, id string) (*models.ReportView, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case r.Status.IsClosed():
		return nil, ErrReportClosed
	case r.Status != models.ReportPending:
		return nil, fmt.Errorf("%w: report is %s", ErrInvalidReportTransition, r.Status)
	}

	r.Status = models.ReportUnderReview
	r.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, r, models.ReportPending); err != nil {
		return nil, mapRepoErr(err)
	}

	s.logger().Info("report under review", zap.String("reportID", r.ID))
	return s.view(r), nil
}

// Resolve closes a report as resolved or dismissed. resolvedBy and resolvedAt
// are written exactly once; a closed report rejects any further resolution.
func (s *DefaultModerationService) Resolve(ctx context.Context, id, adminID string, in ResolveInput) (*models.ReportView, error) {
	ctx, span := tracer.Start(ctx, "moderation.Resolve", trace.WithAttributes(attribute.String("report.id", id)))
	defer span.End()

	in.AdminNotes = strings.TrimSpace(in.AdminNotes)
	verr := utils.ValidateStruct(in)
	if strings.TrimSpace(adminID) == "" {
		verr.Add("resolvedBy", "required")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status.IsClosed() {
		return nil, ErrReportClosed
	}

	expected := r.Status
	now := s.now()
	action := models.ActionTaken(in.ActionTaken)
	if action == "" {
		action = models.ActionNone
	}
	r.Status = models.ReportStatus(in.Status)
	r.ActionTaken = action
	r.AdminNotes = in.AdminNotes
	r.ResolvedBy = adminID
	r.ResolvedAt = &now
	r.UpdatedAt = now

	if err := s.Repo.Update(ctx, r, expected); err != nil {
		span.RecordError(err)
		return nil, mapRepoErr(err)
	}

	s.logger().Info("report closed",
		zap.String("reportID", r.ID),
		zap.String("status", string(r.Status)),
		zap.String("actionTaken", string(r.ActionTaken)),
		zap.String("resolvedBy", adminID),
	)
	return s.view(r), nil
}

// MigrateLegacy converts every legacy flat report into the canonical shape.
func (s *DefaultModerationService) MigrateLegacy(ctx context.Context) (int, error) {
	n, err := s.Repo.MigrateLegacy(ctx, s.now())
	if err != nil {
		s.logger().Error("legacy report migration failed", zap.Int("migrated", n), zap.Error(err))
		return n, err
	}
	s.logger().Info("legacy reports migrated", zap.Int("migrated", n))
	return n, nil
}

func (s *DefaultModerationService) get(ctx context.Context, id string) (*models.Report, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return r, nil
}

func (s *DefaultModerationService) view(r *models.Report) *models.ReportView {
	v := View(*r, s.now())
	return &v
}

// followUp flags critical reports right away and queues a re-check for high
// ones at the moment they would turn urgent.
func (s *DefaultModerationService) followUp(ctx context.Context, r *models.Report) {
	if r.Priority == models.PriorityCritical {
		s.logger().Warn("urgent report needs attention",
			zap.String("reportID", r.ID),
			zap.String("type", string(r.Type)),
		)
		return
	}

	at, ok := UrgentAt(*r)
	if !ok || s.FollowUps == nil {
		return
	}
	if err := s.FollowUps.ScheduleUrgencyCheck(ctx, r.ID, at); err != nil {
		s.logger().Error("failed to schedule urgency check", zap.String("reportID", r.ID), zap.Error(err))
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, reportRepo.ErrNotFound):
		return ErrReportNotFound
	case errors.Is(err, reportRepo.ErrStatusConflict):
		return fmt.Errorf("%w: status changed concurrently", ErrInvalidReportTransition)
	}
	return err
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
