package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
)

const TypeReportUrgencyCheck = "report:urgency-check"

// UrgencyCheckPayload identifies the report to re-check.
type UrgencyCheckPayload struct {
	ReportID string `json:"reportId"`
}

// NewUrgencyCheckTask builds a task that fires at fireAt. The task id is
// derived from the report and the fire time, so re-scheduling the same check
// is a no-op.
func NewUrgencyCheckTask(reportID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(UrgencyCheckPayload{ReportID: reportID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReportUrgencyCheck, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(TypeReportUrgencyCheck + ":" + reportID + ":" + fireAt.UTC().Format(time.RFC3339)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseUrgencyCheck decodes the payload of an urgency check task.
func ParseUrgencyCheck(task *asynq.Task) (UrgencyCheckPayload, error) {
	var p UrgencyCheckPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, err
	}
	if p.ReportID == "" {
		return p, errors.New("urgency check payload has no reportId")
	}
	return p, nil
}

// AsynqFollowUpScheduler enqueues urgency checks on an asynq client.
type AsynqFollowUpScheduler struct {
	Client *asynq.Client
}

func (s *AsynqFollowUpScheduler) ScheduleUrgencyCheck(ctx context.Context, reportID string, at time.Time) error {
	task, opts, err := NewUrgencyCheckTask(reportID, at)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}
	return nil
}
