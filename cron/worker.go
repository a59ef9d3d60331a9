package cron

import (
	"context"
	"errors"
	"time"

	"workspot/services/moderation"
	"workspot/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitModerationWorker starts the asynq server that re-checks reports once
// they may have turned urgent. The caller owns shutdown.
func InitModerationWorker(svc moderation.ModerationService, logger *zap.Logger, redisOpt asynq.RedisClientOpt) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReportUrgencyCheck, HandleUrgencyCheck(svc, logger))

	go func() {
		logger.Info("starting moderation worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("moderation worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("moderation worker gave up; urgency checks will not run")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

// HandleUrgencyCheck logs a warning when the report is still open and urgent.
// Reports that were deleted or closed in the meantime are dropped silently.
func HandleUrgencyCheck(svc moderation.ModerationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseUrgencyCheck(task)
		if err != nil {
			logger.Error("invalid urgency check payload", zap.Error(err))
			return asynq.SkipRetry
		}

		v, err := svc.Get(ctx, p.ReportID)
		if errors.Is(err, moderation.ErrReportNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if v.Status.IsClosed() || !v.IsUrgent {
			logger.Debug("report no longer needs attention", zap.String("reportID", v.ID), zap.String("status", string(v.Status)))
			return nil
		}
		logger.Warn("urgent report still open",
			zap.String("reportID", v.ID),
			zap.String("priority", string(v.Priority)),
			zap.Int("daysOpen", v.DaysOpen),
			zap.String("status", string(v.Status)),
		)
		return nil
	}
}
