package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/thundernada/farm-management/internal/analytics"
)

// DashboardWarmupJob pre-populates the analytics cache so the first
// dashboard request after an invalidation does not pay the query cost.
type DashboardWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(analyticsSvc *analytics.Service, logger *slog.Logger) *DashboardWarmupJob {
	return &DashboardWarmupJob{Analytics: analyticsSvc, Logger: logger}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Analytics == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	if payload.Reason != "" {
		logger = logger.With(slog.String("reason", payload.Reason))
	}
	started := time.Now()
	logger.Info("starting dashboard warmup")

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if _, err := j.Analytics.GetKPISummary(warmCtx); err != nil {
		logger.Error("warm kpi summary", slog.Any("error", err))
		return err
	}
	if _, err := j.Analytics.GetSpendByCostCenter(warmCtx); err != nil {
		logger.Error("warm spend by cost center", slog.Any("error", err))
		return err
	}
	if _, err := j.Analytics.GetMonthlyTrend(warmCtx); err != nil {
		logger.Error("warm monthly trend", slog.Any("error", err))
		return err
	}

	logger.Info("completed dashboard warmup", slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}
