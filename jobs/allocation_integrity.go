package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/thundernada/farm-management/internal/allocation"
)

// AllocationIntegrityJob rechecks persisted allocation rows against the
// amounts of their parent indirect costs and reports any drift.
type AllocationIntegrityJob struct {
	Allocations *allocation.Service
	Logger      *slog.Logger
}

// NewAllocationIntegrityJob wires dependencies for the integrity handler.
func NewAllocationIntegrityJob(allocationSvc *allocation.Service, logger *slog.Logger) *AllocationIntegrityJob {
	return &AllocationIntegrityJob{Allocations: allocationSvc, Logger: logger}
}

// Handle processes allocation integrity tasks.
func (j *AllocationIntegrityJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Allocations == nil {
		return errors.New("allocation integrity: handler not configured")
	}
	var payload AllocationIntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	report, err := j.Allocations.CheckIntegrity(ctx)
	if err != nil {
		logger.Error("allocation integrity scan", slog.Any("error", err))
		return err
	}
	if len(report.Mismatch) > 0 {
		logger.Warn("allocation integrity mismatch",
			slog.Int("checked", report.Checked),
			slog.Any("indirect_cost_ids", report.Mismatch))
		return nil
	}
	logger.Info("allocation integrity ok", slog.Int("checked", report.Checked))
	return nil
}

func (j *AllocationIntegrityJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAllocationIntegrity))
	}
	return slog.Default().With(slog.String("job", TaskAllocationIntegrity))
}
