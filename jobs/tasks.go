// Package jobs runs background work over Asynq: dashboard cache warmup
// and periodic allocation integrity scans.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup pre-populates the dashboard cache.
	TaskDashboardWarmup = "dashboard:warmup"
	// TaskAllocationIntegrity rechecks stored allocation rows against their
	// parent indirect cost amounts.
	TaskAllocationIntegrity = "allocation:integrity"
)

// DashboardWarmupPayload configures a warmup run.
type DashboardWarmupPayload struct {
	Reason string `json:"reason"`
}

// NewDashboardWarmupTask constructs a dashboard warmup task.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}

// AllocationIntegrityPayload configures an integrity scan.
type AllocationIntegrityPayload struct {
	Reason string `json:"reason"`
}

// NewAllocationIntegrityTask constructs an allocation integrity task.
func NewAllocationIntegrityTask(payload AllocationIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAllocationIntegrity, data), nil
}
