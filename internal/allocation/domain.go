package allocation

import (
	"errors"
	"time"
)

// Method enumerates supported allocation methods.
type Method string

const (
	// MethodEqual splits the amount evenly across active cost centers.
	MethodEqual Method = "equal"
	// MethodManual expects allocation rows in a follow-up submission.
	MethodManual Method = "manual"
	// MethodProportional is selectable but has no computation path yet.
	MethodProportional Method = "direct-cost-proportional"
)

// IndirectCost is an overhead expense awaiting distribution to cost centers.
type IndirectCost struct {
	ID               int64     `json:"id"`
	Date             time.Time `json:"date"`
	CostType         string    `json:"cost_type"`
	Amount           float64   `json:"amount"`
	AllocationMethod Method    `json:"allocation_method"`
	CreatedAt        time.Time `json:"created_at"`
}

// CostAllocation is one cost center's share of an indirect cost.
type CostAllocation struct {
	ID                   int64   `json:"id"`
	IndirectCostID       int64   `json:"indirect_cost_id"`
	CostCenterID         int64   `json:"cost_center_id"`
	AllocatedAmount      float64 `json:"allocated_amount"`
	AllocationPercentage float64 `json:"allocation_percentage"`
}

// Detail bundles an indirect cost with its allocation rows.
type Detail struct {
	IndirectCost
	Allocations []CostAllocation `json:"allocations"`
}

// Share is a computed split before persistence.
type Share struct {
	CostCenterID int64
	Amount       float64
	Percentage   float64
}

// ErrNotFound indicates a missing indirect cost.
var ErrNotFound = errors.New("allocation: indirect cost not found")

// ErrInvalidAmount indicates a non-positive indirect cost amount.
var ErrInvalidAmount = errors.New("allocation: amount must be > 0")

// ErrInvalidCostType indicates a blank cost type.
var ErrInvalidCostType = errors.New("allocation: cost type required")

// ErrInvalidMethod indicates an unknown allocation method.
var ErrInvalidMethod = errors.New("allocation: unknown allocation method")

// ErrNoCostCenters is returned when an equal split has nothing to divide across.
var ErrNoCostCenters = errors.New("allocation: no active cost centers to allocate across")

// ErrMethodNotImplemented is returned for the proportional method, which is
// selectable but has no computation path.
var ErrMethodNotImplemented = errors.New("allocation: direct-cost-proportional allocation is not implemented")

// ErrMethodMismatch is returned when manual rows are submitted for a
// non-manual indirect cost.
var ErrMethodMismatch = errors.New("allocation: indirect cost does not use manual allocation")

// ErrAlreadyAllocated indicates allocation rows already exist.
var ErrAlreadyAllocated = errors.New("allocation: indirect cost already allocated")

// ErrRowsMismatch indicates manual rows that do not sum to the parent amount.
var ErrRowsMismatch = errors.New("allocation: rows must sum to the indirect cost amount")

// ErrDuplicateCostCenter indicates the same cost center twice in one submission.
var ErrDuplicateCostCenter = errors.New("allocation: duplicate cost center in allocation rows")
