package masterdata

import (
	"errors"
	"time"
)

// Category groups cost centers by the kind of enterprise they track.
type Category string

const (
	// CategoryCrop marks plant production enterprises.
	CategoryCrop Category = "crop"
	// CategoryLivestock marks animal production enterprises.
	CategoryLivestock Category = "livestock"
	// CategoryOverhead marks administrative buckets.
	CategoryOverhead Category = "overhead"
)

// CostCenter is an accounting bucket for one farm enterprise.
type CostCenter struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultCostCenters is the seed catalogue of farm enterprises.
var DefaultCostCenters = []CostCenter{
	{Name: "Mango", Category: CategoryCrop, Active: true},
	{Name: "Orange", Category: CategoryCrop, Active: true},
	{Name: "Plum", Category: CategoryCrop, Active: true},
	{Name: "Vegetables (short cycle)", Category: CategoryCrop, Active: true},
	{Name: "Cattle", Category: CategoryLivestock, Active: true},
	{Name: "Poultry", Category: CategoryLivestock, Active: true},
	{Name: "General & Administration", Category: CategoryOverhead, Active: true},
}

// ErrNotFound indicates a missing cost center.
var ErrNotFound = errors.New("masterdata: cost center not found")

// ErrDuplicateName indicates a name collision on insert.
var ErrDuplicateName = errors.New("masterdata: cost center name already exists")

// ErrAlreadySeeded is returned when seeding a non-empty catalogue.
var ErrAlreadySeeded = errors.New("masterdata: cost centers already seeded")

// ErrImmutable is returned for update or delete attempts after seeding.
var ErrImmutable = errors.New("masterdata: cost centers are immutable")
