package assets

import (
	"errors"
	"time"
)

// Status enumerates asset lifecycle states.
type Status string

const (
	// StatusActive marks assets in service.
	StatusActive Status = "active"
	// StatusDisposed marks assets removed from service.
	StatusDisposed Status = "disposed"
)

// Asset is a depreciable farm asset (barn, equipment, well).
// Book value is never stored; it is recomputed from the purchase
// facts on every read.
type Asset struct {
	ID              int64     `json:"id"`
	AssetName       string    `json:"asset_name"`
	PurchaseDate    time.Time `json:"purchase_date"`
	PurchasePrice   float64   `json:"purchase_price"`
	UsefulLifeYears int       `json:"useful_life_years"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Valuation is an asset decorated with derived book values as of a point in time.
type Valuation struct {
	Asset
	CurrentValue            float64 `json:"current_value"`
	AccumulatedDepreciation float64 `json:"accumulated_depreciation"`
	AnnualDepreciation      float64 `json:"annual_depreciation"`
}

// Useful life bounds enforced at input time.
const (
	MinUsefulLifeYears = 1
	MaxUsefulLifeYears = 50
)

// ErrNotFound indicates a missing asset.
var ErrNotFound = errors.New("assets: asset not found")

// ErrInvalidPrice indicates a negative purchase price.
var ErrInvalidPrice = errors.New("assets: purchase price must be >= 0")

// ErrInvalidLifeYears indicates a useful life outside [1, 50].
var ErrInvalidLifeYears = errors.New("assets: useful life years must be between 1 and 50")

// ErrInvalidName indicates a blank asset name.
var ErrInvalidName = errors.New("assets: asset name required")

// ErrInvalidStatus indicates an unknown status value.
var ErrInvalidStatus = errors.New("assets: status must be active or disposed")
