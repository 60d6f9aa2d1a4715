package inventory

import (
	"errors"
	"time"
)

// Item summarises on-hand stock of one purchased input, keyed by item name.
// Quantity accumulates as linked expenses are recorded; TotalValue is
// maintained as Quantity x UnitPrice at every write.
type Item struct {
	ItemName   string    `json:"item_name"`
	Quantity   float64   `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalValue float64   `json:"total_value"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ErrNotFound indicates a missing inventory item.
var ErrNotFound = errors.New("inventory: item not found")

// ErrInvalidQuantity indicates a non-positive quantity delta.
var ErrInvalidQuantity = errors.New("inventory: quantity must be > 0")
