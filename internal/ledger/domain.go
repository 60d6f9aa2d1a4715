package ledger

import (
	"errors"
	"math"
	"time"
)

// Expense is one recorded outgoing amount attributed to a cost center.
// Expenses are append-only; they are never updated or deleted.
type Expense struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	ItemName     string    `json:"item_name"`
	Category     string    `json:"category"`
	CostCenterID int64     `json:"cost_center_id"`
	Amount       float64   `json:"amount"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	ReceiptImage string    `json:"receipt_image,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UnitPrice derives the per-unit cost of the expense. A zero quantity falls
// back to a divisor of 1 so the division is always defined.
func (e Expense) UnitPrice() float64 {
	qty := e.Quantity
	if qty == 0 {
		qty = 1
	}
	return math.Round(e.Amount/qty*100) / 100
}

// Revenue is one recorded sale attributed to a cost center. TotalAmount is
// derived as Quantity x UnitPrice at entry time and not re-validated later.
type Revenue struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	CostCenterID int64     `json:"cost_center_id"`
	ProductName  string    `json:"product_name"`
	Quantity     float64   `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListFilter scopes ledger listings.
type ListFilter struct {
	From         time.Time
	To           time.Time
	CostCenterID int64
	Limit        int
	Offset       int
}

// StockLink describes the inventory upsert tied to an expense.
type StockLink struct {
	ItemName  string
	Quantity  float64
	UnitPrice float64
}

// ErrNotFound indicates a missing ledger record.
var ErrNotFound = errors.New("ledger: record not found")

// ErrInvalidAmount indicates a non-positive amount.
var ErrInvalidAmount = errors.New("ledger: amount must be > 0")

// ErrInvalidQuantity indicates a negative quantity.
var ErrInvalidQuantity = errors.New("ledger: quantity must be >= 0")

// ErrInvalidName indicates a blank item or product name.
var ErrInvalidName = errors.New("ledger: name required")

// ErrInvalidUnitPrice indicates a negative unit price.
var ErrInvalidUnitPrice = errors.New("ledger: unit price must be >= 0")

// ErrStockQuantityRequired indicates an inventory-linked expense without quantity.
var ErrStockQuantityRequired = errors.New("ledger: inventory-linked expense requires quantity > 0")
