package entity

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when an item is created without a threshold.
const DefaultLowStockThreshold = 5

// InventoryItem is a stock-keeping unit tracked by a company.
type InventoryItem struct {
	ID                ulid.ULID
	CompanyUsername   string
	Name              string
	SKU               string
	Quantity          int
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock reports whether quantity has dropped to the threshold or below.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// InventoryPatch holds the fields to change on an item; nil fields are left alone.
type InventoryPatch struct {
	Name              *string
	SKU               *string
	Quantity          *int
	CostPrice         *decimal.Decimal
	SellingPrice      *decimal.Decimal
	LowStockThreshold *int
}

// Apply copies the set fields onto the item and refreshes UpdatedAt.
func (p InventoryPatch) Apply(item *InventoryItem, now time.Time) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.SKU != nil {
		item.SKU = *p.SKU
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.CostPrice != nil {
		item.CostPrice = *p.CostPrice
	}
	if p.SellingPrice != nil {
		item.SellingPrice = *p.SellingPrice
	}
	if p.LowStockThreshold != nil {
		item.LowStockThreshold = *p.LowStockThreshold
	}
	item.UpdatedAt = now
}

// LowStockReport counts low-stock items for one company.
type LowStockReport struct {
	CompanyUsername string
	Items           int
}
