package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// CreateInventoryItemRequest represents the request body for adding an item.
type CreateInventoryItemRequest struct {
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Quantity          int             `json:"quantity"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	LowStockThreshold *int            `json:"lowStockThreshold,omitempty"`
}

// UpdateInventoryItemRequest represents a field patch on an item.
type UpdateInventoryItemRequest struct {
	Name              *string          `json:"name,omitempty"`
	SKU               *string          `json:"sku,omitempty"`
	Quantity          *int             `json:"quantity,omitempty"`
	CostPrice         *decimal.Decimal `json:"costPrice,omitempty"`
	SellingPrice      *decimal.Decimal `json:"sellingPrice,omitempty"`
	LowStockThreshold *int             `json:"lowStockThreshold,omitempty"`
}

// AdjustStockRequest represents a relative quantity change.
type AdjustStockRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// InventoryItemResponse represents an item in API responses.
type InventoryItemResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	SKU               string    `json:"sku"`
	Quantity          int       `json:"quantity"`
	CostPrice         float64   `json:"costPrice"`
	SellingPrice      float64   `json:"sellingPrice"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LowStock          bool      `json:"lowStock"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateInventoryItemRequest) ToPatch() entity.InventoryPatch {
	return entity.InventoryPatch{
		Name:              r.Name,
		SKU:               r.SKU,
		Quantity:          r.Quantity,
		CostPrice:         r.CostPrice,
		SellingPrice:      r.SellingPrice,
		LowStockThreshold: r.LowStockThreshold,
	}
}

// ToInventoryItemResponse converts a domain InventoryItem entity.
func ToInventoryItemResponse(item *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                item.ID.String(),
		Name:              item.Name,
		SKU:               item.SKU,
		Quantity:          item.Quantity,
		CostPrice:         item.CostPrice.InexactFloat64(),
		SellingPrice:      item.SellingPrice.InexactFloat64(),
		LowStockThreshold: item.LowStockThreshold,
		LowStock:          item.IsLowStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of items.
func ToInventoryItemResponses(items []*entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		out[i] = ToInventoryItemResponse(item)
	}
	return out
}
