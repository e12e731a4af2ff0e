package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// InventoryItemModel represents the inventory_items table in the database.
type InventoryItemModel struct {
	ID                string          `gorm:"type:varchar(26);primaryKey"`
	CompanyUsername   string          `gorm:"type:varchar(100);not null;index"`
	Name              string          `gorm:"type:varchar(255);not null"`
	SKU               string          `gorm:"column:sku;type:varchar(100);not null"`
	Quantity          int             `gorm:"not null;default:0"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InventoryItemModel.
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToEntity converts an InventoryItemModel to a domain InventoryItem entity.
func (m *InventoryItemModel) ToEntity() (*entity.InventoryItem, error) {
	id, err := ulid.ParseStrict(m.ID)
	if err != nil {
		return nil, err
	}
	return &entity.InventoryItem{
		ID:                id,
		CompanyUsername:   m.CompanyUsername,
		Name:              m.Name,
		SKU:               m.SKU,
		Quantity:          m.Quantity,
		CostPrice:         m.CostPrice,
		SellingPrice:      m.SellingPrice,
		LowStockThreshold: m.LowStockThreshold,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}

// InventoryItemFromEntity creates an InventoryItemModel from a domain InventoryItem entity.
func InventoryItemFromEntity(item *entity.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		ID:                item.ID.String(),
		CompanyUsername:   item.CompanyUsername,
		Name:              item.Name,
		SKU:               item.SKU,
		Quantity:          item.Quantity,
		CostPrice:         item.CostPrice,
		SellingPrice:      item.SellingPrice,
		LowStockThreshold: item.LowStockThreshold,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{&UserModel{}, &TransactionModel{}, &InventoryItemModel{}}
}
