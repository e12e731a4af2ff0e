package adapter

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/domain/entity"
)

// InventoryRepository defines the interface for inventory persistence operations.
type InventoryRepository interface {
	List(ctx context.Context, companyUsername string) ([]*entity.InventoryItem, error)
	ListLowStock(ctx context.Context, companyUsername string) ([]*entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error

	// Update runs mutate on the stored item inside one transaction and saves the result.
	// Returning an error from mutate aborts without saving.
	Update(ctx context.Context, companyUsername string, id ulid.ULID, mutate func(item *entity.InventoryItem) error) (*entity.InventoryItem, error)

	Delete(ctx context.Context, companyUsername string, id ulid.ULID) error

	// CountLowStock groups low-stock item counts by company.
	CountLowStock(ctx context.Context) ([]entity.LowStockReport, error)
}
