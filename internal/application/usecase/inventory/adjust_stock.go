package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// AdjustStockInput represents a relative quantity change.
type AdjustStockInput struct {
	CompanyUsername string
	ItemID          string
	Delta           int
}

// AdjustStockUseCase adds delta to an item's quantity.
type AdjustStockUseCase struct {
	repo adapter.InventoryRepository
}

// NewAdjustStockUseCase creates a new AdjustStockUseCase instance.
func NewAdjustStockUseCase(repo adapter.InventoryRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{repo: repo}
}

// Execute adjusts the quantity. A result below zero is rejected and nothing is saved.
func (uc *AdjustStockUseCase) Execute(ctx context.Context, input AdjustStockInput) (*entity.InventoryItem, error) {
	id, err := ulid.ParseStrict(input.ItemID)
	if err != nil {
		return nil, itemNotFound()
	}

	item, err := uc.repo.Update(ctx, input.CompanyUsername, id, func(item *entity.InventoryItem) error {
		next := item.Quantity + input.Delta
		if next < 0 {
			return domainerror.NewInventoryError(
				domainerror.ErrCodeNegativeQuantity,
				"Insufficient stock for this adjustment",
				domainerror.ErrNegativeQuantity,
			)
		}
		item.Quantity = next
		item.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, wrapRepoError(err, "failed to adjust stock")
	}

	if item.IsLowStock() {
		slog.Info("Item at or below low-stock threshold",
			"company", item.CompanyUsername,
			"sku", item.SKU,
			"quantity", item.Quantity,
			"threshold", item.LowStockThreshold,
		)
	}
	return item, nil
}
