package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
)

// UpdateItemInput represents a field patch on an inventory item.
type UpdateItemInput struct {
	CompanyUsername string
	ItemID          string
	Patch           entity.InventoryPatch
}

// UpdateItemUseCase patches an inventory item.
type UpdateItemUseCase struct {
	repo adapter.InventoryRepository
}

// NewUpdateItemUseCase creates a new UpdateItemUseCase instance.
func NewUpdateItemUseCase(repo adapter.InventoryRepository) *UpdateItemUseCase {
	return &UpdateItemUseCase{repo: repo}
}

// Execute applies the patch and returns the stored item.
func (uc *UpdateItemUseCase) Execute(ctx context.Context, input UpdateItemInput) (*entity.InventoryItem, error) {
	id, err := ulid.ParseStrict(input.ItemID)
	if err != nil {
		return nil, itemNotFound()
	}

	patch := input.Patch
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.SKU != nil {
		sku := strings.TrimSpace(*patch.SKU)
		patch.SKU = &sku
	}

	item, err := uc.repo.Update(ctx, input.CompanyUsername, id, func(item *entity.InventoryItem) error {
		patch.Apply(item, time.Now().UTC())
		return validateItem(item)
	})
	if err != nil {
		return nil, wrapRepoError(err, "failed to update inventory item")
	}
	return item, nil
}
