package inventory

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/application/adapter"
)

// DeleteItemInput identifies the item to remove.
type DeleteItemInput struct {
	CompanyUsername string
	ItemID          string
}

// DeleteItemUseCase removes an inventory item.
type DeleteItemUseCase struct {
	repo adapter.InventoryRepository
}

// NewDeleteItemUseCase creates a new DeleteItemUseCase instance.
func NewDeleteItemUseCase(repo adapter.InventoryRepository) *DeleteItemUseCase {
	return &DeleteItemUseCase{repo: repo}
}

// Execute deletes the item.
func (uc *DeleteItemUseCase) Execute(ctx context.Context, input DeleteItemInput) error {
	id, err := ulid.ParseStrict(input.ItemID)
	if err != nil {
		return itemNotFound()
	}
	if err := uc.repo.Delete(ctx, input.CompanyUsername, id); err != nil {
		return wrapRepoError(err, "failed to delete inventory item")
	}
	return nil
}
