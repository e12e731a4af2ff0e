// Package inventory contains stock management use cases.
package inventory

import (
	"context"
	"fmt"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
)

// ListItemsInput represents the input for listing inventory.
type ListItemsInput struct {
	CompanyUsername string
	LowStockOnly    bool
}

// ListItemsUseCase lists a company's inventory.
type ListItemsUseCase struct {
	repo adapter.InventoryRepository
}

// NewListItemsUseCase creates a new ListItemsUseCase instance.
func NewListItemsUseCase(repo adapter.InventoryRepository) *ListItemsUseCase {
	return &ListItemsUseCase{repo: repo}
}

// Execute returns the items of the company, optionally only those at or below their threshold.
func (uc *ListItemsUseCase) Execute(ctx context.Context, input ListItemsInput) ([]*entity.InventoryItem, error) {
	var (
		items []*entity.InventoryItem
		err   error
	)
	if input.LowStockOnly {
		items, err = uc.repo.ListLowStock(ctx, input.CompanyUsername)
	} else {
		items, err = uc.repo.List(ctx, input.CompanyUsername)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}
