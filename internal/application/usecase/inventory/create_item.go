package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// CreateItemInput represents a new inventory item.
type CreateItemInput struct {
	CompanyUsername   string
	Name              string
	SKU               string
	Quantity          int
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	LowStockThreshold *int
}

// CreateItemUseCase adds an item to a company's inventory.
type CreateItemUseCase struct {
	repo adapter.InventoryRepository
	ids  adapter.IDGenerator
}

// NewCreateItemUseCase creates a new CreateItemUseCase instance.
func NewCreateItemUseCase(repo adapter.InventoryRepository, ids adapter.IDGenerator) *CreateItemUseCase {
	return &CreateItemUseCase{repo: repo, ids: ids}
}

// Execute validates and stores the item.
func (uc *CreateItemUseCase) Execute(ctx context.Context, input CreateItemInput) (*entity.InventoryItem, error) {
	now := time.Now().UTC()
	item := &entity.InventoryItem{
		ID:                uc.ids.NewID(),
		CompanyUsername:   input.CompanyUsername,
		Name:              strings.TrimSpace(input.Name),
		SKU:               strings.TrimSpace(input.SKU),
		Quantity:          input.Quantity,
		CostPrice:         input.CostPrice,
		SellingPrice:      input.SellingPrice,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if input.LowStockThreshold != nil {
		item.LowStockThreshold = *input.LowStockThreshold
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, domainerror.NewInventoryError(domainerror.ErrCodeInventoryInternal, "failed to create inventory item", err)
	}
	return item, nil
}

func validateItem(item *entity.InventoryItem) error {
	if item.Name == "" || item.SKU == "" {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeInventoryMissingFields,
			"Name and SKU are required",
			domainerror.ErrMissingInventoryField,
		)
	}
	if item.Quantity < 0 || item.LowStockThreshold < 0 {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeNegativeQuantity,
			"Quantity cannot be negative",
			domainerror.ErrNegativeQuantity,
		)
	}
	if item.CostPrice.IsNegative() || item.SellingPrice.IsNegative() {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeNegativePrice,
			"Prices cannot be negative",
			domainerror.ErrNegativePrice,
		)
	}
	return nil
}

// itemNotFound is the answer for unknown ids and ids owned by other companies.
func itemNotFound() error {
	return domainerror.NewInventoryError(
		domainerror.ErrCodeInventoryNotFound,
		"Item not found",
		domainerror.ErrInventoryItemNotFound,
	)
}

// wrapRepoError keeps domain errors intact and wraps everything else.
func wrapRepoError(err error, msg string) error {
	var invErr *domainerror.InventoryError
	if errors.As(err, &invErr) {
		return err
	}
	if errors.Is(err, domainerror.ErrInventoryItemNotFound) {
		return itemNotFound()
	}
	return domainerror.NewInventoryError(domainerror.ErrCodeInventoryInternal, msg, err)
}
