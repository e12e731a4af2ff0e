package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// inventoryRepository implements the adapter.InventoryRepository interface.
type inventoryRepository struct {
	db    *gorm.DB
	locks *tenantLocks
}

// NewInventoryRepository creates a new inventory repository instance.
func NewInventoryRepository(db *gorm.DB) adapter.InventoryRepository {
	return &inventoryRepository{
		db:    db,
		locks: newTenantLocks(),
	}
}

// List returns every item of a company ordered by name.
func (r *inventoryRepository) List(ctx context.Context, companyUsername string) ([]*entity.InventoryItem, error) {
	return r.find(r.db.WithContext(ctx).Where("company_username = ?", companyUsername))
}

// ListLowStock returns the company's items at or below their threshold.
func (r *inventoryRepository) ListLowStock(ctx context.Context, companyUsername string) ([]*entity.InventoryItem, error) {
	return r.find(r.db.WithContext(ctx).
		Where("company_username = ? AND quantity <= low_stock_threshold", companyUsername))
}

func (r *inventoryRepository) find(query *gorm.DB) ([]*entity.InventoryItem, error) {
	var models []model.InventoryItemModel
	if err := query.Order("name ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]*entity.InventoryItem, 0, len(models))
	for i := range models {
		item, err := models[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("corrupt inventory id %q: %w", models[i].ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Create stores a new item.
func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	unlock := r.locks.lock(item.CompanyUsername)
	defer unlock()

	return r.db.WithContext(ctx).Create(model.InventoryItemFromEntity(item)).Error
}

// Update loads, mutates and saves the item inside one transaction while holding the company lock.
func (r *inventoryRepository) Update(
	ctx context.Context,
	companyUsername string,
	id ulid.ULID,
	mutate func(item *entity.InventoryItem) error,
) (*entity.InventoryItem, error) {
	unlock := r.locks.lock(companyUsername)
	defer unlock()

	var updated *entity.InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.InventoryItemModel
		result := tx.Where("id = ? AND company_username = ?", id.String(), companyUsername).First(&m)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrInventoryItemNotFound
			}
			return result.Error
		}

		item, err := m.ToEntity()
		if err != nil {
			return err
		}
		if err := mutate(item); err != nil {
			return err
		}
		// Identity fields are not patchable.
		item.ID = id
		item.CompanyUsername = m.CompanyUsername

		if err := tx.Save(model.InventoryItemFromEntity(item)).Error; err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an item of a company.
func (r *inventoryRepository) Delete(ctx context.Context, companyUsername string, id ulid.ULID) error {
	unlock := r.locks.lock(companyUsername)
	defer unlock()

	result := r.db.WithContext(ctx).
		Where("id = ? AND company_username = ?", id.String(), companyUsername).
		Delete(&model.InventoryItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInventoryItemNotFound
	}
	return nil
}

// CountLowStock groups low-stock item counts by company.
func (r *inventoryRepository) CountLowStock(ctx context.Context) ([]entity.LowStockReport, error) {
	var rows []struct {
		CompanyUsername string
		Items           int
	}
	result := r.db.WithContext(ctx).
		Model(&model.InventoryItemModel{}).
		Select("company_username, COUNT(*) AS items").
		Where("quantity <= low_stock_threshold").
		Group("company_username").
		Order("company_username").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	reports := make([]entity.LowStockReport, len(rows))
	for i, row := range rows {
		reports[i] = entity.LowStockReport{CompanyUsername: row.CompanyUsername, Items: row.Items}
	}
	return reports, nil
}
