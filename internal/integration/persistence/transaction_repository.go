package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// insertBatchSize bounds the rows per INSERT statement inside AppendMany.
const insertBatchSize = 200

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db    *gorm.DB
	locks *tenantLocks
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db:    db,
		locks: newTenantLocks(),
	}
}

// List returns every transaction of a company ordered by date then id.
func (r *transactionRepository) List(ctx context.Context, companyUsername string) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("company_username = ?", companyUsername).
		Order("date ASC").
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		t, err := models[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction id %q: %w", models[i].ID, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// Append stores a single transaction.
func (r *transactionRepository) Append(ctx context.Context, transaction *entity.Transaction) error {
	unlock := r.locks.lock(transaction.CompanyUsername)
	defer unlock()

	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// AppendMany stores all transactions in one database transaction.
func (r *transactionRepository) AppendMany(ctx context.Context, companyUsername string, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	models := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		if t.CompanyUsername != companyUsername {
			return fmt.Errorf("transaction %s belongs to %q, not %q", t.ID, t.CompanyUsername, companyUsername)
		}
		models[i] = model.TransactionFromEntity(t)
	}

	unlock := r.locks.lock(companyUsername)
	defer unlock()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, insertBatchSize).Error
	})
}

// Delete removes one transaction of a company.
func (r *transactionRepository) Delete(ctx context.Context, companyUsername string, id ulid.ULID) error {
	unlock := r.locks.lock(companyUsername)
	defer unlock()

	result := r.db.WithContext(ctx).
		Where("id = ? AND company_username = ?", id.String(), companyUsername).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// DeleteAll removes every transaction of a company.
func (r *transactionRepository) DeleteAll(ctx context.Context, companyUsername string) (int64, error) {
	unlock := r.locks.lock(companyUsername)
	defer unlock()

	result := r.db.WithContext(ctx).
		Where("company_username = ?", companyUsername).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Totals aggregates a company's amounts. The sums are taken in decimal
// arithmetic rather than SQL SUM so results match across drivers.
func (r *transactionRepository) Totals(ctx context.Context, companyUsername string) (*entity.TransactionTotals, error) {
	var rows []struct {
		Type   string
		Amount decimal.Decimal
		Date   time.Time
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("type", "amount", "date").
		Where("company_username = ?", companyUsername).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &entity.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for i, row := range rows {
		if entity.TransactionType(row.Type) == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(row.Amount)
			totals.IncomeCount++
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(row.Amount)
			totals.ExpenseCount++
		}
		if i == 0 || row.Date.Before(totals.FirstDate) {
			totals.FirstDate = row.Date.UTC()
		}
		if i == 0 || row.Date.After(totals.LastDate) {
			totals.LastDate = row.Date.UTC()
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}
