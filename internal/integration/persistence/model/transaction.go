package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// IDs are stored in their 26-character text form.
type TransactionModel struct {
	ID              string          `gorm:"type:varchar(26);primaryKey"`
	CompanyUsername string          `gorm:"type:varchar(100);not null;index:idx_transactions_company_date,priority:1"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Username        string          `gorm:"type:varchar(100);not null"`
	Role            string          `gorm:"type:varchar(20);not null"`
	Type            string          `gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description     string          `gorm:"type:text;not null"`
	Date            time.Time       `gorm:"not null;index:idx_transactions_company_date,priority:2"`
	Category        *string         `gorm:"type:text"`
	ReceiptImage    *string         `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() (*entity.Transaction, error) {
	id, err := ulid.ParseStrict(m.ID)
	if err != nil {
		return nil, err
	}
	return &entity.Transaction{
		ID:              id,
		CompanyUsername: m.CompanyUsername,
		UserID:          m.UserID,
		Username:        m.Username,
		Role:            entity.Role(m.Role),
		Type:            entity.TransactionType(m.Type),
		Amount:          m.Amount,
		Description:     m.Description,
		Date:            m.Date.UTC(),
		Category:        m.Category,
		ReceiptImage:    m.ReceiptImage,
		CreatedAt:       m.CreatedAt,
	}, nil
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              t.ID.String(),
		CompanyUsername: t.CompanyUsername,
		UserID:          t.UserID,
		Username:        t.Username,
		Role:            string(t.Role),
		Type:            string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		Date:            t.Date,
		Category:        t.Category,
		ReceiptImage:    t.ReceiptImage,
		CreatedAt:       t.CreatedAt,
	}
}
