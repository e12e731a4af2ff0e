// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// DefaultImportDescription is used when an imported row carries no description.
const DefaultImportDescription = "Imported Transaction"

// maxAmount is the first value that no longer fits the decimal(15,2) amount column.
var maxAmount = decimal.New(1, 13)

// MoneyAmount rounds a parsed amount to cents. It reports false when the rounded
// amount is not positive or does not fit the amount column.
func MoneyAmount(v float64) (decimal.Decimal, bool) {
	d := decimal.NewFromFloat(v).Round(2)
	return d, d.IsPositive() && d.LessThan(maxAmount)
}

// ParseTransactionType maps "income" (any case) to income and anything else to expense.
func ParseTransactionType(s string) TransactionType {
	if strings.EqualFold(strings.TrimSpace(s), string(TransactionTypeIncome)) {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

// Transaction is a single income or expense record of a company.
// UserID, Username and Role are a snapshot of the submitter at creation time.
type Transaction struct {
	ID              ulid.ULID
	CompanyUsername string
	UserID          uuid.UUID
	Username        string
	Role            Role
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	Date            time.Time
	Category        *string
	ReceiptImage    *string
	CreatedAt       time.Time
}

// NewTransaction creates a transaction stamped with the caller identity.
func NewTransaction(
	id ulid.ULID,
	who Identity,
	transactionType TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	category *string,
) *Transaction {
	return &Transaction{
		ID:              id,
		CompanyUsername: who.CompanyUsername,
		UserID:          who.UserID,
		Username:        who.Username,
		Role:            who.Role,
		Type:            transactionType,
		Amount:          amount,
		Description:     description,
		Date:            date,
		Category:        category,
		CreatedAt:       time.Now().UTC(),
	}
}

// TransactionTotals represents aggregated totals for a set of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
	IncomeCount  int
	ExpenseCount int
	FirstDate    time.Time
	LastDate     time.Time
}
