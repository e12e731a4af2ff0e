package dto

import (
	"time"

	"github.com/bizledger/backend/internal/application/usecase/transaction"
	"github.com/bizledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type         string      `json:"type"`
	Amount       LooseString `json:"amount"`
	Description  string      `json:"description"`
	Date         LooseString `json:"date"`
	Category     *string     `json:"category,omitempty"`
	ReceiptImage *string     `json:"receiptImage,omitempty"`
}

// BulkTransactionItem is one element of the bulk import array.
type BulkTransactionItem struct {
	Description LooseString `json:"description"`
	Amount      LooseString `json:"amount"`
	Type        LooseString `json:"type"`
	Date        LooseString `json:"date"`
	Category    LooseString `json:"category"`
}

// BulkImportResponse represents the response body of a successful bulk import.
type BulkImportResponse struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Rejected int      `json:"rejected"`
	IDs      []string `json:"ids"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	CompanyUsername string    `json:"companyUsername"`
	UserID          string    `json:"userId"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Category        *string   `json:"category"`
	ReceiptImage    *string   `json:"receiptImage,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DeleteAllResponse represents the response body for deleting every transaction.
type DeleteAllResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// SummaryResponse represents the ledger summary.
type SummaryResponse struct {
	IncomeTotal      float64 `json:"incomeTotal"`
	ExpenseTotal     float64 `json:"expenseTotal"`
	NetTotal         float64 `json:"netTotal"`
	IncomeCount      int     `json:"incomeCount"`
	ExpenseCount     int     `json:"expenseCount"`
	AverageIncome    float64 `json:"averageIncome"`
	AverageExpense   float64 `json:"averageExpense"`
	MonthsCovered    int     `json:"monthsCovered"`
	ProjectedYearNet float64 `json:"projectedYearNet"`
}

// ToBulkItems converts request items into use case items.
func ToBulkItems(items []BulkTransactionItem) []transaction.BulkItem {
	out := make([]transaction.BulkItem, len(items))
	for i, it := range items {
		out[i] = transaction.BulkItem{
			Description: string(it.Description),
			Amount:      it.Amount.String(),
			Type:        it.Type.String(),
			Date:        it.Date.String(),
			Category:    it.Category.String(),
		}
	}
	return out
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID.String(),
		CompanyUsername: t.CompanyUsername,
		UserID:          t.UserID.String(),
		Username:        t.Username,
		Role:            string(t.Role),
		Type:            string(t.Type),
		Amount:          t.Amount.InexactFloat64(),
		Description:     t.Description,
		Date:            t.Date,
		Category:        t.Category,
		ReceiptImage:    t.ReceiptImage,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// ToSummaryResponse converts the summary output.
func ToSummaryResponse(s *transaction.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		IncomeTotal:      s.IncomeTotal.InexactFloat64(),
		ExpenseTotal:     s.ExpenseTotal.InexactFloat64(),
		NetTotal:         s.NetTotal.InexactFloat64(),
		IncomeCount:      s.IncomeCount,
		ExpenseCount:     s.ExpenseCount,
		AverageIncome:    s.AverageIncome.InexactFloat64(),
		AverageExpense:   s.AverageExpense.InexactFloat64(),
		MonthsCovered:    s.MonthsCovered,
		ProjectedYearNet: s.ProjectedYearNet.InexactFloat64(),
	}
}
