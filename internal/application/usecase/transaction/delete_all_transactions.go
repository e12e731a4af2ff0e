package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizledger/backend/internal/application/adapter"
)

// DeleteAllTransactionsInput represents the input for wiping a company's ledger.
type DeleteAllTransactionsInput struct {
	CompanyUsername string
	RequestedBy     string
}

// DeleteAllTransactionsOutput represents the output of the wipe.
type DeleteAllTransactionsOutput struct {
	DeletedCount int64
}

// DeleteAllTransactionsUseCase removes every transaction of a company.
type DeleteAllTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteAllTransactionsUseCase creates a new DeleteAllTransactionsUseCase instance.
func NewDeleteAllTransactionsUseCase(transactionRepo adapter.TransactionRepository) *DeleteAllTransactionsUseCase {
	return &DeleteAllTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteAllTransactionsUseCase) Execute(ctx context.Context, input DeleteAllTransactionsInput) (*DeleteAllTransactionsOutput, error) {
	deleted, err := uc.transactionRepo.DeleteAll(ctx, input.CompanyUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to delete transactions: %w", err)
	}

	slog.Info("Deleted all transactions",
		"company", input.CompanyUsername,
		"requested_by", input.RequestedBy,
		"deleted", deleted,
	)

	return &DeleteAllTransactionsOutput{DeletedCount: deleted}, nil
}
