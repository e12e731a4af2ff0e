package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	CompanyUsername string
	TransactionID   string
}

// DeleteTransactionUseCase handles single transaction deletion.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute deletes the transaction if it belongs to the caller's company.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	notFound := domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"Transaction not found or unauthorized",
		domainerror.ErrTransactionNotFound,
	)

	id, err := ulid.ParseStrict(input.TransactionID)
	if err != nil {
		return notFound
	}

	if err := uc.transactionRepo.Delete(ctx, input.CompanyUsername, id); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return notFound
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
