package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for manual transaction entry.
type CreateTransactionInput struct {
	Caller       entity.Identity
	Type         string
	Amount       string
	Description  string
	Date         string
	Category     string
	ReceiptImage string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles manual transaction entry.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	ids             adapter.IDGenerator
	now             func() time.Time
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository, ids adapter.IDGenerator) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		ids:             ids,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute validates and stores the transaction.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if strings.TrimSpace(input.Type) == "" || strings.TrimSpace(input.Amount) == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"Missing fields",
			domainerror.ErrMissingTransactionFields,
		)
	}

	parsed, ok := valueobject.ParseAmount(input.Amount)
	amount, positive := entity.MoneyAmount(parsed)
	if !ok || !positive {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"Amount must be a positive number",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	date := uc.now()
	if d, ok := valueobject.ParseDate(input.Date); ok {
		date = d
	}

	var category *string
	if c := strings.TrimSpace(input.Category); c != "" {
		category = &c
	}

	txn := entity.NewTransaction(
		uc.ids.NewID(),
		input.Caller,
		entity.ParseTransactionType(input.Type),
		amount,
		strings.TrimSpace(input.Description),
		date,
		category,
	)
	if input.ReceiptImage != "" {
		receipt := input.ReceiptImage
		txn.ReceiptImage = &receipt
	}

	if err := uc.transactionRepo.Append(ctx, txn); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternal,
			"failed to save transaction",
			err,
		)
	}

	return &CreateTransactionOutput{Transaction: txn}, nil
}
