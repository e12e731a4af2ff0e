package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// BulkItem is one element of a bulk import payload, as loosely typed strings.
// Amount may come from a JSON number or a numeric string.
type BulkItem struct {
	Description string
	Amount      string
	Type        string
	Date        string
	Category    string
}

// BulkImportInput represents the input for a bulk import.
type BulkImportInput struct {
	Caller entity.Identity
	Items  []BulkItem
}

// BulkImportOutput represents the result of a bulk import.
type BulkImportOutput struct {
	Imported     int
	Rejected     int
	Transactions []*entity.Transaction
}

// IDs returns the ids of the imported transactions in input order.
func (o *BulkImportOutput) IDs() []string {
	ids := make([]string, len(o.Transactions))
	for i, t := range o.Transactions {
		ids[i] = t.ID.String()
	}
	return ids
}

// BulkImportTransactionsUseCase validates, stamps and appends a batch of transactions.
type BulkImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	ids             adapter.IDGenerator
	rules           valueobject.RuleTable
	maxItems        int
	now             func() time.Time
}

// NewBulkImportTransactionsUseCase creates a new BulkImportTransactionsUseCase instance.
// A maxItems of zero disables the payload limit.
func NewBulkImportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	ids adapter.IDGenerator,
	rules valueobject.RuleTable,
	maxItems int,
) *BulkImportTransactionsUseCase {
	return &BulkImportTransactionsUseCase{
		transactionRepo: transactionRepo,
		ids:             ids,
		rules:           rules,
		maxItems:        maxItems,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithoutItemLimit returns a copy that accepts payloads of any size. Callers
// that bound their input another way, such as by upload size, use it.
func (uc *BulkImportTransactionsUseCase) WithoutItemLimit() *BulkImportTransactionsUseCase {
	unlimited := *uc
	unlimited.maxItems = 0
	return &unlimited
}

// Execute imports every valid item in one atomic append. Invalid items are
// skipped and only counted.
func (uc *BulkImportTransactionsUseCase) Execute(ctx context.Context, input BulkImportInput) (*BulkImportOutput, error) {
	if len(input.Items) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidBulkPayload,
			"Invalid data format: Expected a non-empty array.",
			domainerror.ErrEmptyBulkPayload,
		)
	}
	if uc.maxItems > 0 && len(input.Items) > uc.maxItems {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeBulkPayloadTooLarge,
			fmt.Sprintf("Too many transactions in one request (max %d). Split the import into chunks.", uc.maxItems),
			domainerror.ErrBulkPayloadTooLarge,
		)
	}

	submittedAt := uc.now()
	accepted := make([]*entity.Transaction, 0, len(input.Items))
	for _, item := range input.Items {
		if txn, ok := uc.accept(item, input.Caller, submittedAt); ok {
			accepted = append(accepted, txn)
		}
	}

	if len(accepted) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNoValidTransactions,
			"No valid transactions found (check amounts and headers).",
			domainerror.ErrNoValidTransactions,
		)
	}

	if err := uc.transactionRepo.AppendMany(ctx, input.Caller.CompanyUsername, accepted); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeBulkImportFailed,
			"Internal server error during bulk import",
			err,
		)
	}

	slog.Info("Bulk import completed",
		"company", input.Caller.CompanyUsername,
		"user", input.Caller.Username,
		"accepted", len(accepted),
		"rejected", len(input.Items)-len(accepted),
	)

	return &BulkImportOutput{
		Imported:     len(accepted),
		Rejected:     len(input.Items) - len(accepted),
		Transactions: accepted,
	}, nil
}

// accept builds a transaction from a bulk item, or reports false when the
// amount is missing, non-numeric, not positive once rounded to cents, or too large.
func (uc *BulkImportTransactionsUseCase) accept(item BulkItem, caller entity.Identity, submittedAt time.Time) (*entity.Transaction, bool) {
	parsed, ok := valueobject.ParseAmount(item.Amount)
	if !ok {
		return nil, false
	}
	amount, ok := entity.MoneyAmount(parsed)
	if !ok {
		return nil, false
	}

	description := strings.TrimSpace(item.Description)
	if description == "" {
		description = entity.DefaultImportDescription
	}

	date := submittedAt
	if d, ok := valueobject.ParseDate(item.Date); ok {
		date = d
	}

	category := strings.TrimSpace(item.Category)
	if category == "" {
		category = uc.rules.CategoryFor(description)
	}

	return entity.NewTransaction(
		uc.ids.NewID(),
		caller,
		entity.ParseTransactionType(item.Type),
		amount,
		description,
		date,
		&category,
	), true
}
