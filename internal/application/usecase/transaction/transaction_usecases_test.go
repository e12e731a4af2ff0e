package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

func seed(repo *memoryRepo, company string, typ entity.TransactionType, amount string, date time.Time) *entity.Transaction {
	who := caller
	who.CompanyUsername = company
	txn := entity.NewTransaction(ulid.Make(), who, typ, decimal.RequireFromString(amount), "seed", date, nil)
	repo.rows = append(repo.rows, txn)
	return txn
}

func TestCreateTransaction(t *testing.T) {
	repo := &memoryRepo{}
	uc := NewCreateTransactionUseCase(repo, sequentialIDs{})

	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		Caller:       caller,
		Type:         "Income",
		Amount:       "1,500.25",
		Description:  " Invoice 12 ",
		Date:         "2024-04-02",
		Category:     "Sales",
		ReceiptImage: "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)

	txn := out.Transaction
	assert.Equal(t, entity.TransactionTypeIncome, txn.Type)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(txn.Amount))
	assert.Equal(t, "Invoice 12", txn.Description)
	assert.Equal(t, "Sales", *txn.Category)
	require.NotNil(t, txn.ReceiptImage)
	assert.Len(t, repo.rows, 1)

	t.Run("missing type", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{Caller: caller, Amount: "10"})
		assert.ErrorIs(t, err, domainerror.ErrMissingTransactionFields)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{Caller: caller, Type: "expense", Amount: "-1"})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
	})

	t.Run("amount below one cent", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{Caller: caller, Type: "expense", Amount: "0.004"})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
		assert.Len(t, repo.rows, 1)
	})
}

func TestListTransactions_TenantIsolation(t *testing.T) {
	repo := &memoryRepo{}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(repo, "acme", entity.TransactionTypeExpense, "10", day)
	seed(repo, "globex", entity.TransactionTypeExpense, "20", day)

	out, err := NewListTransactionsUseCase(repo).Execute(context.Background(), ListTransactionsInput{CompanyUsername: "acme"})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "acme", out.Transactions[0].CompanyUsername)
}

func TestDeleteTransaction(t *testing.T) {
	repo := &memoryRepo{}
	txn := seed(repo, "acme", entity.TransactionTypeExpense, "10", time.Now())
	uc := NewDeleteTransactionUseCase(repo)

	err := uc.Execute(context.Background(), DeleteTransactionInput{CompanyUsername: "globex", TransactionID: txn.ID.String()})
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, "Transaction not found or unauthorized", txnErr.Message)

	err = uc.Execute(context.Background(), DeleteTransactionInput{CompanyUsername: "acme", TransactionID: "not-a-ulid"})
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	require.NoError(t, uc.Execute(context.Background(), DeleteTransactionInput{CompanyUsername: "acme", TransactionID: txn.ID.String()}))
	assert.Empty(t, repo.rows)
}

func TestDeleteAllTransactions(t *testing.T) {
	repo := &memoryRepo{}
	seed(repo, "acme", entity.TransactionTypeExpense, "1", time.Now())
	seed(repo, "acme", entity.TransactionTypeIncome, "2", time.Now())
	seed(repo, "globex", entity.TransactionTypeIncome, "3", time.Now())

	out, err := NewDeleteAllTransactionsUseCase(repo).Execute(context.Background(), DeleteAllTransactionsInput{CompanyUsername: "acme"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.DeletedCount)
	assert.Len(t, repo.rows, 1)
}

func TestGetSummary(t *testing.T) {
	repo := &memoryRepo{}
	seed(repo, "acme", entity.TransactionTypeIncome, "1000", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	seed(repo, "acme", entity.TransactionTypeIncome, "500", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	seed(repo, "acme", entity.TransactionTypeExpense, "300", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	out, err := NewGetSummaryUseCase(repo).Execute(context.Background(), GetSummaryInput{CompanyUsername: "acme"})
	require.NoError(t, err)

	assert.Equal(t, "1500", out.IncomeTotal.String())
	assert.Equal(t, "300", out.ExpenseTotal.String())
	assert.Equal(t, "1200", out.NetTotal.String())
	assert.Equal(t, "750", out.AverageIncome.String())
	assert.Equal(t, 3, out.MonthsCovered)
	assert.Equal(t, "4800", out.ProjectedYearNet.String())

	empty, err := NewGetSummaryUseCase(repo).Execute(context.Background(), GetSummaryInput{CompanyUsername: "nobody"})
	require.NoError(t, err)
	assert.True(t, empty.ProjectedYearNet.IsZero())
	assert.Equal(t, 0, empty.MonthsCovered)
}

func TestExportTransactions(t *testing.T) {
	repo := &memoryRepo{}
	seed(repo, "acme", entity.TransactionTypeExpense, "42.5", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	writer := &recordingWriter{}

	out, err := NewExportTransactionsUseCase(repo, writer).Execute(context.Background(), ExportTransactionsInput{
		CompanyUsername: "acme",
		BusinessName:    "Acme Corp!",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Rows)
	assert.Equal(t, []byte("xlsx"), out.Content)
	assert.Contains(t, out.FileName, "Acme_Corp")
	assert.Equal(t, "Acme Corp!", writer.business)
	require.Len(t, writer.rows, 1)
	assert.Equal(t, "expense", writer.rows[0].Type)

	_, err = NewExportTransactionsUseCase(repo, writer).Execute(context.Background(), ExportTransactionsInput{
		CompanyUsername: "acme",
		BusinessName:    "fail",
	})
	assert.Error(t, err)
}
