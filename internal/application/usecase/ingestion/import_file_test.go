package ingestion

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/transaction"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/infra/db"
	"github.com/bizledger/backend/internal/integration/adapters"
	"github.com/bizledger/backend/internal/integration/persistence"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

var importer = entity.Identity{
	UserID:          uuid.MustParse("0b7f3c52-8f7e-4b8a-9c43-2d5f0e1a6b21"),
	Username:        "alice",
	CompanyUsername: "acme",
	Role:            entity.RoleAdmin,
}

func newTransactionRepo(t *testing.T) adapter.TransactionRepository {
	t.Helper()
	database, err := db.NewConnection(&config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate(model.All()...))
	return persistence.NewTransactionRepository(database.DB())
}

func ledgerCSV(rows int) string {
	var b strings.Builder
	b.WriteString("Description,Amount,Date\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "Item %d,%d.50,2024-01-05\n", i, i+1)
	}
	return b.String()
}

func TestImportFile_IgnoresBulkItemLimit(t *testing.T) {
	const maxItems = 50
	repo := newTransactionRepo(t)
	rules := valueobject.DefaultRuleTable()
	bulk := transaction.NewBulkImportTransactionsUseCase(repo, adapters.NewIDGenerator(), rules, maxItems)
	uc := NewImportFileUseCase(adapters.NewSpreadsheetReader(0), rules, bulk)

	out, err := uc.Execute(context.Background(), ImportFileInput{
		Caller:   importer,
		FileName: "ledger.csv",
		Content:  strings.NewReader(ledgerCSV(maxItems + 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, maxItems+1, out.Result.Imported)
	assert.Equal(t, maxItems+1, out.DataRows)
	assert.Zero(t, out.Dropped)

	stored, err := repo.List(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, stored, maxItems+1)

	t.Run("bulk endpoint keeps its limit", func(t *testing.T) {
		items := make([]transaction.BulkItem, maxItems+1)
		for i := range items {
			items[i] = transaction.BulkItem{Description: "x", Amount: "1"}
		}
		_, err := bulk.Execute(context.Background(), transaction.BulkImportInput{Caller: importer, Items: items})
		assert.ErrorIs(t, err, domainerror.ErrBulkPayloadTooLarge)
	})
}

func TestImportFile_MissingAmountColumn(t *testing.T) {
	repo := newTransactionRepo(t)
	rules := valueobject.DefaultRuleTable()
	bulk := transaction.NewBulkImportTransactionsUseCase(repo, adapters.NewIDGenerator(), rules, 0)
	uc := NewImportFileUseCase(adapters.NewSpreadsheetReader(0), rules, bulk)

	_, err := uc.Execute(context.Background(), ImportFileInput{
		Caller:   importer,
		FileName: "ledger.csv",
		Content:  strings.NewReader("Description,Total\nRent,500\n"),
	})
	assert.ErrorIs(t, err, domainerror.ErrMappingIncomplete)

	out, err := uc.Execute(context.Background(), ImportFileInput{
		Caller:    importer,
		FileName:  "ledger.csv",
		Content:   strings.NewReader("Description,Total\nRent,500\n"),
		Overrides: map[valueobject.ImportField]string{valueobject.FieldAmount: "Total"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Result.Imported)
}
