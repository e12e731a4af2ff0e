package ingestion

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/transaction"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// ImportFileInput represents a server-side spreadsheet import.
type ImportFileInput struct {
	Caller   entity.Identity
	FileName string
	Content  io.Reader
	// Overrides replaces proposed columns; an empty label ignores the field.
	Overrides map[valueobject.ImportField]string
}

// ImportFileOutput reports the outcome of a file import.
type ImportFileOutput struct {
	Mapping  valueobject.ColumnMapping
	DataRows int
	Dropped  int
	Result   *transaction.BulkImportOutput
}

// ImportFileUseCase parses an upload and feeds the normalized rows to the bulk importer.
type ImportFileUseCase struct {
	reader     adapter.SpreadsheetReader
	rules      valueobject.RuleTable
	bulkImport *transaction.BulkImportTransactionsUseCase
	now        func() time.Time
}

// NewImportFileUseCase creates a new ImportFileUseCase instance.
// The upload size limit bounds a file, so the bulk item limit does not apply.
func NewImportFileUseCase(
	reader adapter.SpreadsheetReader,
	rules valueobject.RuleTable,
	bulkImport *transaction.BulkImportTransactionsUseCase,
) *ImportFileUseCase {
	return &ImportFileUseCase{
		reader:     reader,
		rules:      rules,
		bulkImport: bulkImport.WithoutItemLimit(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute detects, maps, normalizes and imports the file in one request.
func (uc *ImportFileUseCase) Execute(ctx context.Context, input ImportFileInput) (*ImportFileOutput, error) {
	grid, header, err := readGrid(uc.reader, uc.rules, input.FileName, input.Content)
	if err != nil {
		return nil, err
	}

	mapping := ProposeMapping(header.Labels, uc.rules).Merge(input.Overrides)
	if err := ValidateMapping(mapping, header); err != nil {
		return nil, err
	}

	rows := header.DataRows(grid)
	records := NormalizeRows(rows, header, mapping, uc.now())
	if len(records) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNoValidTransactions,
			"No valid transactions found (check amounts and headers).",
			domainerror.ErrNoValidTransactions,
		)
	}

	result, err := uc.bulkImport.Execute(ctx, transaction.BulkImportInput{
		Caller: input.Caller,
		Items:  ToBulkItems(records),
	})
	if err != nil {
		return nil, err
	}

	return &ImportFileOutput{
		Mapping:  mapping,
		DataRows: len(rows),
		Dropped:  len(rows) - len(records),
		Result:   result,
	}, nil
}

// ToBulkItems converts normalized records into bulk import items.
func ToBulkItems(records []adapter.BulkRecord) []transaction.BulkItem {
	items := make([]transaction.BulkItem, len(records))
	for i, r := range records {
		item := transaction.BulkItem{
			Description: r.Description,
			Amount:      strconv.FormatFloat(r.Amount, 'f', -1, 64),
			Type:        r.Type,
			Date:        r.Date.Format(time.RFC3339Nano),
		}
		if r.Category != nil {
			item.Category = *r.Category
		}
		items[i] = item
	}
	return items
}
