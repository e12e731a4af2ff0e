package ingestion

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// previewSampleSize is the number of normalized rows returned with a preview.
const previewSampleSize = 5

// PreviewImportInput represents the input for previewing a spreadsheet import.
type PreviewImportInput struct {
	FileName string
	Content  io.Reader
}

// PreviewImportOutput represents the detected layout of an uploaded file.
type PreviewImportOutput struct {
	HeaderRow int
	Headers   []string
	Mapping   valueobject.ColumnMapping
	Missing   []valueobject.ImportField
	DataRows  int
	Parseable int
	Sample    []adapter.BulkRecord
}

// PreviewImportUseCase detects the header and proposes a column mapping without importing.
type PreviewImportUseCase struct {
	reader adapter.SpreadsheetReader
	rules  valueobject.RuleTable
	now    func() time.Time
}

// NewPreviewImportUseCase creates a new PreviewImportUseCase instance.
func NewPreviewImportUseCase(reader adapter.SpreadsheetReader, rules valueobject.RuleTable) *PreviewImportUseCase {
	return &PreviewImportUseCase{
		reader: reader,
		rules:  rules,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Execute reads the file and returns the proposed mapping.
func (uc *PreviewImportUseCase) Execute(ctx context.Context, input PreviewImportInput) (*PreviewImportOutput, error) {
	grid, header, err := readGrid(uc.reader, uc.rules, input.FileName, input.Content)
	if err != nil {
		return nil, err
	}

	mapping := ProposeMapping(header.Labels, uc.rules)
	rows := header.DataRows(grid)
	output := &PreviewImportOutput{
		HeaderRow: header.RowIndex,
		Headers:   header.Labels,
		Mapping:   mapping,
		Missing:   mapping.Missing(),
		DataRows:  len(rows),
	}

	if len(output.Missing) == 0 {
		records := NormalizeRows(rows, header, mapping, uc.now())
		output.Parseable = len(records)
		if len(records) > previewSampleSize {
			records = records[:previewSampleSize]
		}
		output.Sample = records
	}

	return output, nil
}

// readGrid parses the upload and locates its header row.
func readGrid(reader adapter.SpreadsheetReader, rules valueobject.RuleTable, name string, content io.Reader) ([][]string, *Header, error) {
	grid, err := reader.Read(name, content)
	if err != nil {
		var importErr *domainerror.ImportError
		if errors.As(err, &importErr) {
			return nil, nil, err
		}
		return nil, nil, domainerror.NewImportError(
			domainerror.ErrCodeUnreadableFile,
			"Could not read the uploaded file",
			err,
		)
	}

	header, err := DetectHeader(grid, rules)
	if err != nil {
		return nil, nil, err
	}
	return grid, header, nil
}
