package transaction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/bizledger/backend/internal/application/adapter"
)

// ExportTransactionsInput represents the input for the workbook export.
type ExportTransactionsInput struct {
	CompanyUsername string
	BusinessName    string
}

// ExportTransactionsOutput carries the rendered workbook.
type ExportTransactionsOutput struct {
	FileName string
	Content  []byte
	Rows     int
}

// ExportTransactionsUseCase renders the ledger as a spreadsheet.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	writer          adapter.SpreadsheetWriter
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(transactionRepo adapter.TransactionRepository, writer adapter.SpreadsheetWriter) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		transactionRepo: transactionRepo,
		writer:          writer,
	}
}

// Execute renders every transaction of the company.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.List(ctx, input.CompanyUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	rows := make([]adapter.ExportRow, len(transactions))
	for i, t := range transactions {
		rows[i] = adapter.ExportRow{
			Description: t.Description,
			Amount:      t.Amount,
			Date:        t.Date,
			Type:        string(t.Type),
		}
	}

	var buf bytes.Buffer
	if err := uc.writer.WriteTransactions(&buf, input.BusinessName, rows); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return &ExportTransactionsOutput{
		FileName: exportFileName(input.BusinessName),
		Content:  buf.Bytes(),
		Rows:     len(rows),
	}, nil
}

func exportFileName(businessName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, businessName)
	if name == "" {
		name = "transactions"
	}
	return name + "_Financial_Report.xlsx"
}
