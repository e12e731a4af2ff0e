package adapters

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/bizledger/backend/internal/application/adapter"
)

const exportSheet = "Transactions"

// ExportHeader is the column header row of exported workbooks. The import
// header detection recognizes it, so exports can be imported again.
var ExportHeader = []interface{}{"Expense Name", "Expense Amount", "Date", "Type"}

// spreadsheetWriter implements adapter.SpreadsheetWriter with excelize.
type spreadsheetWriter struct{}

// NewSpreadsheetWriter creates a new xlsx writer.
func NewSpreadsheetWriter() adapter.SpreadsheetWriter {
	return &spreadsheetWriter{}
}

// WriteTransactions writes a company banner row, a blank row, the header and one row per transaction.
func (w *spreadsheetWriter) WriteTransactions(out io.Writer, businessName string, rows []adapter.ExportRow) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := book.SetSheetRow(exportSheet, "A1", &[]interface{}{"Company Name", businessName}); err != nil {
		return fmt.Errorf("failed to write banner: %w", err)
	}
	if err := book.SetSheetRow(exportSheet, "A3", &ExportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		values := []interface{}{r.Description, r.Amount.InexactFloat64(), r.Date.Format("2006-01-02"), r.Type}
		if err := book.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := book.SetColWidth(exportSheet, "A", "A", 40); err != nil {
		return err
	}
	return book.Write(out)
}
