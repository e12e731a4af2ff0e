package adapter

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// SpreadsheetReader turns an uploaded file into a grid of cell strings.
// The file extension of name selects the format.
type SpreadsheetReader interface {
	Read(name string, r io.Reader) ([][]string, error)
}

// ExportRow is one transaction line of an exported workbook.
type ExportRow struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        string
}

// SpreadsheetWriter renders transactions as a workbook.
type SpreadsheetWriter interface {
	WriteTransactions(w io.Writer, businessName string, rows []ExportRow) error
}
