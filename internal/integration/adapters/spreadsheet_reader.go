package adapters

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// spreadsheetReader implements adapter.SpreadsheetReader for xlsx, xls and csv.
type spreadsheetReader struct {
	maxBytes int64
}

// NewSpreadsheetReader creates a reader that refuses inputs larger than maxBytes.
// A non-positive maxBytes disables the limit.
func NewSpreadsheetReader(maxBytes int64) adapter.SpreadsheetReader {
	return &spreadsheetReader{maxBytes: maxBytes}
}

// Read returns the first sheet of the file as rows of cell strings.
func (s *spreadsheetReader) Read(name string, r io.Reader) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx", ".xlsm", ".xls", ".csv", ".txt":
	default:
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file type %q (use .xlsx, .xls or .csv)", ext),
			domainerror.ErrUnsupportedFormat,
		)
	}

	data, err := s.readAll(r)
	if err != nil {
		return nil, err
	}

	var grid [][]string
	switch ext {
	case ".xlsx", ".xlsm":
		grid, err = parseXLSX(data)
	case ".xls":
		grid, err = parseXLS(data)
	default:
		grid, err = parseCSV(data)
	}
	if err != nil {
		return nil, domainerror.NewImportError(domainerror.ErrCodeUnreadableFile, "Could not read "+filepath.Base(name), err)
	}
	return grid, nil
}

func (s *spreadsheetReader) readAll(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeUnreadableFile,
			fmt.Sprintf("File exceeds the %d byte upload limit", s.maxBytes),
			nil,
		)
	}
	return data, nil
}

func parseXLSX(data []byte) ([][]string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return book.GetRows(sheet)
}

func parseXLS(data []byte) ([][]string, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}
