// Package ingestion contains the spreadsheet import pipeline: header detection,
// column mapping, row normalization and chunked submission.
package ingestion

import (
	"strings"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// Header describes the detected header row of a grid.
type Header struct {
	// RowIndex is the zero-based position of the header row in the grid.
	RowIndex int
	// Labels holds the trimmed, non-empty header labels in column order.
	Labels []string
	// Columns maps a trimmed label to its column index. A repeated label
	// resolves to its last occurrence.
	Columns map[string]int
}

// DetectHeader returns the first row containing one of the rule table's header
// keywords as a whole cell (trimmed, case-insensitive).
func DetectHeader(grid [][]string, rules valueobject.RuleTable) (*Header, error) {
	for i, row := range grid {
		if !isHeaderRow(row, rules) {
			continue
		}

		header := &Header{
			RowIndex: i,
			Columns:  make(map[string]int, len(row)),
		}
		for col, cell := range row {
			label := strings.TrimSpace(cell)
			if label == "" {
				continue
			}
			header.Labels = append(header.Labels, label)
			header.Columns[label] = col
		}
		return header, nil
	}

	return nil, domainerror.NewImportError(
		domainerror.ErrCodeHeaderNotDetected,
		"Could not detect header row. Make sure the file has a Description or Amount column.",
		domainerror.ErrHeaderNotDetected,
	)
}

func isHeaderRow(row []string, rules valueobject.RuleTable) bool {
	for _, cell := range row {
		if rules.IsHeaderKeyword(strings.ToLower(strings.TrimSpace(cell))) {
			return true
		}
	}
	return false
}

// DataRows returns the rows after the header row.
func (h *Header) DataRows(grid [][]string) [][]string {
	if h.RowIndex+1 >= len(grid) {
		return nil
	}
	return grid[h.RowIndex+1:]
}
