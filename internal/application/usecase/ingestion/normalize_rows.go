package ingestion

import (
	"strings"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

var incomeMarkers = map[string]bool{"income": true, "plus": true, "credit": true}

// NormalizeRows converts data rows into bulk records using a validated mapping.
// Rows whose amount cell does not parse are dropped; non-positive amounts are
// kept and left for the server to reject. Call ValidateMapping first.
func NormalizeRows(rows [][]string, header *Header, mapping valueobject.ColumnMapping, now time.Time) []adapter.BulkRecord {
	col := func(field valueobject.ImportField) (int, bool) {
		label, ok := mapping[field]
		if !ok {
			return 0, false
		}
		idx, ok := header.Columns[strings.TrimSpace(label)]
		return idx, ok
	}
	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	amountCol, _ := col(valueobject.FieldAmount)
	descCol, _ := col(valueobject.FieldDescription)
	dateCol, hasDate := col(valueobject.FieldDate)
	typeCol, hasType := col(valueobject.FieldType)
	catCol, hasCat := col(valueobject.FieldCategory)

	records := make([]adapter.BulkRecord, 0, len(rows))
	for _, row := range rows {
		amount, ok := valueobject.ParseAmount(cell(row, amountCol))
		if !ok {
			continue
		}

		record := adapter.BulkRecord{
			Amount:      amount,
			Type:        string(entity.TransactionTypeExpense),
			Date:        now,
			Description: cell(row, descCol),
		}
		if record.Description == "" {
			record.Description = entity.DefaultImportDescription
		}
		if hasType && incomeMarkers[strings.ToLower(cell(row, typeCol))] {
			record.Type = string(entity.TransactionTypeIncome)
		}
		if hasDate {
			if d, ok := valueobject.ParseDate(cell(row, dateCol)); ok {
				record.Date = d
			}
		}
		if hasCat {
			c := cell(row, catCol)
			record.Category = &c
		}
		records = append(records, record)
	}
	return records
}
