package dto

import (
	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/ingestion"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// ImportPreviewResponse describes what the server detected in an upload.
type ImportPreviewResponse struct {
	HeaderRow int                  `json:"headerRow"`
	Headers   []string             `json:"headers"`
	Mapping   map[string]string    `json:"mapping"`
	Missing   []string             `json:"missing"`
	DataRows  int                  `json:"dataRows"`
	Parseable int                  `json:"parseable"`
	Sample    []adapter.BulkRecord `json:"sample"`
}

// FileImportResponse represents the response body of a server-side file import.
type FileImportResponse struct {
	BulkImportResponse
	Mapping  map[string]string `json:"mapping"`
	DataRows int               `json:"dataRows"`
	Dropped  int               `json:"dropped"`
}

// ToMappingMap converts a column mapping for JSON output.
func ToMappingMap(m valueobject.ColumnMapping) map[string]string {
	out := make(map[string]string, len(m))
	for field, label := range m {
		out[string(field)] = label
	}
	return out
}

// ToImportPreviewResponse converts the preview output.
func ToImportPreviewResponse(o *ingestion.PreviewImportOutput) ImportPreviewResponse {
	missing := make([]string, len(o.Missing))
	for i, f := range o.Missing {
		missing[i] = string(f)
	}
	sample := o.Sample
	if sample == nil {
		sample = []adapter.BulkRecord{}
	}
	return ImportPreviewResponse{
		HeaderRow: o.HeaderRow,
		Headers:   o.Headers,
		Mapping:   ToMappingMap(o.Mapping),
		Missing:   missing,
		DataRows:  o.DataRows,
		Parseable: o.Parseable,
		Sample:    sample,
	}
}
