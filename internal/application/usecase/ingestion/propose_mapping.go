package ingestion

import (
	"fmt"
	"strings"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

// ProposeMapping runs every header through the ordered column rules. When several
// headers match the same field the last one wins.
func ProposeMapping(labels []string, rules valueobject.RuleTable) valueobject.ColumnMapping {
	mapping := make(valueobject.ColumnMapping)
	for _, label := range labels {
		for _, rule := range rules.Columns {
			if rule.Matches(label) {
				mapping[rule.Field] = label
			}
		}
	}
	return mapping
}

// ValidateMapping checks that the required fields are mapped and that every
// mapped label exists in the header.
func ValidateMapping(mapping valueobject.ColumnMapping, header *Header) error {
	if missing := mapping.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return domainerror.NewImportError(
			domainerror.ErrCodeMappingIncomplete,
			fmt.Sprintf("Please map the required columns: %s", strings.Join(names, ", ")),
			domainerror.ErrMappingIncomplete,
		)
	}

	for field, label := range mapping {
		if _, ok := header.Columns[strings.TrimSpace(label)]; !ok {
			return domainerror.NewImportError(
				domainerror.ErrCodeUnknownColumn,
				fmt.Sprintf("column %q mapped to %s is not in the header", label, field),
				domainerror.ErrUnknownColumn,
			)
		}
	}
	return nil
}
