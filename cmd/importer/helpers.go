package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/ingestion"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/adapters"
)

// maxFileBytes bounds local reads; the server applies its own limit per chunk.
const maxFileBytes = 200 << 20

// parsedFile is a spreadsheet read, mapped and normalized on the client.
type parsedFile struct {
	Content  []byte
	Header   *ingestion.Header
	Mapping  valueobject.ColumnMapping
	DataRows int
	Records  []adapter.BulkRecord
}

func loadRules() (valueobject.RuleTable, error) {
	return adapters.LoadRuleTable(viper.GetString("rules"))
}

// parseOverrides turns --map and --ignore flags into mapping overrides.
func parseOverrides(cmd *cobra.Command) (map[valueobject.ImportField]string, error) {
	maps, err := cmd.Flags().GetStringArray("map")
	if err != nil {
		return nil, err
	}
	ignores, err := cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, err
	}

	overrides := make(map[valueobject.ImportField]string)
	for _, m := range maps {
		name, label, ok := strings.Cut(m, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --map %q, expected field=Header", m)
		}
		field, ok := valueobject.ParseImportField(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown field %q in --map", name)
		}
		overrides[field] = strings.TrimSpace(label)
	}
	for _, name := range ignores {
		field, ok := valueobject.ParseImportField(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown field %q in --ignore", name)
		}
		overrides[field] = ""
	}
	return overrides, nil
}

// parseFile reads path and runs detection, mapping and normalization.
func parseFile(path string, rules valueobject.RuleTable, overrides map[valueobject.ImportField]string) (*parsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	grid, err := adapters.NewSpreadsheetReader(maxFileBytes).Read(filepath.Base(path), bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	header, err := ingestion.DetectHeader(grid, rules)
	if err != nil {
		return nil, err
	}

	mapping := ingestion.ProposeMapping(header.Labels, rules).Merge(overrides)
	if err := ingestion.ValidateMapping(mapping, header); err != nil {
		return nil, err
	}

	rows := header.DataRows(grid)
	return &parsedFile{
		Content:  content,
		Header:   header,
		Mapping:  mapping,
		DataRows: len(rows),
		Records:  ingestion.NormalizeRows(rows, header, mapping, time.Now().UTC()),
	}, nil
}

func printMapping(out *os.File, header *ingestion.Header, mapping valueobject.ColumnMapping) {
	fmt.Fprintf(out, "Header row: %d\n", header.RowIndex+1)
	fmt.Fprintf(out, "Columns:    %s\n", strings.Join(header.Labels, " | "))
	for _, field := range valueobject.ImportFields {
		label, ok := mapping[field]
		if !ok {
			label = "(ignored)"
		}
		fmt.Fprintf(out, "  %-12s <- %s\n", field, label)
	}
}
