package adapters

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bizledger/backend/internal/domain/valueobject"
)

// LoadRuleTable reads a YAML rule table. An empty path yields the default table.
// Sections left out of the file keep their defaults.
func LoadRuleTable(path string) (valueobject.RuleTable, error) {
	rules := valueobject.DefaultRuleTable()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rule file: %w", err)
	}
	return ParseRuleTable(data)
}

// ParseRuleTable decodes YAML rules over the default table.
func ParseRuleTable(data []byte) (valueobject.RuleTable, error) {
	var override valueobject.RuleTable
	if err := yaml.Unmarshal(data, &override); err != nil {
		return valueobject.DefaultRuleTable(), fmt.Errorf("failed to parse rule file: %w", err)
	}

	rules := valueobject.DefaultRuleTable()
	if len(override.HeaderKeywords) > 0 {
		rules.HeaderKeywords = rules.HeaderKeywords[:0]
		for _, kw := range override.HeaderKeywords {
			rules.HeaderKeywords = append(rules.HeaderKeywords, strings.ToLower(strings.TrimSpace(kw)))
		}
	}
	if len(override.Columns) > 0 {
		columns := make([]valueobject.ColumnRule, 0, len(override.Columns))
		for _, c := range override.Columns {
			field, ok := valueobject.ParseImportField(string(c.Field))
			if !ok {
				return valueobject.DefaultRuleTable(), fmt.Errorf("unknown field %q in column rules", c.Field)
			}
			c.Field = field
			columns = append(columns, c)
		}
		rules.Columns = columns
	}
	if len(override.Categories) > 0 {
		rules.Categories = override.Categories
	}
	if override.FallbackCategory != "" {
		rules.FallbackCategory = override.FallbackCategory
	}
	return rules, nil
}
