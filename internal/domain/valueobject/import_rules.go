// Package valueobject contains domain value objects for the bookkeeping system.
package valueobject

import "strings"

// ImportField is a logical transaction field that a spreadsheet column can feed.
type ImportField string

const (
	FieldDescription ImportField = "description"
	FieldAmount      ImportField = "amount"
	FieldDate        ImportField = "date"
	FieldType        ImportField = "type"
	FieldCategory    ImportField = "category"
)

// ImportFields lists every mappable field in display order.
var ImportFields = []ImportField{FieldDescription, FieldAmount, FieldDate, FieldType, FieldCategory}

// RequiredImportFields must be mapped before rows can be normalized.
var RequiredImportFields = []ImportField{FieldDescription, FieldAmount}

// ParseImportField matches a field name case-insensitively.
func ParseImportField(s string) (ImportField, bool) {
	for _, f := range ImportFields {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, true
		}
	}
	return "", false
}

// ColumnRule proposes Field for any header containing one of Contains (lower-case substrings).
type ColumnRule struct {
	Field    ImportField `yaml:"field" json:"field"`
	Contains []string    `yaml:"contains" json:"contains"`
}

// Matches reports whether the lower-cased header contains any of the rule's substrings.
func (r ColumnRule) Matches(header string) bool {
	h := strings.ToLower(header)
	for _, kw := range r.Contains {
		if kw != "" && strings.Contains(h, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CategoryRule assigns Category to descriptions containing one of Contains.
type CategoryRule struct {
	Category string   `yaml:"category" json:"category"`
	Contains []string `yaml:"contains" json:"contains"`
}

// Matches reports whether the description contains any of the rule's substrings, ignoring case.
func (r CategoryRule) Matches(description string) bool {
	d := strings.ToLower(description)
	for _, kw := range r.Contains {
		if kw != "" && strings.Contains(d, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RuleTable is the ordered rule set driving header detection, column proposal
// and category inference.
type RuleTable struct {
	// HeaderKeywords are matched against whole trimmed lower-cased cells.
	HeaderKeywords   []string       `yaml:"header_keywords" json:"headerKeywords"`
	Columns          []ColumnRule   `yaml:"columns" json:"columns"`
	Categories       []CategoryRule `yaml:"categories" json:"categories"`
	FallbackCategory string         `yaml:"fallback_category" json:"fallbackCategory"`
}

// DefaultRuleTable returns the built-in rules.
func DefaultRuleTable() RuleTable {
	return RuleTable{
		HeaderKeywords: []string{"description", "amount", "expense name", "income source"},
		Columns: []ColumnRule{
			{Field: FieldDescription, Contains: []string{"desc", "name", "source"}},
			{Field: FieldAmount, Contains: []string{"amt", "amount", "value"}},
			{Field: FieldDate, Contains: []string{"date", "time"}},
			{Field: FieldType, Contains: []string{"type"}},
			{Field: FieldCategory, Contains: []string{"cat"}},
		},
		Categories: []CategoryRule{
			{Category: "Rent", Contains: []string{"rent"}},
		},
		FallbackCategory: "Other",
	}
}

// IsHeaderKeyword reports whether a normalized cell is one of the header keywords.
func (t RuleTable) IsHeaderKeyword(cell string) bool {
	for _, kw := range t.HeaderKeywords {
		if cell == kw {
			return true
		}
	}
	return false
}

// CategoryFor returns the first matching category rule, or the fallback.
func (t RuleTable) CategoryFor(description string) string {
	for _, r := range t.Categories {
		if r.Matches(description) {
			return r.Category
		}
	}
	return t.FallbackCategory
}

// ColumnMapping maps import fields to header labels. An absent field is ignored.
type ColumnMapping map[ImportField]string

// Missing returns the required fields that are not mapped, in order.
func (m ColumnMapping) Missing() []ImportField {
	var missing []ImportField
	for _, f := range RequiredImportFields {
		if strings.TrimSpace(m[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Merge returns a copy of m with overrides applied. An empty override value
// means "ignore this field".
func (m ColumnMapping) Merge(overrides map[ImportField]string) ColumnMapping {
	out := make(ColumnMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		if strings.TrimSpace(v) == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}
