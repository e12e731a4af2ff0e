package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleTable_IsHeaderKeyword(t *testing.T) {
	rules := DefaultRuleTable()

	for _, kw := range []string{"description", "amount", "expense name", "income source"} {
		assert.True(t, rules.IsHeaderKeyword(kw), kw)
	}
	// Whole-cell match only
	assert.False(t, rules.IsHeaderKeyword("amount (usd)"))
	assert.False(t, rules.IsHeaderKeyword("desc"))
}

func TestRuleTable_CategoryFor(t *testing.T) {
	rules := DefaultRuleTable()

	assert.Equal(t, "Rent", rules.CategoryFor("Office RENT March"))
	assert.Equal(t, "Rent", rules.CategoryFor("car rental"))
	assert.Equal(t, "Other", rules.CategoryFor("Coffee beans"))

	rules.Categories = append([]CategoryRule{{Category: "Travel", Contains: []string{"rental"}}}, rules.Categories...)
	assert.Equal(t, "Travel", rules.CategoryFor("car rental"), "first matching rule wins")
}

func TestColumnRule_Matches(t *testing.T) {
	rule := ColumnRule{Field: FieldAmount, Contains: []string{"amt", "amount", ""}}

	assert.True(t, rule.Matches("Debit Amt"))
	assert.True(t, rule.Matches("AMOUNT"))
	assert.False(t, rule.Matches("Balance"))
}

func TestParseImportField(t *testing.T) {
	f, ok := ParseImportField(" Category ")
	assert.True(t, ok)
	assert.Equal(t, FieldCategory, f)

	_, ok = ParseImportField("balance")
	assert.False(t, ok)
}

func TestColumnMapping_Missing(t *testing.T) {
	assert.Equal(t, []ImportField{FieldDescription, FieldAmount}, ColumnMapping{}.Missing())
	assert.Equal(t, []ImportField{FieldAmount}, ColumnMapping{FieldDescription: "Name", FieldAmount: "  "}.Missing())
	assert.Empty(t, ColumnMapping{FieldDescription: "Name", FieldAmount: "Value"}.Missing())
}

func TestColumnMapping_Merge(t *testing.T) {
	proposed := ColumnMapping{
		FieldDescription: "Expense Name",
		FieldAmount:      "Expense Amount",
		FieldDate:        "Date",
		FieldType:        "Type",
	}

	merged := proposed.Merge(map[ImportField]string{
		FieldAmount:   "Debit",
		FieldType:     "",
		FieldCategory: "Group",
	})

	assert.Equal(t, ColumnMapping{
		FieldDescription: "Expense Name",
		FieldAmount:      "Debit",
		FieldDate:        "Date",
		FieldCategory:    "Group",
	}, merged)
	assert.Equal(t, "Expense Amount", proposed[FieldAmount], "original mapping is not modified")
	assert.Equal(t, "Type", proposed[FieldType])
}
