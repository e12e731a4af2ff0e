package ingestion

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

func TestProposeMapping(t *testing.T) {
	rules := valueobject.DefaultRuleTable()

	tests := []struct {
		name     string
		labels   []string
		expected valueobject.ColumnMapping
	}{
		{
			name:   "export layout",
			labels: []string{"Expense Name", "Expense Amount", "Date", "Type"},
			expected: valueobject.ColumnMapping{
				valueobject.FieldDescription: "Expense Name",
				valueobject.FieldAmount:      "Expense Amount",
				valueobject.FieldDate:        "Date",
				valueobject.FieldType:        "Type",
			},
		},
		{
			name:   "bank statement",
			labels: []string{"Transaction Date", "Description", "Amt", "Category"},
			expected: valueobject.ColumnMapping{
				valueobject.FieldDescription: "Description",
				valueobject.FieldAmount:      "Amt",
				valueobject.FieldDate:        "Transaction Date",
				valueobject.FieldCategory:    "Category",
			},
		},
		{
			name:   "last matching header wins",
			labels: []string{"Description", "Amount", "Income Source", "Value"},
			expected: valueobject.ColumnMapping{
				valueobject.FieldDescription: "Income Source",
				valueobject.FieldAmount:      "Value",
			},
		},
		{
			name:   "one header can feed several fields",
			labels: []string{"Amount", "Category Name"},
			expected: valueobject.ColumnMapping{
				valueobject.FieldAmount:      "Amount",
				valueobject.FieldDescription: "Category Name",
				valueobject.FieldCategory:    "Category Name",
			},
		},
		{
			name:     "nothing recognized",
			labels:   []string{"Foo", "Bar"},
			expected: valueobject.ColumnMapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProposeMapping(tt.labels, rules))
		})
	}
}

// The proposal depends only on the header strings.
func TestProposeMapping_DeterministicProperty(t *testing.T) {
	rules := valueobject.DefaultRuleTable()
	label := rapid.SampledFrom([]string{
		"Description", "Name", "Amount", "Amt", "Value", "Date", "Time", "Type",
		"Category", "Memo", "Balance", "Income Source", "Posted", "",
	})

	rapid.Check(t, func(t *rapid.T) {
		labels := rapid.SliceOf(label).Draw(t, "labels")
		copied := append([]string(nil), labels...)

		first := ProposeMapping(labels, rules)
		second := ProposeMapping(copied, rules)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("mapping differs for identical headers: %v vs %v", first, second)
		}
		for field, l := range first {
			found := false
			for _, candidate := range labels {
				if candidate == l {
					found = true
				}
			}
			if !found {
				t.Fatalf("field %s mapped to %q which is not a header", field, l)
			}
		}
	})
}

func TestValidateMapping(t *testing.T) {
	header := &Header{
		Labels:  []string{"Name", "Amount"},
		Columns: map[string]int{"Name": 0, "Amount": 1},
	}

	t.Run("valid", func(t *testing.T) {
		err := ValidateMapping(valueobject.ColumnMapping{
			valueobject.FieldDescription: "Name",
			valueobject.FieldAmount:      " Amount ",
		}, header)
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateMapping(valueobject.ColumnMapping{valueobject.FieldDescription: "Name"}, header)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrMappingIncomplete))
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("unknown column", func(t *testing.T) {
		err := ValidateMapping(valueobject.ColumnMapping{
			valueobject.FieldDescription: "Name",
			valueobject.FieldAmount:      "Debit",
		}, header)
		var importErr *domainerror.ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, domainerror.ErrCodeUnknownColumn, importErr.Code)
	})
}
