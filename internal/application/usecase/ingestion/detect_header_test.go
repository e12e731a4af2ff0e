package ingestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

func TestDetectHeader(t *testing.T) {
	rules := valueobject.DefaultRuleTable()

	t.Run("skips preamble rows", func(t *testing.T) {
		grid := [][]string{
			{"Company Name", "Acme"},
			{},
			{"Expense Name", "Expense Amount", "Date", "Type"},
			{"Rent", "500", "2024-01-05", "expense"},
		}

		header, err := DetectHeader(grid, rules)
		require.NoError(t, err)
		assert.Equal(t, 2, header.RowIndex)
		assert.Equal(t, []string{"Expense Name", "Expense Amount", "Date", "Type"}, header.Labels)
		assert.Equal(t, 1, header.Columns["Expense Amount"])
		assert.Equal(t, [][]string{{"Rent", "500", "2024-01-05", "expense"}}, header.DataRows(grid))
	})

	t.Run("matches keywords ignoring case and padding", func(t *testing.T) {
		grid := [][]string{{"note"}, {"  AMOUNT ", "", " Memo"}}

		header, err := DetectHeader(grid, rules)
		require.NoError(t, err)
		assert.Equal(t, 1, header.RowIndex)
		assert.Equal(t, []string{"AMOUNT", "Memo"}, header.Labels, "empty cells are dropped from labels")
		assert.Equal(t, 2, header.Columns["Memo"], "column indexes keep their grid position")
	})

	t.Run("later duplicate labels shadow earlier ones", func(t *testing.T) {
		header, err := DetectHeader([][]string{{"Amount", "Description", "Amount"}}, rules)
		require.NoError(t, err)
		assert.Equal(t, 2, header.Columns["Amount"])
	})

	t.Run("substring is not a keyword", func(t *testing.T) {
		_, err := DetectHeader([][]string{{"Amount (USD)", "Descriptions"}}, rules)
		require.Error(t, err)

		var importErr *domainerror.ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, domainerror.ErrCodeHeaderNotDetected, importErr.Code)
	})

	t.Run("empty grid", func(t *testing.T) {
		_, err := DetectHeader(nil, rules)
		assert.True(t, errors.Is(err, domainerror.ErrHeaderNotDetected))
	})

	t.Run("header on last row has no data rows", func(t *testing.T) {
		grid := [][]string{{"x"}, {"description"}}
		header, err := DetectHeader(grid, rules)
		require.NoError(t, err)
		assert.Empty(t, header.DataRows(grid))
	})
}

// The first row holding a whole-cell keyword is always the header.
func TestDetectHeader_FirstKeywordRowProperty(t *testing.T) {
	rules := valueobject.DefaultRuleTable()
	filler := rapid.SampledFrom([]string{"", "foo", "Total", "12.5", "2024-01-01", "Amount due", "descr"})
	keyword := rapid.SampledFrom([]string{"description", "Description", " AMOUNT ", "Amount"})

	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.IntRange(1, 12).Draw(t, "rows")
		headerAt := rapid.IntRange(0, rows-1).Draw(t, "headerAt")

		grid := make([][]string, rows)
		for i := range grid {
			width := rapid.IntRange(0, 5).Draw(t, "width")
			row := make([]string, width)
			for j := range row {
				row[j] = filler.Draw(t, "cell")
			}
			grid[i] = row
		}

		hdr := grid[headerAt]
		pos := rapid.IntRange(0, len(hdr)).Draw(t, "pos")
		hdr = append(hdr[:pos], append([]string{keyword.Draw(t, "keyword")}, hdr[pos:]...)...)
		grid[headerAt] = hdr

		// A later row may also contain a keyword; the first one must still win.
		if headerAt+1 < rows && rapid.Bool().Draw(t, "second") {
			grid[headerAt+1] = append(grid[headerAt+1], "amount")
		}

		header, err := DetectHeader(grid, rules)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if header.RowIndex != headerAt {
			t.Fatalf("header row = %d, want %d (grid %q)", header.RowIndex, headerAt, grid)
		}
		for _, l := range header.Labels {
			if l == "" || strings.TrimSpace(l) != l {
				t.Fatalf("label %q is not trimmed and non-empty", l)
			}
		}
	})
}
