package adapters

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/ingestion"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
)

func TestParseRuleTable(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		rules, err := ParseRuleTable([]byte(`
categories:
  - category: Utilities
    contains: [electric, water]
fallback_category: Misc
`))
		require.NoError(t, err)
		defaults := valueobject.DefaultRuleTable()
		assert.Equal(t, defaults.HeaderKeywords, rules.HeaderKeywords)
		assert.Equal(t, defaults.Columns, rules.Columns)
		assert.Equal(t, "Utilities", rules.CategoryFor("Water bill"))
		assert.Equal(t, "Misc", rules.CategoryFor("Rent"))
	})

	t.Run("header keywords are normalized", func(t *testing.T) {
		rules, err := ParseRuleTable([]byte("header_keywords: ['  Memo ', AMOUNT]\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"memo", "amount"}, rules.HeaderKeywords)
	})

	t.Run("unknown column field", func(t *testing.T) {
		_, err := ParseRuleTable([]byte("columns:\n  - field: payee\n    contains: [to]\n"))
		assert.ErrorContains(t, err, `unknown field "payee"`)
	})

	t.Run("column fields are canonicalized", func(t *testing.T) {
		rules, err := ParseRuleTable([]byte(`
columns:
  - field: Description
    contains: [memo]
  - field: AMOUNT
    contains: [debit]
`))
		require.NoError(t, err)
		require.Len(t, rules.Columns, 2)
		assert.Equal(t, valueobject.FieldDescription, rules.Columns[0].Field)
		assert.Equal(t, valueobject.FieldAmount, rules.Columns[1].Field)

		mapping := ingestion.ProposeMapping([]string{"Memo", "Debit"}, rules)
		assert.Equal(t, "Memo", mapping[valueobject.FieldDescription])
		assert.Equal(t, "Debit", mapping[valueobject.FieldAmount])
		assert.Empty(t, mapping.Missing())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseRuleTable([]byte("columns: [unterminated"))
		assert.Error(t, err)
	})
}

func TestLoadRuleTable(t *testing.T) {
	rules, err := LoadRuleTable("")
	require.NoError(t, err)
	assert.Equal(t, valueobject.DefaultRuleTable(), rules)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fallback_category: General\n"), 0o600))
	rules, err = LoadRuleTable(path)
	require.NoError(t, err)
	assert.Equal(t, "General", rules.FallbackCategory)

	_, err = LoadRuleTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func requireImportCode(t *testing.T, err error, code domainerror.ImportErrorCode) {
	t.Helper()
	var importErr *domainerror.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, code, importErr.Code)
}

func TestSpreadsheetReaderCSV(t *testing.T) {
	reader := NewSpreadsheetReader(0)
	data := "\xEF\xBB\xBFDescription, Amount\n\"Rent, office\",500\nCoffee\n"

	grid, err := reader.Read("ledger.CSV", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Description", "Amount"},
		{"Rent, office", "500"},
		{"Coffee"},
	}, grid)
}

func TestSpreadsheetReaderRejects(t *testing.T) {
	_, err := NewSpreadsheetReader(0).Read("ledger.pdf", strings.NewReader("%PDF"))
	requireImportCode(t, err, domainerror.ErrCodeUnsupportedFormat)

	_, err = NewSpreadsheetReader(4).Read("ledger.csv", strings.NewReader("a,b,c\n"))
	requireImportCode(t, err, domainerror.ErrCodeUnreadableFile)

	_, err = NewSpreadsheetReader(0).Read("ledger.xlsx", strings.NewReader("not a zip"))
	requireImportCode(t, err, domainerror.ErrCodeUnreadableFile)

	_, err = NewSpreadsheetReader(0).Read("ledger.xls", strings.NewReader("not a workbook"))
	requireImportCode(t, err, domainerror.ErrCodeUnreadableFile)
}

func TestSpreadsheetWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rows := []adapter.ExportRow{
		{Description: "Office rent", Amount: decimal.RequireFromString("500"), Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Type: "expense"},
		{Description: "Consulting", Amount: decimal.RequireFromString("1200.5"), Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Type: "income"},
	}
	require.NoError(t, NewSpreadsheetWriter().WriteTransactions(&buf, "Acme Corp", rows))

	grid, err := NewSpreadsheetReader(0).Read("export.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, grid, 5)
	assert.Equal(t, []string{"Company Name", "Acme Corp"}, grid[0])
	assert.Empty(t, grid[1])
	assert.Equal(t, []string{"Expense Name", "Expense Amount", "Date", "Type"}, grid[2])
	assert.Equal(t, []string{"Office rent", "500", "2024-01-05", "expense"}, grid[3])
	assert.Equal(t, []string{"Consulting", "1200.5", "2024-01-09", "income"}, grid[4])
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NoError(t, svc.VerifyPassword(hash, "correct-horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong-horse"))

	assert.Error(t, svc.ValidatePasswordStrength("seven77"))
	assert.NoError(t, svc.ValidatePasswordStrength("eight888"))

	fallback := NewPasswordService(99).(*passwordService)
	assert.Equal(t, bcrypt.DefaultCost, fallback.cost)
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", time.Hour).(*tokenService)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(ctx, userID, "alice", "acme")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "acme", claims.CompanyUsername)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		_, err := other.ValidateAccessToken(ctx, token.Token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, err := svc.GenerateAccessToken(ctx, userID, "alice", "acme")
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(ctx, old.Token)
		assert.Error(t, err)
	})
}

func TestIDGeneratorIsMonotonic(t *testing.T) {
	gen := NewIDGenerator()
	prev := gen.NewID()
	for i := 0; i < 1000; i++ {
		next := gen.NewID()
		require.Equal(t, 1, next.Compare(prev), "ids must strictly increase")
		prev = next
	}
	assert.NotEqual(t, ulid.ULID{}, prev)
}
