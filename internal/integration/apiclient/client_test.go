package apiclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/test/integration/mock"
)

func startServer(t *testing.T) *mock.ApiMock {
	t.Helper()
	server := mock.NewApiServer()
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func TestLogin(t *testing.T) {
	server := startServer(t)
	server.SetResponse(0, http.MethodPost, "/api/auth/login", http.StatusOK, map[string]any{"token": "jwt-123"})
	server.SetResponse(1, http.MethodPost, "/api/auth/login", http.StatusUnauthorized, map[string]any{"message": "Invalid credentials or Company ID"})

	client := New(server.GetUrl()+"/", "")
	require.NoError(t, client.Login(context.Background(), "alice", "secret", "acme"))
	assert.Equal(t, "jwt-123", client.Token())

	body := server.GetRequestBody(http.MethodPost, "/api/auth/login", 0)
	assert.Equal(t, map[string]any{"username": "alice", "password": "secret", "companyUsername": "acme"}, body)

	err := client.Login(context.Background(), "alice", "wrong", "acme")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials or Company ID", apiErr.Message)
	assert.Equal(t, "jwt-123", client.Token(), "failed login keeps the previous token")
}

func TestLoginWithoutToken(t *testing.T) {
	server := startServer(t)
	server.SetResponse(-1, http.MethodPost, "/api/auth/login", http.StatusOK, map[string]any{"message": "ok"})

	err := New(server.GetUrl(), "").Login(context.Background(), "alice", "secret", "acme")
	assert.ErrorContains(t, err, "did not contain a token")
}

func TestSendBulk(t *testing.T) {
	server := startServer(t)
	server.SetResponse(-1, http.MethodPost, "/api/transactions/bulk", http.StatusCreated, map[string]any{
		"message":  "Imported 2 transactions",
		"imported": 2,
		"rejected": 1,
		"ids":      []string{"01HZY", "01HZZ"},
	})

	category := "Rent"
	records := []adapter.BulkRecord{
		{Description: "Office rent", Amount: 500, Type: "expense", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Category: &category},
		{Description: "Sale", Amount: 90.5, Type: "income", Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
	}

	receipt, err := New(server.GetUrl(), "jwt-123").SendBulk(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Imported)
	assert.Equal(t, 1, receipt.Rejected)
	assert.Equal(t, []string{"01HZY", "01HZZ"}, receipt.IDs)

	headers := server.GetRequestHeaders(http.MethodPost, "/api/transactions/bulk", 0)
	assert.Equal(t, "Bearer jwt-123", headers["Authorization"])
	assert.Equal(t, "application/json", headers["Content-Type"])

	body, ok := server.GetRequestBody(http.MethodPost, "/api/transactions/bulk", 0).([]any)
	require.True(t, ok, "bulk body must be a JSON array")
	require.Len(t, body, 2)
	first := body[0].(map[string]any)
	assert.Equal(t, "Office rent", first["description"])
	assert.Equal(t, 500.0, first["amount"])
	assert.Equal(t, "2024-01-05T00:00:00Z", first["date"])
	assert.Equal(t, "Rent", first["category"])
	assert.Nil(t, body[1].(map[string]any)["category"])
}

func TestSendBulkRejected(t *testing.T) {
	server := startServer(t)
	server.SetResponse(-1, http.MethodPost, "/api/transactions/bulk", http.StatusBadRequest, map[string]any{
		"message": "No valid transactions found (check amounts and headers).",
	})

	_, err := New(server.GetUrl(), "jwt").SendBulk(context.Background(), []adapter.BulkRecord{{Description: "x"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "server returned 400: No valid transactions found (check amounts and headers).", apiErr.Error())
}

func TestErrorMessageFallsBackToBody(t *testing.T) {
	assert.Equal(t, "upstream timeout", errorMessage([]byte(" upstream timeout\n")))
	assert.Equal(t, "bad", errorMessage([]byte(`{"message":"bad"}`)))
}

func TestUnreachableServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("http://127.0.0.1:1", "jwt").SendBulk(ctx, nil)
	assert.ErrorContains(t, err, "request to /api/transactions/bulk failed")
}
