// Package apiclient talks to the bizledger HTTP API on behalf of the importer CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/application/adapter"
)

const defaultTimeout = 2 * time.Minute

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client is an authenticated API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given server. token may be set later through Login.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Token returns the bearer token in use.
func (c *Client) Token() string {
	return c.token
}

type loginRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	CompanyUsername string `json:"companyUsername"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password, company string) error {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Username:        username,
		Password:        password,
		CompanyUsername: company,
	}, &out)
	if err != nil {
		return err
	}
	if out.Token == "" {
		return errors.New("login response did not contain a token")
	}
	c.token = out.Token
	return nil
}

type bulkResponse struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Rejected int      `json:"rejected"`
	IDs      []string `json:"ids"`
}

// SendBulk posts one chunk to the bulk import endpoint.
func (c *Client) SendBulk(ctx context.Context, records []adapter.BulkRecord) (*adapter.BulkReceipt, error) {
	var out bulkResponse
	if err := c.do(ctx, http.MethodPost, "/api/transactions/bulk", records, &out); err != nil {
		return nil, err
	}
	return &adapter.BulkReceipt{
		Imported: out.Imported,
		Rejected: out.Rejected,
		IDs:      out.IDs,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}
