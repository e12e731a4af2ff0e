package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Request is one call received by the ApiMock.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    any
}

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is a scripted HTTP server. Responses are keyed by method and path,
// per call index or as a default; path segments may be "*".
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]Request
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		received:  map[string][]Request{},
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body any
	_ = json.Unmarshal(raw, &body)

	headers := map[string]string{}
	for key, value := range r.Header {
		headers[key] = value[0]
	}

	a.mu.Lock()
	key := r.Method + r.URL.Path
	index := len(a.received[key])
	a.received[key] = append(a.received[key], Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: headers,
		Body:    body,
	})
	resp := a.responseFor(r.Method, r.URL.Path, index)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	payload, _ := json.Marshal(resp.body)
	_, _ = w.Write(payload)
}

// SetResponse scripts the reply to the index-th call; index -1 sets the default.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	canned := cannedResponse{status: status, body: response}
	if index == -1 {
		a.defaults[method+path] = canned
		return
	}
	if a.responses[method+path] == nil {
		a.responses[method+path] = map[int]cannedResponse{}
	}
	a.responses[method+path][index] = canned
}

// Requests returns the calls received for method and path, oldest first.
func (a *ApiMock) Requests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.received[method+path]...)
}

func (a *ApiMock) GetRequestBody(method, path string, index int) any {
	requests := a.Requests(method, path)
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index].Body
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	requests := a.Requests(method, path)
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index].Headers
}

// ClearResponses forgets scripted responses and received calls under the prefix.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prefix := method + path
	for key := range a.received {
		if strings.HasPrefix(key, prefix) {
			delete(a.received, key)
		}
	}
	for key := range a.responses {
		if strings.HasPrefix(key, prefix) {
			delete(a.responses, key)
		}
	}
	for key := range a.defaults {
		if strings.HasPrefix(key, prefix) {
			delete(a.defaults, key)
		}
	}
}

func (a *ApiMock) responseFor(method, path string, index int) cannedResponse {
	for key, byIndex := range a.responses {
		if a.matchKey(key, method, path) {
			if resp, ok := byIndex[index]; ok && resp.status != 0 {
				return resp
			}
		}
	}
	for key, resp := range a.defaults {
		if a.matchKey(key, method, path) && resp.status != 0 {
			return resp
		}
	}
	return cannedResponse{status: http.StatusOK, body: map[string]any{}}
}

func (a *ApiMock) matchKey(key, method, path string) bool {
	keyPath, ok := strings.CutPrefix(key, method)
	return ok && matchPath(keyPath, path)
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}
