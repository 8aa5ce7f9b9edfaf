package leantime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"leantime-mcp/internal/domain"
)

// Session is a request-scoped connection to Leantime. It is safe for
// concurrent use until Close is called; afterwards every request fails with
// *domain.ClientNotInitializedError.
type Session struct {
	client     *Client
	httpClient *http.Client
	closed     atomic.Bool
}

// Close releases idle connections. Closing twice is a no-op.
func (s *Session) Close() error {
	if s == nil || s.closed.Swap(true) {
		return nil
	}
	s.httpClient.CloseIdleConnections()
	return nil
}

// Request sends one API call. body is JSON-encoded when non-nil; query is
// appended when non-empty. A 2xx JSON body is returned decoded; a 2xx body that
// is not JSON comes back as {"text": body}. Non-2xx responses become
// *domain.RemoteAPIError.
func (s *Session) Request(ctx context.Context, method, path string, body interface{}, query url.Values) (interface{}, error) {
	if s == nil || s.httpClient == nil || s.closed.Load() {
		return nil, &domain.ClientNotInitializedError{}
	}

	endpoint := s.client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	s.client.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail interface{}
		if err := json.Unmarshal(raw, &detail); err != nil {
			detail = string(raw)
		}
		return nil, &domain.RemoteAPIError{Status: resp.StatusCode, Body: detail}
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]interface{}{"text": string(raw)}, nil
	}
	return data, nil
}
