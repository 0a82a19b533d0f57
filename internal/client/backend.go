package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"apparel-shopfront/internal/config"
)

// stockChangedCode is the backend error code for a stale stock write.
const stockChangedCode = "STOCK_CHANGED"

// Backend is the full operation surface of the commerce REST API as
// consumed by the shopfront. Services depend on the narrow slices below,
// the impl satisfies all of them.
type Backend interface {
	CartAPI
	OrderAPI
	PaymentAPI
	AuthAPI
	CatalogAPI
	AdminAPI
}

type backendClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewBackend(cfg *config.Backend) Backend {
	return &backendClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// do performs one JSON round trip. The bearer token travels explicitly
// with every call; there is no client-global auth state.
func (c *backendClient) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}

	if apiErr.Code == stockChangedCode {
		return fmt.Errorf("%s: %w", apiErr.Message, ErrStockChanged)
	}
	return apiErr
}

func (c *backendClient) get(ctx context.Context, token, path string, query url.Values, out any) error {
	return c.do(ctx, token, http.MethodGet, path, query, nil, out)
}

func (c *backendClient) post(ctx context.Context, token, path string, query url.Values, body, out any) error {
	return c.do(ctx, token, http.MethodPost, path, query, body, out)
}

func (c *backendClient) put(ctx context.Context, token, path string, query url.Values, body, out any) error {
	return c.do(ctx, token, http.MethodPut, path, query, body, out)
}

func (c *backendClient) delete(ctx context.Context, token, path string, query url.Values) error {
	return c.do(ctx, token, http.MethodDelete, path, query, nil, nil)
}
