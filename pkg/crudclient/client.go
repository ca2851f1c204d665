// Package crudclient talks to a remote CRUD service that stores records in
// named collections inside a namespace.
package crudclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when the remote service answers 404.
var ErrNotFound = errors.New("crudclient: record not found")

// StatusError carries a non-2xx answer from the remote service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("crudclient: remote error %d: %s", e.Code, e.Body)
}

// Config configures the client.
type Config struct {
	BaseURL    string
	APIKey     string
	Namespace  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a JSON-over-HTTP client of the CRUD service.
type Client struct {
	baseURL   string
	apiKey    string
	namespace string
	client    *http.Client
}

type listResponse struct {
	Items json.RawMessage `json:"items"`
}

// New builds a client. BaseURL is required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("crudclient: base url is required")
	}
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("crudclient: namespace is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		client:    httpClient,
	}, nil
}

// GetAll decodes every record of the collection into out, which must be a
// pointer to a slice.
func (c *Client) GetAll(ctx context.Context, collection string, out any) error {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, c.collectionPath(collection), nil, &resp); err != nil {
		return err
	}
	if len(resp.Items) == 0 || string(resp.Items) == "null" {
		resp.Items = json.RawMessage("[]")
	}
	if err := json.Unmarshal(resp.Items, out); err != nil {
		return fmt.Errorf("crudclient: decode items: %w", err)
	}
	return nil
}

// GetByID decodes a single record into out.
func (c *Client) GetByID(ctx context.Context, collection, id string, out any) error {
	return c.do(ctx, http.MethodGet, c.recordPath(collection, id), nil, out)
}

// Create stores a new record. The stored record is decoded into out when out is not nil.
func (c *Client) Create(ctx context.Context, collection string, record any, out any) error {
	return c.do(ctx, http.MethodPost, c.collectionPath(collection), record, out)
}

// Update replaces the record with the given id.
func (c *Client) Update(ctx context.Context, collection, id string, record any, out any) error {
	return c.do(ctx, http.MethodPut, c.recordPath(collection, id), record, out)
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, c.recordPath(collection, id), nil, nil)
}

func (c *Client) collectionPath(collection string) string {
	return "/collections/" + url.PathEscape(c.namespace) + "/" + url.PathEscape(collection)
}

func (c *Client) recordPath(collection, id string) string {
	return c.collectionPath(collection) + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, target any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("crudclient: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("crudclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("crudclient: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}
	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("crudclient: decode response: %w", err)
	}
	return nil
}
