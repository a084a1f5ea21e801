// Package client talks to the okreads REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"okreads/internal/book"
	"okreads/internal/readinglist"
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps well-known statuses onto the backend's sentinel errors so
// callers can use errors.Is on either side of the wire.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusConflict:
		return readinglist.ErrAlreadyExists
	case http.StatusNotFound:
		return readinglist.ErrNotFound
	case http.StatusBadGateway:
		return book.ErrUpstream
	}
	return nil
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a client for the API rooted at baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) GetList(ctx context.Context) ([]readinglist.Item, error) {
	items := []readinglist.Item{}
	if err := c.do(ctx, http.MethodGet, "/reading-list/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddBook(ctx context.Context, b book.Book) (readinglist.Item, error) {
	var item readinglist.Item
	err := c.do(ctx, http.MethodPost, "/reading-list/", b, &item)
	return item, err
}

func (c *Client) RemoveBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reading-list/"+url.PathEscape(id), nil, nil)
}

func (c *Client) MarkAsRead(ctx context.Context, item readinglist.Item) (readinglist.Item, error) {
	var updated readinglist.Item
	err := c.do(ctx, http.MethodPut, "/reading-list/"+url.PathEscape(item.BookID)+"/finished", item, &updated)
	return updated, err
}

func (c *Client) SearchBooks(ctx context.Context, term string) ([]book.Book, error) {
	books := []book.Book{}
	if err := c.do(ctx, http.MethodGet, "/books?q="+url.QueryEscape(term), nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
